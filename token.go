package deskcalc

import "github.com/shopspring/decimal"

// TokenKind identifies the kind of a scanned token.
type TokenKind int

const (
	// Number is a numeric literal. Only Number tokens carry a value.
	Number TokenKind = iota
	// Plus is the '+' operator.
	Plus
	// Minus is the '-' operator. Tokenize resolves every minus before
	// returning, so evaluators never see an unresolved unary minus.
	Minus
	// Multiply is the '*' operator.
	Multiply
	// Divide is the '/' operator.
	Divide
	// Modulo is the '%' operator.
	Modulo
	// Exponentiation is the '^' operator.
	Exponentiation
	// Factorial is the postfix '!' operator. It survives tokenizing only
	// when it applies to a parenthesized group.
	Factorial
	// Sqrt is the 'sqrt' function keyword.
	Sqrt
	// Abs is the 'abs' function keyword.
	Abs
	// LeftParen is '('.
	LeftParen
	// RightParen is ')'.
	RightParen
)

func (k TokenKind) String() string {
	switch k {
	case Number:
		return "number"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Modulo:
		return "%"
	case Exponentiation:
		return "^"
	case Factorial:
		return "!"
	case Sqrt:
		return "sqrt"
	case Abs:
		return "abs"
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	default:
		return "invalid"
	}
}

// Token is a single token of a calculator expression. Tokens are immutable
// values; Value is set only when Kind is Number.
type Token struct {
	Kind  TokenKind
	Value decimal.Decimal
}

// Num builds a Number token.
func Num(v decimal.Decimal) Token {
	return Token{Kind: Number, Value: v}
}

func (t Token) String() string {
	if t.Kind == Number {
		return t.Value.String()
	}
	return t.Kind.String()
}
