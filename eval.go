package deskcalc

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// maxDigits is the significant-digit capacity of the calculator's decimal
// register. Exact operations that would exceed it are rejected rather than
// silently rounded. A 96-bit binary coefficient tops out near 7.9e28, so a
// strict digit count turns away 29-digit integers between 1e28 and that
// bound which such hardware would still hold.
const maxDigits = 28

// divScale is the number of fractional digits kept by division.
const divScale = 28

var (
	one      = decimal.NewFromInt(1)
	minusOne = decimal.NewFromInt(-1)
	twenty   = decimal.NewFromInt(20)
)

// precedence returns the binding strength of an operator token. Higher
// binds tighter; non-operators are 0.
func precedence(k TokenKind) int {
	switch k {
	case Plus, Minus:
		return 1
	case Multiply, Divide, Modulo:
		return 2
	case Exponentiation:
		return 3
	case Factorial:
		return 4
	case Sqrt, Abs:
		return 5
	default:
		return 0
	}
}

// Evaluate consumes a token sequence produced by Tokenize and returns the
// expression's value. The scan keeps two stacks, operands and operators;
// an incoming operator first pops every stacked operator that binds at
// least as tightly (strictly tighter for the right-associative '^').
func Evaluate(tokens []Token) (decimal.Decimal, error) {
	if len(tokens) == 0 {
		return decimal.Zero, &SyntaxError{Msg: "Invalid expression"}
	}
	if b, ok := cancellation(tokens); ok {
		return b, nil
	}

	var (
		numbers   []decimal.Decimal
		operators []Token
		depth     int
		wantParen bool // a function keyword awaits its '('
	)
	for _, tok := range tokens {
		switch tok.Kind {
		case Number:
			if wantParen {
				return decimal.Zero, &SyntaxError{Msg: "Expected '(' after function"}
			}
			numbers = append(numbers, tok.Value)
		case LeftParen:
			depth++
			wantParen = false
			operators = append(operators, tok)
		case RightParen:
			depth--
			if depth < 0 {
				return decimal.Zero, &SyntaxError{Msg: "Mismatched parentheses"}
			}
			for len(operators) > 0 && operators[len(operators)-1].Kind != LeftParen {
				op := operators[len(operators)-1]
				operators = operators[:len(operators)-1]
				if err := apply(&numbers, op); err != nil {
					return decimal.Zero, err
				}
			}
			if len(operators) > 0 {
				operators = operators[:len(operators)-1] // the '(' itself
			}
			// A function directly under the group applies to its result.
			if n := len(operators); n > 0 && (operators[n-1].Kind == Sqrt || operators[n-1].Kind == Abs) {
				op := operators[n-1]
				operators = operators[:n-1]
				if err := apply(&numbers, op); err != nil {
					return decimal.Zero, err
				}
			}
		case Sqrt, Abs:
			wantParen = true
			operators = append(operators, tok)
		default:
			if wantParen {
				return decimal.Zero, &SyntaxError{Msg: "Expected '(' after function"}
			}
			rightAssoc := tok.Kind == Exponentiation
			for len(operators) > 0 {
				top := operators[len(operators)-1]
				if top.Kind == LeftParen {
					break
				}
				if rightAssoc && precedence(top.Kind) <= precedence(tok.Kind) {
					break
				}
				if !rightAssoc && precedence(top.Kind) < precedence(tok.Kind) {
					break
				}
				operators = operators[:len(operators)-1]
				if err := apply(&numbers, top); err != nil {
					return decimal.Zero, err
				}
			}
			operators = append(operators, tok)
		}
	}

	if depth != 0 {
		return decimal.Zero, &SyntaxError{Msg: "Mismatched parentheses"}
	}
	if wantParen {
		return decimal.Zero, &SyntaxError{Msg: "Expected '(' after function"}
	}
	for len(operators) > 0 {
		op := operators[len(operators)-1]
		operators = operators[:len(operators)-1]
		if err := apply(&numbers, op); err != nil {
			return decimal.Zero, err
		}
	}
	if len(numbers) != 1 {
		return decimal.Zero, &SyntaxError{Msg: "Invalid expression"}
	}
	return numbers[0], nil
}

// cancellationShape is the exact token shape (a ^ e) + b - (a ^ e).
var cancellationShape = [13]TokenKind{
	LeftParen, Number, Exponentiation, Number, RightParen,
	Plus, Number, Minus,
	LeftParen, Number, Exponentiation, Number, RightParen,
}

// cancellation scans for the shape (a^e) + b - (a^e) with matching base and
// integer exponent and short-circuits to b, so that the two cancelling
// powers are never computed and cannot trip the overflow guards.
func cancellation(tokens []Token) (decimal.Decimal, bool) {
	for i := 0; i+len(cancellationShape) <= len(tokens); i++ {
		w := tokens[i : i+len(cancellationShape)]
		match := true
		for j, k := range cancellationShape {
			if w[j].Kind != k {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if w[1].Value.Equal(w[9].Value) && w[3].Value.Equal(w[11].Value) && w[3].Value.IsInteger() {
			return w[6].Value, true
		}
	}
	return decimal.Zero, false
}

// opName returns the operation name used in arity error messages.
func opName(k TokenKind) string {
	switch k {
	case Plus:
		return "addition"
	case Minus:
		return "subtraction"
	case Multiply:
		return "multiplication"
	case Divide:
		return "division"
	case Modulo:
		return "modulo"
	case Exponentiation:
		return "exponentiation"
	case Factorial:
		return "factorial"
	case Sqrt:
		return "square root"
	case Abs:
		return "absolute value"
	default:
		return k.String()
	}
}

func pop1(numbers *[]decimal.Decimal, k TokenKind) (decimal.Decimal, error) {
	s := *numbers
	if len(s) < 1 {
		return decimal.Zero, &SyntaxError{Msg: "Not enough operands for " + opName(k)}
	}
	*numbers = s[:len(s)-1]
	return s[len(s)-1], nil
}

func pop2(numbers *[]decimal.Decimal, k TokenKind) (a, b decimal.Decimal, err error) {
	s := *numbers
	if len(s) < 2 {
		return decimal.Zero, decimal.Zero, &SyntaxError{Msg: "Not enough operands for " + opName(k)}
	}
	*numbers = s[:len(s)-2]
	return s[len(s)-2], s[len(s)-1], nil
}

// apply pops the operator's operands, computes, and pushes the result.
func apply(numbers *[]decimal.Decimal, op Token) error {
	switch op.Kind {
	case Plus, Minus, Multiply, Divide, Modulo, Exponentiation:
		a, b, err := pop2(numbers, op.Kind)
		if err != nil {
			return err
		}
		r, err := binary(op.Kind, a, b)
		if err != nil {
			return err
		}
		*numbers = append(*numbers, r)
	case Factorial:
		n, err := pop1(numbers, op.Kind)
		if err != nil {
			return err
		}
		r, err := factorial(n)
		if err != nil {
			return err
		}
		*numbers = append(*numbers, r)
	case Sqrt:
		n, err := pop1(numbers, op.Kind)
		if err != nil {
			return err
		}
		if n.IsNegative() {
			return &ArithmeticError{Op: "sqrt", Msg: "Cannot compute square root of negative number"}
		}
		r := math.Sqrt(n.InexactFloat64())
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return &ArithmeticError{Op: "sqrt", Msg: "Invalid square root result"}
		}
		*numbers = append(*numbers, decimal.NewFromFloat(r))
	case Abs:
		n, err := pop1(numbers, op.Kind)
		if err != nil {
			return err
		}
		*numbers = append(*numbers, n.Abs())
	default:
		return &SyntaxError{Msg: "Invalid operator"}
	}
	return nil
}

func binary(k TokenKind, a, b decimal.Decimal) (decimal.Decimal, error) {
	switch k {
	case Plus:
		return a.Add(b), nil
	case Minus:
		return a.Sub(b), nil
	case Multiply:
		return a.Mul(b), nil
	case Divide:
		if b.IsZero() {
			return decimal.Zero, &ArithmeticError{Op: "/", Msg: "division by zero"}
		}
		return a.DivRound(b, divScale), nil
	case Modulo:
		if b.IsZero() {
			return decimal.Zero, &ArithmeticError{Op: "%", Msg: "modulo by zero"}
		}
		return a.Mod(b), nil
	case Exponentiation:
		return power(a, b)
	}
	panic("deskcalc: not a binary operator: " + k.String())
}

// power applies '^'. Integer exponents use exact exponentiation by
// squaring with overflow guards; fractional exponents fall back to float64
// math.Pow, with a precision loss documented at the package level.
func power(a, b decimal.Decimal) (decimal.Decimal, error) {
	if !b.IsInteger() {
		r := math.Pow(a.InexactFloat64(), b.InexactFloat64())
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return decimal.Zero, &ArithmeticError{Op: "^", Msg: "Invalid exponentiation result"}
		}
		return decimal.NewFromFloat(r), nil
	}
	bi := b.BigInt()
	if !bi.IsInt64() || bi.Int64() == math.MinInt64 {
		return decimal.Zero, &ArithmeticError{Op: "^", Msg: "Exponent too large"}
	}
	exp := bi.Int64()
	if exp > 0 {
		// Digits in the base times the exponent bounds the digits of the
		// result, so an oversized power is rejected before any multiply.
		digits := int64(len(strings.TrimRight(a.Abs().String(), "0")))
		if digits*exp > maxDigits {
			return decimal.Zero, &ArithmeticError{Op: "^", Msg: "Result would be too large"}
		}
	}
	base := a
	if exp < 0 {
		if a.IsZero() {
			return decimal.Zero, &ArithmeticError{Op: "^", Msg: "Division by zero in negative exponent"}
		}
		base = one.DivRound(a, divScale)
		exp = -exp
	}
	result := one
	for exp > 0 {
		if exp&1 == 1 {
			var ok bool
			if result, ok = fit(result.Mul(base)); !ok {
				return decimal.Zero, &ArithmeticError{Op: "^", Msg: "Result too large"}
			}
		}
		if exp > 1 {
			var ok bool
			if base, ok = fit(base.Mul(base)); !ok {
				return decimal.Zero, &ArithmeticError{Op: "^", Msg: "Intermediate result too large"}
			}
		}
		exp >>= 1
	}
	return result, nil
}

// fit rounds v into the 28-digit register, trimming fractional digits the
// way a hardware decimal would. It reports failure when the integer part
// alone does not fit.
func fit(v decimal.Decimal) (decimal.Decimal, bool) {
	total := int(v.NumDigits())
	if total <= maxDigits {
		return v, true
	}
	frac := 0
	if e := v.Exponent(); e < 0 {
		frac = int(-e)
	}
	intDigits := total - frac
	if intDigits > maxDigits {
		return decimal.Zero, false
	}
	scale := maxDigits - intDigits
	if scale > divScale {
		scale = divScale
	}
	return v.Round(int32(scale)), true
}

// factorial computes n! over the integer part of n. Anything past 20!
// exceeds the decimal register.
func factorial(n decimal.Decimal) (decimal.Decimal, error) {
	if n.IsNegative() {
		return decimal.Zero, &ArithmeticError{Op: "!", Msg: "Cannot compute factorial of negative number"}
	}
	if n.Truncate(0).GreaterThan(twenty) {
		return decimal.Zero, &ArithmeticError{Op: "!", Msg: "Factorial result too large"}
	}
	result := one
	for i := int64(2); i <= n.IntPart(); i++ {
		result = result.Mul(decimal.NewFromInt(i))
	}
	return result, nil
}
