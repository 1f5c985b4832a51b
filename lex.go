package deskcalc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// singles maps single-rune tokens to their kinds.
var singles = map[rune]TokenKind{
	'+': Plus,
	'-': Minus,
	'*': Multiply,
	'/': Divide,
	'%': Modulo,
	'!': Factorial,
	'^': Exponentiation,
	'(': LeftParen,
	')': RightParen,
}

// Tokenize scans an expression into a token sequence. Scanning recognizes,
// in priority order, the keywords sqrt and abs, a number literal (optional
// leading '-', digits, optional fraction), and the single-rune operators
// and parentheses; whitespace between tokens is skipped. A second pass then
// resolves every '-' to either a negated literal, a multiplication by -1,
// or a binary subtraction, and folds '!' onto a preceding literal.
func Tokenize(input string) ([]Token, error) {
	raw, err := scan(input)
	if err != nil {
		return nil, err
	}
	return resolve(raw)
}

func scan(input string) ([]Token, error) {
	var toks []Token
	col := 1
	i := 0
	for i < len(input) {
		r, sz := utf8.DecodeRuneInString(input[i:])
		if unicode.IsSpace(r) {
			i += sz
			col++
			continue
		}
		if strings.HasPrefix(input[i:], "sqrt") {
			toks = append(toks, Token{Kind: Sqrt})
			i += 4
			col += 4
			continue
		}
		if strings.HasPrefix(input[i:], "abs") {
			toks = append(toks, Token{Kind: Abs})
			i += 3
			col += 3
			continue
		}
		if n := scanNumber(input[i:]); n > 0 {
			// The scanner only admits valid literal syntax.
			toks = append(toks, Num(decimal.RequireFromString(input[i:i+n])))
			i += n
			col += n
			continue
		}
		if k, ok := singles[r]; ok {
			toks = append(toks, Token{Kind: k})
			i += sz
			col++
			continue
		}
		return nil, &LexError{Col: col, Msg: "Unable to parse remaining input: " + input[i:]}
	}
	return toks, nil
}

// scanNumber returns the length in bytes of a number literal at the start
// of s, or 0 if there is none. A literal is an optional '-' that must be
// followed by a digit, an integer part, and an optional '.' fraction that
// must also contain a digit.
func scanNumber(s string) int {
	n := 0
	if n < len(s) && s[n] == '-' {
		n++
	}
	start := n
	for n < len(s) && '0' <= s[n] && s[n] <= '9' {
		n++
	}
	if n == start {
		return 0
	}
	if n < len(s) && s[n] == '.' {
		frac := n + 1
		for frac < len(s) && '0' <= s[frac] && s[frac] <= '9' {
			frac++
		}
		if frac > n+1 {
			n = frac
		}
	}
	return n
}

// unaryPosition reports whether a minus appearing now would have no left
// operand: nothing has been emitted yet, or the last emitted token is an
// operator or an open parenthesis.
func unaryPosition(out []Token) bool {
	if len(out) == 0 {
		return true
	}
	switch out[len(out)-1].Kind {
	case Plus, Minus, Multiply, Divide, Modulo, Exponentiation, LeftParen:
		return true
	}
	return false
}

// resolve rewrites the raw token stream in a single left-to-right pass:
// unary minus is merged into its operand, binary minus not followed by a
// literal becomes "+ -1 *", and factorial is folded eagerly onto a
// preceding literal or kept for the evaluator after a ')'.
func resolve(raw []Token) ([]Token, error) {
	out := make([]Token, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		tok := raw[i]
		switch tok.Kind {
		case Minus:
			if unaryPosition(out) {
				if i+1 < len(raw) {
					switch next := raw[i+1]; next.Kind {
					case Number:
						out = append(out, Num(next.Value.Neg()))
						i++
						continue
					case LeftParen:
						// Rewrite "-(" as "( -1 *"; the group the stream
						// opened here stays balanced.
						out = append(out, Token{Kind: LeftParen}, Num(minusOne), Token{Kind: Multiply})
						i++
						continue
					}
				}
				return nil, &LexError{Msg: "Invalid unary minus"}
			}
			if i+1 < len(raw) && raw[i+1].Kind == Number {
				out = append(out, tok)
				continue
			}
			// A binary minus before a function or parenthesis: subtraction
			// as addition of the negated term.
			out = append(out, Token{Kind: Plus}, Num(minusOne), Token{Kind: Multiply})
		case Factorial:
			if len(out) == 0 {
				return nil, &LexError{Msg: "Invalid factorial operation"}
			}
			switch last := out[len(out)-1]; last.Kind {
			case Number:
				v, err := factorial(last.Value)
				if err != nil {
					return nil, err
				}
				out[len(out)-1] = Num(v)
			case RightParen:
				// Applies to a parenthesized group; the evaluator folds it
				// once the group is reduced.
				out = append(out, tok)
			default:
				return nil, &LexError{Msg: "Invalid factorial operation"}
			}
		default:
			out = append(out, tok)
		}
	}
	return out, nil
}
