package deskcalc_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kehrlein/deskcalc"
)

func eval(t *testing.T, src string) (decimal.Decimal, error) {
	t.Helper()
	tokens, err := deskcalc.Tokenize(src)
	if err != nil {
		return decimal.Zero, err
	}
	return deskcalc.Evaluate(tokens)
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"add", "2 + 3", "5"},
		{"sub", "5 - 3", "2"},
		{"unary-minus", "-3", "-3"},
		{"mul", "4 * 3", "12"},
		{"div", "10 / 2", "5"},
		{"div-fraction", "1 / 4", "0.25"},
		{"modulo", "10 % 3", "1"},
		{"modulo-decimal", "10.5 % 3", "1.5"},
		{"pow", "2 ^ 3", "8"},
		{"pow-negative", "2 ^ -2", "0.25"},
		{"pow-zero", "5 ^ 0", "1"},
		{"pow-right-assoc", "2 ^ 3 ^ 2", "512"},
		{"precedence", "2 + 3 * 4", "14"},
		{"parens", "(2 + 3) * 4", "20"},
		{"nested-parens", "((2 + 3) * (4 - 1))", "15"},
		{"factorial", "5!", "120"},
		{"factorial-group", "(2 + 3)!", "120"},
		{"sqrt", "sqrt(16)", "4"},
		{"sqrt-nested", "sqrt(sqrt(16))", "2"},
		{"abs-negative", "abs(-5)", "5"},
		{"abs-positive", "abs(5)", "5"},
		{"abs-group", "abs(2 - 7)", "5"},
		{"minus-group", "5 - (2 + 3)", "0"},
		{"minus-function", "5 - sqrt(4)", "3"},
		{"composite", "2 * (3 + 4) ^ 2 - sqrt(16)", "94"},
		{"large-exact", "999999999999 * 999999999999", "999999999998000000000001"},
		{"power-group-sub", "(2 ^ 5) + 7 - (2 ^ 5)", "7"},
		{"power-group-sub-embedded", "1 * (3 ^ 4) + 9 - (3 ^ 4)", "9"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := eval(t, c.src)
			if err != nil {
				t.Fatalf("evaluating %q: unexpected error: %v", c.src, err)
			}
			if want := decimal.RequireFromString(c.want); !got.Equal(want) {
				t.Errorf("evaluating %q: want %s, got %s", c.src, want, got)
			}
		})
	}
}

// Fractional exponents and square roots round-trip through float64; their
// results must match the double-precision value exactly.
func TestEvaluateFloatFallback(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"pow-half", "2 ^ 0.5", math.Pow(2, 0.5)},
		{"pow-fraction", "9 ^ 1.5", math.Pow(9, 1.5)},
		{"sqrt-irrational", "sqrt(2)", math.Sqrt(2)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := eval(t, c.src)
			if err != nil {
				t.Fatalf("evaluating %q: unexpected error: %v", c.src, err)
			}
			if want := decimal.NewFromFloat(c.want); !got.Equal(want) {
				t.Errorf("evaluating %q: want %s, got %s", c.src, want, got)
			}
		})
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	tokens, err := deskcalc.Tokenize("2 * (3 + 4) ^ 2 - sqrt(16)")
	if err != nil {
		t.Fatal(err)
	}
	first, err := deskcalc.Evaluate(tokens)
	if err != nil {
		t.Fatal(err)
	}
	second, err := deskcalc.Evaluate(tokens)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(second) {
		t.Errorf("repeated evaluation differs: %s then %s", first, second)
	}
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		msg    string
		syntax bool
	}{
		{"empty", "", "Invalid expression", true},
		{"spaces", "   ", "Invalid expression", true},
		{"two-numbers", "2 3", "Invalid expression", true},
		{"adjacent-minus", "2-3", "Invalid expression", true},
		{"trailing-op", "2 +", "Not enough operands for addition", true},
		{"leading-op", "* 2", "Not enough operands for multiplication", true},
		{"unclosed", "(2 + 3", "Mismatched parentheses", true},
		{"unopened", "2 + 3)", "Mismatched parentheses", true},
		{"bare-function", "sqrt", "Expected '(' after function", true},
		{"function-no-paren", "sqrt 4", "Expected '(' after function", true},
		{"div-zero", "1 / 0", "division by zero", false},
		{"mod-zero", "10 % 0", "modulo by zero", false},
		{"negative-sqrt", "sqrt(-1)", "Cannot compute square root of negative number", false},
		{"negative-factorial", "(-5)!", "Cannot compute factorial of negative number", false},
		{"factorial-limit", "(20 + 1)!", "Factorial result too large", false},
		{"pow-huge", "9999999999 ^ 9999", "Result would be too large", false},
		{"pow-heuristic", "2 ^ 100", "Result would be too large", false},
		// 10^28 slips past the digit-count pre-check (one digit after the
		// trailing-zero trim) and overflows the register on the final
		// multiply instead.
		{"pow-register", "10 ^ 28", "Result too large", false},
		{"pow-nan", "-2 ^ 0.5", "Invalid exponentiation result", false},
		{"pow-infinite", "9 ^ 999.5", "Invalid exponentiation result", false},
		{"pow-zero-negative", "0 ^ -2", "Division by zero in negative exponent", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := eval(t, c.src)
			if err == nil {
				t.Fatalf("evaluating %q: expected error", c.src)
			}
			if !strings.Contains(err.Error(), c.msg) {
				t.Errorf("evaluating %q: want error containing %q, got %q", c.src, c.msg, err)
			}
			var synErr *deskcalc.SyntaxError
			if errors.As(err, &synErr) != c.syntax {
				t.Errorf("evaluating %q: SyntaxError = %v, want %v", c.src, !c.syntax, c.syntax)
			}
			if !c.syntax {
				var aritErr *deskcalc.ArithmeticError
				if !errors.As(err, &aritErr) {
					t.Errorf("evaluating %q: want ArithmeticError, got %T", c.src, err)
				}
			}
		})
	}
}

// The cancellation shortcut works on the token sequence directly; the
// tokenizer's minus rewrite means it is only reachable for hand-built
// sequences, matching the tokenize-then-evaluate pipeline's behavior.
func TestCancellationShortcut(t *testing.T) {
	n := func(s string) deskcalc.Token { return deskcalc.Num(decimal.RequireFromString(s)) }
	o := func(k deskcalc.TokenKind) deskcalc.Token { return deskcalc.Token{Kind: k} }
	shaped := func(exp string) []deskcalc.Token {
		return []deskcalc.Token{
			o(deskcalc.LeftParen), n("9"), o(deskcalc.Exponentiation), n(exp), o(deskcalc.RightParen),
			o(deskcalc.Plus), n("5"), o(deskcalc.Minus),
			o(deskcalc.LeftParen), n("9"), o(deskcalc.Exponentiation), n(exp), o(deskcalc.RightParen),
		}
	}

	// Evaluating 9^999 alone overflows, so a clean result proves the
	// cancelling powers were never computed.
	got, err := deskcalc.Evaluate(shaped("999"))
	if err != nil {
		t.Fatalf("cancellation did not fire: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("5")) {
		t.Errorf("want 5, got %s", got)
	}

	// A fractional exponent must not match the shortcut.
	if _, err := deskcalc.Evaluate(shaped("999.5")); err == nil {
		t.Error("fractional exponent: expected overflow error, got result")
	}

	// Mismatched bases must not match.
	mismatch := shaped("3")
	mismatch[9] = n("8")
	got, err = deskcalc.Evaluate(mismatch)
	if err != nil {
		t.Fatal(err)
	}
	// (9^3) + 5 - (8^3) evaluated in full.
	if want := decimal.RequireFromString("222"); !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}
