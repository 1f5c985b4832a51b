package deskcalc

import "strconv"

// LexError indicates input that could not be scanned into tokens. It covers
// both unscannable text and a malformed unary minus or factorial position
// found while resolving the raw token stream.
type LexError struct {
	// Col is the 1-based rune position where scanning stopped, or 0 when
	// the failure concerns token arrangement rather than raw text.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *LexError) Error() string {
	if err.Col > 0 {
		return "column " + strconv.Itoa(err.Col) + ": " + err.Msg
	}
	return err.Msg
}

// SyntaxError indicates a token sequence that does not form a single
// well-bracketed expression.
type SyntaxError struct {
	// Msg describes the problem.
	Msg string
}

func (err *SyntaxError) Error() string {
	return err.Msg
}

// ArithmeticError indicates an operation whose operands fall outside the
// calculator's numeric domain, such as division by zero or a result past
// the 28-digit decimal ceiling.
type ArithmeticError struct {
	// Op is the operator or function being applied.
	Op string
	// Msg describes the problem.
	Msg string
}

func (err *ArithmeticError) Error() string {
	return err.Msg
}

var (
	_ error = (*LexError)(nil)
	_ error = (*SyntaxError)(nil)
	_ error = (*ArithmeticError)(nil)
)
