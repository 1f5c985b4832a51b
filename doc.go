// Package deskcalc implements an exact decimal expression calculator.
//
// Expressions are scanned into a flat token sequence and evaluated with an
// operand stack and an operator stack, respecting the usual precedence and
// the right associativity of '^'. Arithmetic is exact base-10 decimal up to
// 28 significant digits; sqrt and fractional exponents round-trip through
// float64 and lose precision beyond that.
//
// Both Tokenize and Evaluate are pure functions of their input, so a front
// end can re-run them on every keystroke.
package deskcalc
