// Package display holds the presentation policies applied around the core
// evaluator: per-literal magnitude checks before tokenizing and result
// formatting for the screen. They are front-end policy, not part of the
// evaluator's contract.
package display

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNumberTooLarge rejects a single literal whose magnitude exceeds the
// display-sanity threshold.
var ErrNumberTooLarge = errors.New("Number too large")

// ErrResultTooLarge rejects a result whose magnitude exceeds the display
// cap.
var ErrResultTooLarge = errors.New("Result too large")

// CheckLiterals scans the digit-and-dot runs of a raw expression and
// rejects any literal that does not fit in a finite float64 below max. It
// runs before tokenizing so an absurd literal never reaches the evaluator.
func CheckLiterals(input string, max float64) error {
	var lit strings.Builder
	check := func() error {
		if lit.Len() == 0 {
			return nil
		}
		s := lit.String()
		lit.Reset()
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return ErrNumberTooLarge
			}
			// Malformed runs like "1.2.3" are the tokenizer's problem.
			return nil
		}
		if math.IsInf(n, 0) || math.IsNaN(n) || math.Abs(n) > max {
			return ErrNumberTooLarge
		}
		return nil
	}
	for _, r := range input {
		if r == '.' || ('0' <= r && r <= '9') {
			lit.WriteRune(r)
			continue
		}
		if err := check(); err != nil {
			return err
		}
	}
	return check()
}

// FormatResult renders a result for the screen: magnitudes above limit are
// rejected, everything else is printed with the given number of decimal
// places and trailing zeros trimmed.
func FormatResult(d decimal.Decimal, places int32, limit decimal.Decimal) (string, error) {
	if d.Abs().GreaterThan(limit) {
		return "", ErrResultTooLarge
	}
	s := d.StringFixed(places)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s, nil
}
