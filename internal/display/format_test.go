package display

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLiterals(t *testing.T) {
	max := 1e100
	assert.NoError(t, CheckLiterals("", max))
	assert.NoError(t, CheckLiterals("2 + 3 * 4", max))
	assert.NoError(t, CheckLiterals("sqrt(16) - 10.5", max))
	assert.NoError(t, CheckLiterals("1.2.3 + 4", max), "malformed literals are left for the tokenizer")

	assert.ErrorIs(t, CheckLiterals("9e99", 1), ErrNumberTooLarge, "exceeds the configured cap")
	assert.NoError(t, CheckLiterals("9e99", max), "digit runs only; the e is an operator boundary")

	over := "1"
	for i := 0; i < 101; i++ {
		over += "0"
	}
	assert.ErrorIs(t, CheckLiterals(over+" + 1", max), ErrNumberTooLarge)

	tooBig := "9"
	for i := 0; i < 400; i++ {
		tooBig += "9"
	}
	assert.ErrorIs(t, CheckLiterals(tooBig, max), ErrNumberTooLarge, "past float64 range entirely")
}

func TestFormatResult(t *testing.T) {
	limit := decimal.RequireFromString("1e50")

	cases := []struct {
		in     string
		places int32
		want   string
	}{
		{"5", 10, "5"},
		{"0.25", 10, "0.25"},
		{"-3", 10, "-3"},
		{"1.5000000000", 10, "1.5"},
		{"0.3333333333333333333333333333", 10, "0.3333333333"},
		{"120", 0, "120"},
		{"2432902008176640000", 10, "2432902008176640000"},
	}
	for _, c := range cases {
		got, err := FormatResult(decimal.RequireFromString(c.in), c.places, limit)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	_, err := FormatResult(decimal.RequireFromString("1e51"), 10, limit)
	assert.ErrorIs(t, err, ErrResultTooLarge)

	_, err = FormatResult(decimal.RequireFromString("-1e51"), 10, limit)
	assert.ErrorIs(t, err, ErrResultTooLarge)
}
