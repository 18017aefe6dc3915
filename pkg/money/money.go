package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Zero is the additive identity for display amounts.
var Zero = decimal.Zero

// Round2 rounds to two decimal places, half away from zero. Display
// components (subtotal, tax, shipping) are each rounded independently;
// intermediate math stays unrounded.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders an amount with exactly two decimal places.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Parse converts a decimal string ("29.99") into an amount.
func Parse(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return d, nil
}

// MustParse is Parse for constants wired at startup.
func MustParse(value string) decimal.Decimal {
	d, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return d
}
