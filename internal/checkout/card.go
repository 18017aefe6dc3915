package checkout

import "strings"

// StripCardNumber removes every space from a card number entry.
func StripCardNumber(value string) string {
	return strings.ReplaceAll(value, " ", "")
}

// FormatCardNumber groups the digits in blocks of four for display.
// Stripping the result yields the original digits.
func FormatCardNumber(value string) string {
	stripped := StripCardNumber(value)
	if stripped == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range stripped {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
