package checkout

import "testing"

func TestFormatCardNumberGroupsInFours(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"4111111111111", "4111 1111 1111 1"},
		{"4111 1111 1111 1", "4111 1111 1111 1"},
		{"41111111", "4111 1111"},
		{"411", "411"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := FormatCardNumber(tc.in); got != tc.want {
			t.Fatalf("FormatCardNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStripCardNumberRoundTrip(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"4111111111111", "5500123412341", "4"} {
		if got := StripCardNumber(FormatCardNumber(raw)); got != raw {
			t.Fatalf("round trip of %q produced %q", raw, got)
		}
	}
}
