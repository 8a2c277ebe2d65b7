package timecontrol

import "testing"

func TestFormatChessCom(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"1/86400", "1 day"},
		{"1/259200", "3 days"},
		{"1/432000", "5 days"},
		{"1/604800", "7 days"},
		{"1/1209600", "14 days"},
		{"604800", "7 days"},
		{"180+2", "3+2"},
		{"600", "10+0"},
		{"600+5", "10+5"},
		{"90+5", "1:30+5"},
		{"30", "30s+0"},
		{"15+1", "15s+1"},
		{"180+x", "3+0"}, // unparsable increment defaults to 0
		{"1/999", "-"},
		{"abc", "-"},
		{"", "-"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			if got := FormatChessCom(tc.raw); got != tc.want {
				t.Fatalf("FormatChessCom(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestFormatLichess(t *testing.T) {
	cases := []struct {
		initial, increment int
		want               string
	}{
		{180, 2, "3+2"},
		{600, 0, "10+0"},
		{30, 0, "0+0"},
	}

	for _, tc := range cases {
		if got := FormatLichess(tc.initial, tc.increment); got != tc.want {
			t.Fatalf("FormatLichess(%d, %d) = %q, want %q", tc.initial, tc.increment, got, tc.want)
		}
	}
}
