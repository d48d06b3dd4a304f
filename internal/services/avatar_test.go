package services

import "testing"

func TestInitialsOf(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Ada Lovelace", "AL"},
		{"ada", "A"},
		{"Grace Brewster Hopper", "GB"},
		{"", "?"},
		{"   ", "?"},
	}
	for _, tc := range cases {
		if got := initialsOf(tc.name); got != tc.want {
			t.Fatalf("initialsOf(%q)=%q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestParseHexColorFallsBack(t *testing.T) {
	c := parseHexColor("#4CAF50")
	if c.R != 0x4C || c.G != 0xAF || c.B != 0x50 {
		t.Fatalf("parsed wrong color: %+v", c)
	}
	fallback := parseHexColor("not-a-color")
	if fallback.A != 0xFF {
		t.Fatalf("fallback should be opaque: %+v", fallback)
	}
}
