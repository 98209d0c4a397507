package utils

import (
	"errors"
	"testing"
)

func TestToSubunits(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"1", 1_000_000_000_000_000_000},
		{"0.15", 150_000_000_000_000_000},
		{"0.000000000000000001", 1},
		{"10.5", 10_500_000_000_000_000_000},
		{" 2 ", 2_000_000_000_000_000_000},
		{"3.", 3_000_000_000_000_000_000},
	}
	for _, tc := range cases {
		got, err := ToSubunits(tc.in)
		if err != nil {
			t.Errorf("ToSubunits(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ToSubunits(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestToSubunitsErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"", ErrBadAmount},
		{"abc", ErrBadAmount},
		{"-1", ErrBadAmount},
		{"1.2.3", ErrBadAmount},
		{"0.0000000000000000001", ErrAmountPrecision}, // 19 decimal places
		{"99999999999999999999", ErrAmountRange},      // past uint64
	}
	for _, tc := range cases {
		if _, err := ToSubunits(tc.in); !errors.Is(err, tc.want) {
			t.Errorf("ToSubunits(%q) = %v, want %v", tc.in, err, tc.want)
		}
	}
}

func TestFromSubunits(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{1_000_000_000_000_000_000, "1"},
		{150_000_000_000_000_000, "0.15"},
		{1, "0.000000000000000001"},
		{10_500_000_000_000_000_000, "10.5"},
	}
	for _, tc := range cases {
		if got := FromSubunits(tc.in); got != tc.want {
			t.Errorf("FromSubunits(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// Decimal strings must survive a round trip through subunits unchanged
// in value, which is what keeps API input and wallet output consistent.
func TestAmountRoundTrip(t *testing.T) {
	for _, s := range []string{"0.15", "1", "0.000000000000000001", "18.446744073709551615"} {
		sub, err := ToSubunits(s)
		if err != nil {
			t.Fatalf("ToSubunits(%q): %v", s, err)
		}
		back, err := ToSubunits(FromSubunits(sub))
		if err != nil {
			t.Fatalf("re-parse FromSubunits(%d): %v", sub, err)
		}
		if back != sub {
			t.Errorf("round trip %q: %d != %d", s, back, sub)
		}
	}
}
