package ledger

import "testing"

func TestNights(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  int64
		checkOut int64
		want     uint64
	}{
		{"exactly one day", 0, SecondsPerDay, 1},
		{"exactly three days", 1_700_000_000, 1_700_000_000 + 3*SecondsPerDay, 3},
		{"partial day rounds up", 0, SecondsPerDay + 1, 2},
		{"one second stay", 0, 1, 1},
		{"just under two days", 0, 2*SecondsPerDay - 1, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Nights(tc.checkIn, tc.checkOut); got != tc.want {
				t.Errorf("Nights(%d, %d) = %d, want %d", tc.checkIn, tc.checkOut, got, tc.want)
			}
		})
	}
}

func TestSplitFee(t *testing.T) {
	cases := []struct {
		total      uint64
		wantFee    uint64
		wantPayout uint64
	}{
		{0, 0, 0},
		{300, 7, 293},     // floor(300 * 0.025) = 7
		{10000, 250, 9750},
		{39, 0, 39},       // too small for any fee
		{40, 1, 39},       // smallest total with a nonzero fee
		{1_000_000_000_000_000_000, 25_000_000_000_000_000, 975_000_000_000_000_000},
	}
	for _, tc := range cases {
		fee, payout := SplitFee(tc.total)
		if fee != tc.wantFee || payout != tc.wantPayout {
			t.Errorf("SplitFee(%d) = (%d, %d), want (%d, %d)", tc.total, fee, payout, tc.wantFee, tc.wantPayout)
		}
		if fee+payout != tc.total {
			t.Errorf("SplitFee(%d): fee+payout = %d, money not conserved", tc.total, fee+payout)
		}
	}
}

// The chunked computation must agree with the naive product wherever the
// naive product does not overflow, and stay exact where it would.
func TestSplitFeeLargeAmounts(t *testing.T) {
	// 18 quintillion subunits: total*250 would wrap a uint64.
	const total = 18_000_000_000_000_000_000
	fee, payout := SplitFee(total)
	const wantFee = 450_000_000_000_000_000 // total / 40
	if fee != wantFee {
		t.Fatalf("fee = %d, want %d", fee, wantFee)
	}
	if payout != total-wantFee {
		t.Fatalf("payout = %d, want %d", payout, uint64(total-wantFee))
	}
}

func TestTotalPrice(t *testing.T) {
	if total, ok := TotalPrice(3, 100); !ok || total != 300 {
		t.Fatalf("TotalPrice(3, 100) = (%d, %v), want (300, true)", total, ok)
	}
	if _, ok := TotalPrice(1<<33, 1<<33); ok {
		t.Fatal("expected overflow to be reported")
	}
	if total, ok := TotalPrice(0, 100); !ok || total != 0 {
		t.Fatalf("TotalPrice(0, 100) = (%d, %v), want (0, true)", total, ok)
	}
}
