package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "Rp 0"},
		{"500", "Rp 500"},
		{"15000", "Rp 15.000"},
		{"146000", "Rp 146.000"},
		{"1000000", "Rp 1.000.000"},
		{"1234567.6", "Rp 1.234.568"},
		{"-50000", "-Rp 50.000"},
	}
	for _, tc := range cases {
		if got := FormatRupiah(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Errorf("FormatRupiah(%s): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	if got := FormatQuantity(decimal.RequireFromString("2.5")); got != "2,5" {
		t.Fatalf("expected 2,5, got %s", got)
	}
	if got := FormatQuantity(decimal.NewFromInt(5)); got != "5" {
		t.Fatalf("expected 5, got %s", got)
	}
}
