package transaction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewTransaction_Validation(t *testing.T) {
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		txType   Type
		amount   int64
		category string
		want     error
	}{
		{"income", TypeIncome, 1000, "Penjualan", nil},
		{"zero amount allowed", TypeExpense, 0, "Transport", nil},
		{"unknown type", Type("REFUND"), 1000, "Penjualan", ErrInvalidType},
		{"negative amount", TypeExpense, -1, "Transport", ErrNegativeAmount},
		{"blank category", TypeCapital, 1000, "  ", ErrEmptyCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTransaction(now, tc.txType, decimal.NewFromInt(tc.amount), tc.category, "")
			if err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestClassification(t *testing.T) {
	cases := []struct {
		txType   Type
		category string
		cogs     bool
		opex     bool
	}{
		{TypeExpense, CategoryRestock, true, false},
		{TypeExpense, "Belanja Pasar Induk", true, false},
		{TypeExpense, "Transport", false, true},
		{TypeExpense, CategoryProcurementCosts, false, true},
		{TypeIncome, "Belanja Pasar (HPP)", false, false},
		{TypeCapital, "Modal awal", false, false},
	}
	for _, tc := range cases {
		tx := &Transaction{Type: tc.txType, Category: tc.category}
		if tx.IsCostOfGoods() != tc.cogs || tx.IsOperatingExpense() != tc.opex {
			t.Errorf("%s/%q: expected cogs=%v opex=%v", tc.txType, tc.category, tc.cogs, tc.opex)
		}
	}
}

func TestFilter_Matches(t *testing.T) {
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	f := Filter{Type: TypeExpense, Category: "belanja", From: &from, To: &to}

	in := &Transaction{Type: TypeExpense, Category: CategoryRestock, Date: from}
	if !f.Matches(in) {
		t.Fatal("expected transaction on the first day to match")
	}
	if f.Matches(&Transaction{Type: TypeExpense, Category: CategoryRestock, Date: to}) {
		t.Fatal("upper bound must be exclusive")
	}
	if f.Matches(&Transaction{Type: TypeIncome, Category: CategoryRestock, Date: from}) {
		t.Fatal("type filter ignored")
	}
	if f.Matches(&Transaction{Type: TypeExpense, Category: "Transport", Date: from}) {
		t.Fatal("category filter ignored")
	}
}
