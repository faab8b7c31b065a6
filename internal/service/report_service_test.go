package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/order"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/product"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/report"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

func TestReportService_Monthly(t *testing.T) {
	ctx := context.Background()
	l := &ledger{}
	ledgerSvc := NewLedgerService(l, nil, nil)

	march := func(day int) time.Time { return time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC) }
	entries := []TransactionInput{
		{Date: march(2), Type: transaction.TypeIncome, Amount: dec("1000000"), Category: transaction.CategorySales},
		{Date: march(3), Type: transaction.TypeExpense, Amount: dec("400000"), Category: transaction.CategoryRestock},
		{Date: march(4), Type: transaction.TypeExpense, Amount: dec("100000"), Category: "Listrik"},
		{Date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Type: transaction.TypeIncome, Amount: dec("999"), Category: "Lain"},
	}
	for _, in := range entries {
		if _, err := ledgerSvc.Create(ctx, in); err != nil {
			t.Fatalf("ledger create: %v", err)
		}
	}

	beras, _ := product.NewProduct("Beras", "kg", dec("12000"), dec("15000"), dec("10"))
	item, _ := order.NewItem(&beras.ID, "Beras", dec("4"), "kg", dec("15000"))
	paid, _ := order.NewOrder(order.ChannelManual, march(2), order.Customer{Name: "Budi"}, []order.Item{item}, decimal.Zero, decimal.Zero, decimal.Zero, "")
	paid.Status = order.StatusPaid
	pending, _ := order.NewOrder(order.ChannelManual, march(2), order.Customer{Name: "Ani"}, []order.Item{item}, decimal.Zero, decimal.Zero, decimal.Zero, "")

	svc := NewReportService(l, newFakeOrders(l, paid, pending), newFakeProducts(l, beras), nil, time.UTC, nil)

	r, err := svc.Monthly(ctx, 3, 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"revenue", r.Revenue, "1000000"},
		{"cogs", r.COGS, "400000"},
		{"opex", r.OperatingExpenses, "100000"},
		{"gross profit", r.GrossProfit, "600000"},
		{"net profit", r.NetProfit, "500000"},
		{"net margin", r.NetMargin, "50"},
		{"avg order", r.AvgOrderValue, "1000000"},
		{"inventory", r.InventoryValue, "120000"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.want)) {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, c.got)
		}
	}
	if r.PaidOrders != 1 || len(r.TopProducts) != 1 || r.TopProducts[0].Name != "Beras" {
		t.Fatalf("unexpected orders section %d %+v", r.PaidOrders, r.TopProducts)
	}

	if _, err := svc.Monthly(ctx, 13, 2026); !errors.Is(err, report.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestLedgerService(t *testing.T) {
	ctx := context.Background()
	l := &ledger{}
	svc := NewLedgerService(l, nil, nil)

	if _, err := svc.Create(ctx, TransactionInput{Type: "GIFT", Amount: dec("1"), Category: "x"}); !errors.Is(err, transaction.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	if _, err := svc.Create(ctx, TransactionInput{Type: transaction.TypeExpense, Amount: dec("1"), Category: "  "}); !errors.Is(err, transaction.ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}

	capital, err := svc.Create(ctx, TransactionInput{Type: transaction.TypeCapital, Amount: dec("5000000"), Category: "Modal Awal"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capital.Date.IsZero() {
		t.Fatal("date must default to now")
	}
	svc.Create(ctx, TransactionInput{Type: transaction.TypeExpense, Amount: dec("20000"), Category: "Belanja Pasar (HPP)"})

	list, _ := svc.List(ctx, transaction.Filter{Category: "belanja"})
	if len(list) != 1 {
		t.Fatalf("expected category filter to match one entry, got %d", len(list))
	}
	if _, err := svc.List(ctx, transaction.Filter{Type: "GIFT"}); !errors.Is(err, transaction.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}

	if err := svc.Delete(ctx, capital.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, capital.ID); !errors.Is(err, errNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
