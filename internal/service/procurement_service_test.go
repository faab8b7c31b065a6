package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/order"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/procurement"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/product"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

type procurementFixture struct {
	svc      *ProcurementService
	sessions *fakeSessions
	products *fakeProducts
	orders   *fakeOrders
	ledger   *ledger
	bawang   *product.Product
}

func newProcurementFixture(t *testing.T) *procurementFixture {
	t.Helper()

	bawang, _ := product.NewProduct("Bawang Merah", "kg", dec("30000"), dec("40000"), dec("1"))
	l := &ledger{}
	products := newFakeProducts(l, bawang)
	orders := newFakeOrders(l)
	sessions := &fakeSessions{items: map[string]*procurement.Session{}, products: products, ledger: l}

	svc := NewProcurementService(sessions, orders, nil, nil, time.UTC, nil)
	svc.now = func() time.Time { return orderDay.Add(time.Hour) }
	return &procurementFixture{svc: svc, sessions: sessions, products: products, orders: orders, ledger: l, bawang: bawang}
}

func (f *procurementFixture) addOrder(t *testing.T, at time.Time, status order.Status, items ...order.Item) {
	t.Helper()
	o, err := order.NewOrder(order.ChannelStorefront, at, order.Customer{Name: "Budi"}, items, decimal.Zero, decimal.Zero, decimal.Zero, "")
	if err != nil {
		t.Fatalf("order fixture: %v", err)
	}
	o.Status = status
	f.orders.items[o.ID] = o
}

func TestProcurementService_CreateFromOrders(t *testing.T) {
	f := newProcurementFixture(t)

	line := func(qty string) order.Item {
		it, _ := order.NewItem(&f.bawang.ID, "Bawang Merah", dec(qty), "kg", dec("40000"))
		return it
	}
	jahe, _ := order.NewItem(nil, "Jahe", dec("0.25"), "kg", dec("20000"))

	f.addOrder(t, orderDay, order.StatusPending, line("1.5"), jahe)
	f.addOrder(t, orderDay.Add(time.Hour), order.StatusConfirmed, line("1"))
	f.addOrder(t, orderDay, order.StatusPaid, line("10"))
	f.addOrder(t, orderDay.AddDate(0, 0, 1), order.StatusPending, line("10"))

	s, err := f.svc.Create(context.Background(), SessionInput{Date: orderDay})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != procurement.StatusOpen || len(s.Items) != 2 {
		t.Fatalf("expected 2 planned items, got %+v", s.Items)
	}
	if s.Items[0].ProductName != "Bawang Merah" || !s.Items[0].TotalQty.Equal(dec("2.5")) {
		t.Fatalf("unexpected first item %+v", s.Items[0])
	}

	empty := newProcurementFixture(t)
	if _, err := empty.svc.Create(context.Background(), SessionInput{Date: orderDay}); !errors.Is(err, procurement.ErrNoItems) {
		t.Fatalf("expected ErrNoItems without open orders, got %v", err)
	}
}

func TestProcurementService_Lifecycle(t *testing.T) {
	f := newProcurementFixture(t)
	ctx := context.Background()

	s, err := f.svc.Create(ctx, SessionInput{
		Date: orderDay,
		Items: []SessionItemInput{
			{ProductID: &f.bawang.ID, ProductName: "Bawang Merah", Unit: "kg", Qty: dec("3")},
			{ProductName: "Daun Pisang", Unit: "ikat", Qty: dec("2")},
			{ProductName: "Cabai", Unit: "kg", Qty: dec("1")},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.svc.Start(ctx, s.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.svc.Start(ctx, s.ID); !errors.Is(err, procurement.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second start, got %v", err)
	}

	if _, err := f.svc.UpdateItem(ctx, s.ID, s.Items[0].ID, decPtr("29000"), true); err != nil {
		t.Fatalf("update item: %v", err)
	}
	if _, err := f.svc.UpdateItem(ctx, s.ID, s.Items[1].ID, decPtr("5000"), true); err != nil {
		t.Fatalf("update item: %v", err)
	}
	if _, err := f.svc.UpdateItem(ctx, s.ID, s.Items[2].ID, decPtr("60000"), false); err != nil {
		t.Fatalf("update item: %v", err)
	}
	if _, err := f.svc.UpdateItem(ctx, s.ID, "missing", nil, true); !errors.Is(err, procurement.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	withParkir, err := f.svc.AddExpense(ctx, s.ID, "Parkir", dec("5000"))
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if _, err := f.svc.AddExpense(ctx, s.ID, "Ojek", dec("15000")); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if _, err := f.svc.RemoveExpense(ctx, s.ID, withParkir.Expenses[0].ID); err != nil {
		t.Fatalf("remove expense: %v", err)
	}

	current, _ := f.svc.Get(ctx, s.ID)
	totals := current.Totals()
	// 3*29000 + 2*5000 + 1*60000, belum dibeli tetap dihitung
	if !totals.ItemsTotal.Equal(dec("157000")) || !totals.ExpensesTotal.Equal(dec("15000")) || !totals.GrandTotal.Equal(dec("172000")) {
		t.Fatalf("unexpected totals %+v", totals)
	}

	done, completion, err := f.svc.Complete(ctx, s.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != procurement.StatusCompleted || done.CompletedAt == nil {
		t.Fatalf("unexpected session %+v", done)
	}
	if len(completion.StockMovements) != 1 {
		t.Fatalf("expected one stock movement, got %d", len(completion.StockMovements))
	}
	if !f.products.items[f.bawang.ID].Stock.Equal(dec("4")) {
		t.Fatalf("expected stock 4, got %s", f.products.items[f.bawang.ID].Stock)
	}

	var cogs, opex decimal.Decimal
	for _, e := range f.ledger.entries {
		if e.Reference != s.ID {
			t.Fatalf("entry must reference the session, got %q", e.Reference)
		}
		if e.IsCostOfGoods() {
			cogs = cogs.Add(e.Amount)
		} else if e.Category == transaction.CategoryProcurementCosts {
			opex = opex.Add(e.Amount)
		}
	}
	if !cogs.Equal(dec("97000")) || !opex.Equal(dec("15000")) {
		t.Fatalf("expected cogs 97000 / opex 15000, got %s / %s", cogs, opex)
	}

	if _, _, err := f.svc.Complete(ctx, s.ID); !errors.Is(err, procurement.ErrInvalidTransition) && !errors.Is(err, procurement.ErrSessionCompleted) {
		t.Fatalf("second completion must fail, got %v", err)
	}
	if _, err := f.svc.AddExpense(ctx, s.ID, "Tip", dec("1000")); !errors.Is(err, procurement.ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted, got %v", err)
	}
	if len(f.ledger.entries) != 3 {
		t.Fatalf("expected 3 ledger entries in total, got %d", len(f.ledger.entries))
	}
}

func TestProcurementService_StaleReadAfterComplete(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(svc *ProcurementService, s *procurement.Session) error
	}{
		{name: "add expense", mutate: func(svc *ProcurementService, s *procurement.Session) error {
			_, err := svc.AddExpense(context.Background(), s.ID, "Parkir", dec("2000"))
			return err
		}},
		{name: "update item", mutate: func(svc *ProcurementService, s *procurement.Session) error {
			_, err := svc.UpdateItem(context.Background(), s.ID, s.Items[0].ID, decPtr("31000"), true)
			return err
		}},
		{name: "complete again", mutate: func(svc *ProcurementService, s *procurement.Session) error {
			_, _, err := svc.Complete(context.Background(), s.ID)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProcurementFixture(t)
			ctx := context.Background()

			s, _ := f.svc.Create(ctx, SessionInput{
				Date:  orderDay,
				Items: []SessionItemInput{{ProductID: &f.bawang.ID, ProductName: "Bawang Merah", Unit: "kg", Qty: dec("2")}},
			})
			f.svc.Start(ctx, s.ID)
			f.svc.UpdateItem(ctx, s.ID, s.Items[0].ID, decPtr("30000"), true)
			inProgress, _ := f.sessions.FindByID(ctx, s.ID)

			if _, _, err := f.svc.Complete(ctx, s.ID); err != nil {
				t.Fatalf("complete: %v", err)
			}
			entries := len(f.ledger.entries)

			stale := NewProcurementService(&staleSessions{fakeSessions: f.sessions, snapshot: inProgress}, f.orders, nil, nil, time.UTC, nil)
			if err := tt.mutate(stale, inProgress); !errors.Is(err, procurement.ErrSessionCompleted) {
				t.Fatalf("expected ErrSessionCompleted, got %v", err)
			}

			stored, _ := f.sessions.FindByID(ctx, s.ID)
			if stored.Status != procurement.StatusCompleted {
				t.Fatalf("session reverted to %s", stored.Status)
			}
			if !f.products.items[f.bawang.ID].Stock.Equal(dec("3")) || len(f.ledger.entries) != entries {
				t.Fatalf("stock %s entries %d after stale write", f.products.items[f.bawang.ID].Stock, len(f.ledger.entries))
			}
		})
	}
}
