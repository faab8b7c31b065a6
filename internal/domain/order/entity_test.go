package order

import (
	"testing"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func mustItem(t *testing.T, name, qty, price string) Item {
	t.Helper()
	it, err := NewItem(nil, name, dec(qty), "kg", dec(price))
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	return it
}

func TestNewItem_ComputesTotal(t *testing.T) {
	it := mustItem(t, "Bawang Merah", "2.5", "40000")
	if !it.Total.Equal(dec("100000")) {
		t.Fatalf("expected total 100000, got %s", it.Total)
	}

	if _, err := NewItem(nil, "Bawang", decimal.Zero, "kg", dec("1")); err != ErrNonPositiveQty {
		t.Fatalf("expected ErrNonPositiveQty, got %v", err)
	}
	if _, err := NewItem(nil, "", dec("1"), "kg", dec("1")); err != ErrEmptyProductName {
		t.Fatalf("expected ErrEmptyProductName, got %v", err)
	}
}

func TestSubtotal_EmptyIsZero(t *testing.T) {
	if got := Subtotal(nil); !got.IsZero() {
		t.Fatalf("expected 0, got %s", got)
	}
}

func TestNewOrder_Totals(t *testing.T) {
	items := []Item{
		mustItem(t, "Bawang Merah", "2", "40000"),
		mustItem(t, "Cabai Rawit", "0.5", "60000"),
	}
	o, err := NewOrder(ChannelManual, time.Time{}, Customer{Name: "Bu Sri"}, items,
		dec("10000"), dec("2000"), dec("5000"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !o.Subtotal.Equal(dec("110000")) {
		t.Fatalf("expected subtotal 110000, got %s", o.Subtotal)
	}
	if !o.GrandTotal.Equal(dec("117000")) {
		t.Fatalf("expected grand total 117000, got %s", o.GrandTotal)
	}
	if o.Status != StatusPending || o.OrderNumber == "" {
		t.Fatalf("unexpected order state %s %q", o.Status, o.OrderNumber)
	}
}

func TestGrandTotalIdentity(t *testing.T) {
	values := []string{"0", "1", "2500", "10000.5"}
	for _, sub := range values {
		for _, ship := range values {
			for _, svc := range values {
				for _, disc := range values {
					got := GrandTotal(dec(sub), dec(ship), dec(svc), dec(disc))
					want := dec(sub).Add(dec(ship)).Add(dec(svc)).Sub(dec(disc))
					if !got.Equal(want) {
						t.Fatalf("grand total mismatch for %s/%s/%s/%s", sub, ship, svc, disc)
					}
				}
			}
		}
	}
}

func TestNewOrder_ValidationBoundaries(t *testing.T) {
	items := []Item{mustItem(t, "Telur", "1", "28000")}

	if _, err := NewOrder(ChannelManual, time.Time{}, Customer{Name: "A"}, items, decimal.Zero, decimal.Zero, dec("30000"), ""); err != ErrNegativeGrandTotal {
		t.Fatalf("expected ErrNegativeGrandTotal, got %v", err)
	}
	if _, err := NewOrder(ChannelManual, time.Time{}, Customer{Name: "A"}, items, dec("-1"), decimal.Zero, decimal.Zero, ""); err != ErrNegativeAmount {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	if _, err := NewOrder(ChannelManual, time.Time{}, Customer{Name: " "}, items, decimal.Zero, decimal.Zero, decimal.Zero, ""); err != ErrEmptyCustomerName {
		t.Fatalf("expected ErrEmptyCustomerName, got %v", err)
	}
	if _, err := NewOrder(ChannelManual, time.Time{}, Customer{Name: "A"}, nil, decimal.Zero, decimal.Zero, decimal.Zero, ""); err != ErrNoItems {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
	if _, err := NewOrder(Channel("WA"), time.Time{}, Customer{Name: "A"}, items, decimal.Zero, decimal.Zero, decimal.Zero, ""); err != ErrInvalidChannel {
		t.Fatalf("expected ErrInvalidChannel, got %v", err)
	}
}

func TestUpdateItem_RecomputesTotals(t *testing.T) {
	items := []Item{mustItem(t, "Beras", "5", "15000"), mustItem(t, "Gula", "1", "17000")}
	o, err := NewOrder(ChannelManual, time.Time{}, Customer{Name: "Pak Budi"}, items, decimal.Zero, decimal.Zero, dec("2000"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := o.UpdateItem(0, dec("10"), dec("14500")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !o.Items[0].Total.Equal(dec("145000")) {
		t.Fatalf("line total not recomputed: %s", o.Items[0].Total)
	}
	if !o.Subtotal.Equal(dec("162000")) || !o.GrandTotal.Equal(dec("160000")) {
		t.Fatalf("order totals not recomputed: %s / %s", o.Subtotal, o.GrandTotal)
	}

	if err := o.UpdateItem(5, dec("1"), dec("1")); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestUpdateItem_RollsBackOnNegativeGrandTotal(t *testing.T) {
	items := []Item{mustItem(t, "Beras", "1", "15000")}
	o, _ := NewOrder(ChannelManual, time.Time{}, Customer{Name: "Pak Budi"}, items, decimal.Zero, decimal.Zero, dec("10000"), "")

	if err := o.UpdateItem(0, dec("1"), dec("5000")); err != ErrNegativeGrandTotal {
		t.Fatalf("expected ErrNegativeGrandTotal, got %v", err)
	}
	if !o.Items[0].Price.Equal(dec("15000")) || !o.GrandTotal.Equal(dec("5000")) {
		t.Fatalf("order changed after rejected update: %+v", o.Items[0])
	}
}

func TestSetItemsAndCharges(t *testing.T) {
	o, _ := NewOrder(ChannelManual, time.Time{}, Customer{Name: "Bu Sri"},
		[]Item{mustItem(t, "Beras", "1", "15000")}, decimal.Zero, decimal.Zero, decimal.Zero, "")

	if err := o.SetItems([]Item{mustItem(t, "Gula", "2", "17000")}); err != nil {
		t.Fatalf("SetItems: %v", err)
	}
	if err := o.SetCharges(dec("8000"), dec("1000"), dec("3000")); err != nil {
		t.Fatalf("SetCharges: %v", err)
	}
	if !o.GrandTotal.Equal(dec("40000")) {
		t.Fatalf("expected grand total 40000, got %s", o.GrandTotal)
	}

	if err := o.SetCharges(decimal.Zero, decimal.Zero, dec("50000")); err != ErrNegativeGrandTotal {
		t.Fatalf("expected ErrNegativeGrandTotal, got %v", err)
	}
	if !o.Discount.Equal(dec("3000")) {
		t.Fatalf("charges changed after rejected update: %s", o.Discount)
	}
	if err := o.SetItems(nil); err != ErrNoItems {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}

	o.TransitionTo(StatusPaid)
	if err := o.SetItems([]Item{mustItem(t, "Gula", "1", "17000")}); err != ErrOrderClosed {
		t.Fatalf("expected ErrOrderClosed, got %v", err)
	}
	if err := o.UpdateItem(0, dec("1"), dec("1")); err != ErrOrderClosed {
		t.Fatalf("expected ErrOrderClosed, got %v", err)
	}
}

func TestSalesEntry(t *testing.T) {
	o, _ := NewOrder(ChannelManual, time.Time{}, Customer{Name: "Bu Sri"},
		[]Item{mustItem(t, "Beras", "2", "15000")}, dec("5000"), decimal.Zero, decimal.Zero, "")

	entry, err := o.SalesEntry(time.Now())
	if err != nil {
		t.Fatalf("SalesEntry: %v", err)
	}
	if entry.Type != transaction.TypeIncome || !entry.Amount.Equal(dec("35000")) || entry.Reference != o.ID {
		t.Fatalf("unexpected entry %+v", entry)
	}
}
