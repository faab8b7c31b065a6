package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/order"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/procurement"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/product"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/database"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
	"github.com/shopspring/decimal"
)

// Os testes deste arquivo rodam contra um PostgreSQL real apontado por
// TEST_DATABASE_URL. O banco é migrado e as tabelas são esvaziadas.
func openTestDB(t *testing.T) *database.PostgresDB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL não definido")
	}

	cfg := &database.PostgresConfig{URL: url, MaxConnections: 4, MaxConnLifetime: time.Minute}
	if err := database.RunMigrations(cfg, "../../../migrations"); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	db, err := database.NewPostgresDB(cfg, logger.Nop{})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(db.Close)

	_, err = db.Pool().Exec(context.Background(),
		`TRUNCATE order_items, orders, procurement_expenses, procurement_items, procurement_sessions,
			transactions, customers, products, cost_components`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func countTransactions(t *testing.T, db *database.PostgresDB) int {
	t.Helper()
	var n int
	if err := db.Pool().QueryRow(context.Background(), `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func expense(t *testing.T, amount string) *transaction.Transaction {
	t.Helper()
	entry, err := transaction.NewTransaction(time.Now(), transaction.TypeExpense, dec(amount), transaction.CategoryRestock, "Restock")
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	return entry
}

func TestProductRepository_RestockIsAtomic(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	products := NewPostgresProductRepository(db)

	// HPP com perda gera mais casas do que o preço de tabela
	p, _ := product.NewProduct("Bawang Merah", "kg", dec("33333.3333"), dec("40000"), dec("1.125"))
	if err := products.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	stored, err := products.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !stored.CostPrice.Equal(p.CostPrice) || !stored.Stock.Equal(p.Stock) {
		t.Fatalf("stored values differ: cost %s stock %s", stored.CostPrice, stored.Stock)
	}

	updated, err := products.Restock(ctx, p.ID, dec("2.5"), expense(t, "75000"))
	if err != nil {
		t.Fatalf("restock: %v", err)
	}
	if !updated.Stock.Equal(dec("3.625")) || countTransactions(t, db) != 1 {
		t.Fatalf("expected stock 3.625 and one entry, got %s / %d", updated.Stock, countTransactions(t, db))
	}

	if _, err := products.Restock(ctx, uuid.NewString(), dec("1"), expense(t, "1000")); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if countTransactions(t, db) != 1 {
		t.Fatal("failed restock must not leave a ledger entry")
	}
}

func TestOrderRepository_UpdateStatusChecksPreviousStatus(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	orders := NewPostgresOrderRepository(db)

	item, _ := order.NewItem(nil, "Ayam Potong", dec("1.5"), "ekor", dec("40000"))
	o, _ := order.NewOrder(order.ChannelManual, time.Now(), order.Customer{Name: "Budi"}, []order.Item{item}, decimal.Zero, decimal.Zero, decimal.Zero, "")
	if err := orders.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, _ := orders.FindByID(ctx, o.ID)
	second, _ := orders.FindByID(ctx, o.ID)

	pay := func(loaded *order.Order) error {
		from := loaded.Status
		if err := loaded.TransitionTo(order.StatusPaid); err != nil {
			return err
		}
		entry, err := loaded.SalesEntry(time.Now())
		if err != nil {
			return err
		}
		return orders.UpdateStatus(ctx, loaded, from, entry)
	}

	if err := pay(first); err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if err := pay(second); !errors.Is(err, order.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if countTransactions(t, db) != 1 {
		t.Fatalf("expected one income entry, got %d", countTransactions(t, db))
	}

	second.Notes = "antar sore"
	if err := orders.Update(ctx, second); !errors.Is(err, order.ErrOrderClosed) {
		t.Fatalf("expected ErrOrderClosed, got %v", err)
	}

	if err := orders.UpdateStatus(ctx, &order.Order{ID: uuid.NewString(), Status: order.StatusPaid}, order.StatusPending, nil); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestProcurementRepository_CompleteIsAtomic(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	products := NewPostgresProductRepository(db)
	sessions := NewPostgresProcurementRepository(db)

	p, _ := product.NewProduct("Cabai", "kg", dec("50000"), dec("60000"), dec("1"))
	if err := products.Create(ctx, p); err != nil {
		t.Fatalf("create product: %v", err)
	}

	line, _ := procurement.NewItem(&p.ID, "Cabai", "kg", dec("2"))
	s, _ := procurement.NewSession(time.Now(), []procurement.Item{line}, "")
	if err := sessions.Create(ctx, s); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.UpdateItem(s.Items[0].ID, decPtr("48000"), true); err != nil {
		t.Fatalf("update item: %v", err)
	}
	if err := sessions.Update(ctx, s); err != nil {
		t.Fatalf("update: %v", err)
	}
	stale, _ := sessions.FindByID(ctx, s.ID)

	// Movimento para produto inexistente desfaz tudo
	broken := &procurement.Completion{
		StockMovements: []procurement.StockMovement{{ProductID: p.ID, Qty: dec("2")}, {ProductID: uuid.NewString(), Qty: dec("1")}},
		Transactions:   []*transaction.Transaction{expense(t, "96000")},
	}
	if err := sessions.Complete(ctx, s, broken); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	unchanged, _ := products.FindByID(ctx, p.ID)
	if !unchanged.Stock.Equal(dec("1")) || countTransactions(t, db) != 0 {
		t.Fatalf("failed completion leaked writes: stock %s entries %d", unchanged.Stock, countTransactions(t, db))
	}

	completion, err := s.Complete(time.Now())
	if err != nil {
		t.Fatalf("domain complete: %v", err)
	}
	if err := sessions.Complete(ctx, s, completion); err != nil {
		t.Fatalf("complete: %v", err)
	}
	entries := countTransactions(t, db)

	if err := sessions.Update(ctx, stale); !errors.Is(err, procurement.ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted on stale update, got %v", err)
	}
	again, _ := stale.Complete(time.Now())
	if err := sessions.Complete(ctx, stale, again); !errors.Is(err, procurement.ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted on second completion, got %v", err)
	}

	final, _ := products.FindByID(ctx, p.ID)
	if !final.Stock.Equal(dec("3")) || countTransactions(t, db) != entries {
		t.Fatalf("expected stock 3 and %d entries, got %s / %d", entries, final.Stock, countTransactions(t, db))
	}
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
