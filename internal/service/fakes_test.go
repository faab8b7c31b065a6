package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/costcomponent"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/customer"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/order"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/procurement"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/product"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

var errNotFound = errors.New("not found")

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func strPtr(s string) *string {
	return &s
}

// ledger guarda os lançamentos gravados pelos repositórios falsos
type ledger struct {
	mu      sync.Mutex
	entries []*transaction.Transaction
	fail    error
}

func (l *ledger) Create(_ context.Context, t *transaction.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail != nil {
		return l.fail
	}
	l.entries = append(l.entries, t)
	return nil
}

func (l *ledger) FindByID(_ context.Context, id string) (*transaction.Transaction, error) {
	for _, t := range l.entries {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errNotFound
}

func (l *ledger) List(_ context.Context, f transaction.Filter) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, t := range l.entries {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (l *ledger) ListBetween(_ context.Context, from, to time.Time) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, t := range l.entries {
		if !t.Date.Before(from) && t.Date.Before(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (l *ledger) Delete(_ context.Context, id string) error {
	for i, t := range l.entries {
		if t.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

type fakeProducts struct {
	items  map[string]*product.Product
	ledger *ledger
	fail   error
}

func newFakeProducts(l *ledger, ps ...*product.Product) *fakeProducts {
	f := &fakeProducts{items: map[string]*product.Product{}, ledger: l}
	for _, p := range ps {
		f.items[p.ID] = p
	}
	return f
}

func (f *fakeProducts) Create(_ context.Context, p *product.Product) error {
	f.items[p.ID] = p
	return nil
}

func (f *fakeProducts) FindByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) List(_ context.Context, activeOnly bool) ([]*product.Product, error) {
	var out []*product.Product
	for _, p := range f.items {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProducts) Update(_ context.Context, p *product.Product) error {
	existing, ok := f.items[p.ID]
	if !ok {
		return errNotFound
	}
	cp := *p
	cp.Stock = existing.Stock
	f.items[p.ID] = &cp
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return errNotFound
	}
	delete(f.items, id)
	return nil
}

// Restock imita a transação do banco: falha no lançamento desfaz o estoque
func (f *fakeProducts) Restock(ctx context.Context, id string, qty decimal.Decimal, entry *transaction.Transaction) (*product.Product, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, errNotFound
	}
	if f.fail != nil {
		return nil, f.fail
	}
	if entry != nil {
		if err := f.ledger.Create(ctx, entry); err != nil {
			return nil, err
		}
	}
	p.Stock = p.Stock.Add(qty)
	cp := *p
	return &cp, nil
}

type fakeComponents struct {
	items []*costcomponent.CostComponent
}

func (f *fakeComponents) Create(_ context.Context, c *costcomponent.CostComponent) error {
	f.items = append(f.items, c)
	return nil
}

func (f *fakeComponents) Delete(_ context.Context, id string) error {
	for i, c := range f.items {
		if c.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (f *fakeComponents) List(_ context.Context) ([]*costcomponent.CostComponent, error) {
	return f.items, nil
}

type fakeCustomers struct {
	items map[string]*customer.Customer
}

func newFakeCustomers(cs ...*customer.Customer) *fakeCustomers {
	f := &fakeCustomers{items: map[string]*customer.Customer{}}
	for _, c := range cs {
		f.items[c.ID] = c
	}
	return f
}

func (f *fakeCustomers) Create(_ context.Context, c *customer.Customer) error {
	f.items[c.ID] = c
	return nil
}

func (f *fakeCustomers) FindByID(_ context.Context, id string) (*customer.Customer, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (f *fakeCustomers) FindByPhone(_ context.Context, phone string) (*customer.Customer, error) {
	for _, c := range f.items {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeCustomers) List(_ context.Context, _ string, _, _ int) ([]*customer.Customer, error) {
	var out []*customer.Customer
	for _, c := range f.items {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCustomers) Count(_ context.Context, _ string) (int, error) {
	return len(f.items), nil
}

func (f *fakeCustomers) Update(_ context.Context, c *customer.Customer) error {
	f.items[c.ID] = c
	return nil
}

func (f *fakeCustomers) UpdateStatus(_ context.Context, id string, status customer.Status) error {
	c, ok := f.items[id]
	if !ok {
		return errNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeCustomers) Delete(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

type fakeOrders struct {
	items  map[string]*order.Order
	ledger *ledger
}

func newFakeOrders(l *ledger, os ...*order.Order) *fakeOrders {
	f := &fakeOrders{items: map[string]*order.Order{}, ledger: l}
	for _, o := range os {
		f.items[o.ID] = o
	}
	return f
}

func cloneOrder(o *order.Order) *order.Order {
	cp := *o
	cp.Items = append([]order.Item(nil), o.Items...)
	return &cp
}

func (f *fakeOrders) Create(_ context.Context, o *order.Order) error {
	f.items[o.ID] = cloneOrder(o)
	return nil
}

func (f *fakeOrders) FindByID(_ context.Context, id string) (*order.Order, error) {
	o, ok := f.items[id]
	if !ok {
		return nil, errNotFound
	}
	return cloneOrder(o), nil
}

func (f *fakeOrders) matching(flt order.Filter) []*order.Order {
	var out []*order.Order
	for _, o := range f.items {
		if flt.Status != "" && o.Status != flt.Status {
			continue
		}
		if flt.Channel != "" && o.Channel != flt.Channel {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (f *fakeOrders) List(_ context.Context, flt order.Filter) ([]*order.Order, error) {
	out := f.matching(flt)
	if flt.Offset > len(out) {
		return []*order.Order{}, nil
	}
	out = out[flt.Offset:]
	if flt.Limit > 0 && flt.Limit < len(out) {
		out = out[:flt.Limit]
	}
	return out, nil
}

func (f *fakeOrders) Count(_ context.Context, flt order.Filter) (int, error) {
	return len(f.matching(flt)), nil
}

func (f *fakeOrders) ListPaidBetween(_ context.Context, from, to time.Time) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range f.items {
		if o.IsPaid() && !o.Date.Before(from) && o.Date.Before(to) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeOrders) ListByStatusOn(_ context.Context, day time.Time, statuses []order.Status) ([]*order.Order, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	var out []*order.Order
	for _, o := range f.items {
		if o.Date.Before(from) || !o.Date.Before(to) {
			continue
		}
		for _, s := range statuses {
			if o.Status == s {
				out = append(out, o)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeOrders) Update(_ context.Context, o *order.Order) error {
	current, ok := f.items[o.ID]
	if !ok {
		return errNotFound
	}
	if current.Status.IsTerminal() {
		return order.ErrOrderClosed
	}
	f.items[o.ID] = cloneOrder(o)
	return nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, o *order.Order, from order.Status, entry *transaction.Transaction) error {
	current, ok := f.items[o.ID]
	if !ok {
		return errNotFound
	}
	if current.Status != from {
		return order.ErrInvalidTransition
	}
	if entry != nil {
		if err := f.ledger.Create(ctx, entry); err != nil {
			return err
		}
	}
	f.items[o.ID] = cloneOrder(o)
	return nil
}

func (f *fakeOrders) Delete(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

type fakeSessions struct {
	items    map[string]*procurement.Session
	products *fakeProducts
	ledger   *ledger
}

func cloneSession(s *procurement.Session) *procurement.Session {
	cp := *s
	cp.Items = append([]procurement.Item(nil), s.Items...)
	cp.Expenses = append([]procurement.Expense(nil), s.Expenses...)
	return &cp
}

func (f *fakeSessions) Create(_ context.Context, s *procurement.Session) error {
	f.items[s.ID] = cloneSession(s)
	return nil
}

func (f *fakeSessions) FindByID(_ context.Context, id string) (*procurement.Session, error) {
	s, ok := f.items[id]
	if !ok {
		return nil, errNotFound
	}
	return cloneSession(s), nil
}

func (f *fakeSessions) List(_ context.Context, _, _ int) ([]*procurement.Session, error) {
	var out []*procurement.Session
	for _, s := range f.items {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSessions) Update(_ context.Context, s *procurement.Session) error {
	current, ok := f.items[s.ID]
	if !ok {
		return errNotFound
	}
	if current.Status == procurement.StatusCompleted {
		return procurement.ErrSessionCompleted
	}
	if current.Status == procurement.StatusInProgress && s.Status == procurement.StatusOpen {
		return procurement.ErrInvalidTransition
	}
	f.items[s.ID] = cloneSession(s)
	return nil
}

func (f *fakeSessions) Complete(ctx context.Context, s *procurement.Session, c *procurement.Completion) error {
	if f.items[s.ID].Status == procurement.StatusCompleted {
		return procurement.ErrSessionCompleted
	}
	for _, m := range c.StockMovements {
		p, ok := f.products.items[m.ProductID]
		if !ok {
			return errNotFound
		}
		p.Stock = p.Stock.Add(m.Qty)
	}
	for _, t := range c.Transactions {
		if err := f.ledger.Create(ctx, t); err != nil {
			return err
		}
	}
	f.items[s.ID] = cloneSession(s)
	return nil
}

// staleOrders devolve a cópia lida antes de outra requisição gravar,
// simulando duas telas abertas no mesmo pedido
type staleOrders struct {
	*fakeOrders
	snapshot *order.Order
}

func (f *staleOrders) FindByID(ctx context.Context, id string) (*order.Order, error) {
	if f.snapshot != nil && f.snapshot.ID == id {
		return cloneOrder(f.snapshot), nil
	}
	return f.fakeOrders.FindByID(ctx, id)
}

type staleSessions struct {
	*fakeSessions
	snapshot *procurement.Session
}

func (f *staleSessions) FindByID(ctx context.Context, id string) (*procurement.Session, error) {
	if f.snapshot != nil && f.snapshot.ID == id {
		return cloneSession(f.snapshot), nil
	}
	return f.fakeSessions.FindByID(ctx, id)
}
