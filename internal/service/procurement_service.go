package service

import (
	"context"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/order"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/procurement"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/cache"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
	"github.com/shopspring/decimal"
)

// openOrderStatuses são os pedidos ainda a entregar, usados na lista de compras
var openOrderStatuses = []order.Status{order.StatusPending, order.StatusConfirmed, order.StatusPreparing}

// SessionItemInput é um item informado manualmente na lista de compras
type SessionItemInput struct {
	ProductID   *string
	ProductName string
	Unit        string
	Qty         decimal.Decimal
}

// SessionInput cria uma sessão. Sem itens, a lista é montada a partir dos
// pedidos abertos do dia.
type SessionInput struct {
	Date  time.Time
	Items []SessionItemInput
	Notes string
}

// ProcurementService conduz a sessão de compras no mercado
type ProcurementService struct {
	invalidator
	sessions procurement.Repository
	orders   order.Repository
	locker   *cache.Locker
	loc      *time.Location
	now      func() time.Time
}

// NewProcurementService cria o serviço. loc define o "dia" dos pedidos.
func NewProcurementService(sessions procurement.Repository, orders order.Repository, reports *cache.ReportCache, locker *cache.Locker, loc *time.Location, log logger.Logger) *ProcurementService {
	if loc == nil {
		loc = time.Local
	}
	return &ProcurementService{
		invalidator: invalidator{reports: reports, log: orNop(log)},
		sessions:    sessions,
		orders:      orders,
		locker:      locker,
		loc:         loc,
		now:         systemNow,
	}
}

// Create abre uma nova sessão de compras
func (s *ProcurementService) Create(ctx context.Context, in SessionInput) (*procurement.Session, error) {
	date := in.Date
	if date.IsZero() {
		date = s.now()
	}
	date = date.In(s.loc)

	var items []procurement.Item
	if len(in.Items) > 0 {
		for _, line := range in.Items {
			item, err := procurement.NewItem(line.ProductID, line.ProductName, line.Unit, line.Qty)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	} else {
		orders, err := s.orders.ListByStatusOn(ctx, date, openOrderStatuses)
		if err != nil {
			return nil, err
		}
		items, err = procurement.PlanFromOrders(orders)
		if err != nil {
			return nil, err
		}
	}

	session, err := procurement.NewSession(date, items, in.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("sessão de compras criada", "session_id", session.ID, "items", len(session.Items))
	return session, nil
}

// Get busca uma sessão com itens e despesas
func (s *ProcurementService) Get(ctx context.Context, id string) (*procurement.Session, error) {
	return s.sessions.FindByID(ctx, id)
}

// List lista as sessões mais recentes
func (s *ProcurementService) List(ctx context.Context, limit, offset int) ([]*procurement.Session, error) {
	return s.sessions.List(ctx, limit, offset)
}

// UpdateItem registra o preço pago e a marcação de comprado
func (s *ProcurementService) UpdateItem(ctx context.Context, id, itemID string, costPrice *decimal.Decimal, purchased bool) (*procurement.Session, error) {
	return s.mutate(ctx, id, func(session *procurement.Session) error {
		return session.UpdateItem(itemID, costPrice, purchased)
	})
}

// AddExpense inclui um gasto avulso (transporte, parkir, sacolas)
func (s *ProcurementService) AddExpense(ctx context.Context, id, name string, amount decimal.Decimal) (*procurement.Session, error) {
	return s.mutate(ctx, id, func(session *procurement.Session) error {
		_, err := session.AddExpense(name, amount)
		return err
	})
}

// RemoveExpense remove um gasto avulso
func (s *ProcurementService) RemoveExpense(ctx context.Context, id, expenseID string) (*procurement.Session, error) {
	return s.mutate(ctx, id, func(session *procurement.Session) error {
		return session.RemoveExpense(expenseID)
	})
}

// Start marca o início das compras
func (s *ProcurementService) Start(ctx context.Context, id string) (*procurement.Session, error) {
	return s.mutate(ctx, id, func(session *procurement.Session) error {
		return session.Start()
	})
}

// mutate usa a mesma trava de Complete; o repositório recusa gravar sobre
// uma sessão já concluída
func (s *ProcurementService) mutate(ctx context.Context, id string, fn func(*procurement.Session) error) (*procurement.Session, error) {
	release := s.locker.Acquire(ctx, "procurement:"+id)
	defer release()

	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Complete conclui a sessão: estoque dos itens comprados e lançamentos de
// despesa são gravados em uma única transação
func (s *ProcurementService) Complete(ctx context.Context, id string) (*procurement.Session, *procurement.Completion, error) {
	release := s.locker.Acquire(ctx, "procurement:"+id)
	defer release()

	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	completion, err := session.Complete(s.now())
	if err != nil {
		return nil, nil, err
	}

	if err := s.sessions.Complete(ctx, session, completion); err != nil {
		return nil, nil, err
	}

	s.invalidateReports(ctx)
	totals := session.Totals()
	s.log.Info("sessão de compras concluída",
		"session_id", session.ID,
		"stock_movements", len(completion.StockMovements),
		"transactions", len(completion.Transactions),
		"grand_total", totals.GrandTotal.String())
	return session, completion, nil
}
