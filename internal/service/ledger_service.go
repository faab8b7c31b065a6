package service

import (
	"context"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/cache"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
	"github.com/shopspring/decimal"
)

// TransactionInput contém os dados de um lançamento manual
type TransactionInput struct {
	Date        time.Time
	Type        transaction.Type
	Amount      decimal.Decimal
	Category    string
	Description string
}

// LedgerService gerencia lançamentos manuais do livro-caixa
type LedgerService struct {
	invalidator
	repo transaction.Repository
}

// NewLedgerService cria o serviço
func NewLedgerService(repo transaction.Repository, reports *cache.ReportCache, log logger.Logger) *LedgerService {
	return &LedgerService{
		invalidator: invalidator{reports: reports, log: orNop(log)},
		repo:        repo,
	}
}

// Create registra um lançamento
func (s *LedgerService) Create(ctx context.Context, in TransactionInput) (*transaction.Transaction, error) {
	t, err := transaction.NewTransaction(in.Date, in.Type, in.Amount, in.Category, in.Description)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return t, nil
}

// Get busca um lançamento
func (s *LedgerService) Get(ctx context.Context, id string) (*transaction.Transaction, error) {
	return s.repo.FindByID(ctx, id)
}

// List lista lançamentos pelo filtro
func (s *LedgerService) List(ctx context.Context, f transaction.Filter) ([]*transaction.Transaction, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, transaction.ErrInvalidType
	}
	return s.repo.List(ctx, f)
}

// Delete remove um lançamento
func (s *LedgerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	return nil
}
