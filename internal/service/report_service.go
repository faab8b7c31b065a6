package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/order"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/product"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/report"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/cache"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
)

// ReportService gera o relatório mensal, com cache opcional no Redis
type ReportService struct {
	transactions transaction.Repository
	orders       order.Repository
	products     product.Repository
	reports      *cache.ReportCache
	loc          *time.Location
	log          logger.Logger
}

// NewReportService cria o serviço
func NewReportService(transactions transaction.Repository, orders order.Repository, products product.Repository, reports *cache.ReportCache, loc *time.Location, log logger.Logger) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{
		transactions: transactions,
		orders:       orders,
		products:     products,
		reports:      reports,
		loc:          loc,
		log:          orNop(log),
	}
}

func monthlyKey(month, year int) string {
	return fmt.Sprintf("%smonthly:%04d-%02d", reportCachePrefix, year, month)
}

// Monthly retorna o relatório do mês
func (s *ReportService) Monthly(ctx context.Context, month, year int) (*report.Monthly, error) {
	from, to, err := report.Period(month, year, s.loc)
	if err != nil {
		return nil, err
	}

	key := monthlyKey(month, year)
	var cached report.Monthly
	found, err := s.reports.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("erro ao ler relatório do cache", "key", key, "error", err)
	}
	if found {
		return &cached, nil
	}

	txs, err := s.transactions.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListPaidBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx, false)
	if err != nil {
		return nil, err
	}

	r, err := report.BuildMonthly(report.Input{
		Month:        month,
		Year:         year,
		Location:     s.loc,
		Transactions: txs,
		Orders:       orders,
		Products:     products,
	})
	if err != nil {
		return nil, err
	}

	if err := s.reports.Set(ctx, key, r); err != nil {
		s.log.Warn("erro ao gravar relatório no cache", "key", key, "error", err)
	}
	return r, nil
}
