// Package service orquestra domínio, repositórios, cache de relatórios e
// locks. Os controllers HTTP dependem apenas desta camada.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/cache"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
)

// reportCachePrefix agrupa todas as chaves de relatório no Redis
const reportCachePrefix = "report:"

var (
	ErrProductRequired   = errors.New("produto é obrigatório para pedidos da loja")
	ErrProductInactive   = errors.New("produto indisponível")
	ErrPriceRequired     = errors.New("preço é obrigatório quando o produto não é informado")
	ErrPaidOrderDeletion = errors.New("pedido pago não pode ser removido")
)

// invalidator é embutido pelos serviços que alteram dados do relatório
type invalidator struct {
	reports *cache.ReportCache
	log     logger.Logger
}

// invalidateReports descarta os relatórios em cache após uma escrita
func (i invalidator) invalidateReports(ctx context.Context) {
	i.reports.InvalidatePrefix(ctx, reportCachePrefix)
}

func orNop(log logger.Logger) logger.Logger {
	if log == nil {
		return logger.Nop{}
	}
	return log
}

func systemNow() time.Time {
	return time.Now()
}
