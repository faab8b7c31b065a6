package product

import (
	"errors"
	"fmt"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveQty    = errors.New("quantidade deve ser maior que zero")
	ErrNegativeTotalCost = errors.New("custo total não pode ser negativo")
)

// PlanRestock valida uma reposição de estoque e monta o lançamento de despesa
// correspondente. Retorna nil quando o custo total é zero: o estoque sobe
// mesmo assim, sem lançamento. O HPP do produto não é recalculado.
func PlanRestock(p *Product, qty, totalCost decimal.Decimal, now time.Time) (*transaction.Transaction, error) {
	if !qty.IsPositive() {
		return nil, ErrNonPositiveQty
	}

	if totalCost.IsNegative() {
		return nil, ErrNegativeTotalCost
	}

	if totalCost.IsZero() {
		return nil, nil
	}

	description := fmt.Sprintf("Restock %s %s %s (%s)",
		p.Name, money.FormatQuantity(qty), p.Unit, money.FormatRupiah(totalCost))

	entry, err := transaction.NewTransaction(now, transaction.TypeExpense, totalCost, transaction.CategoryRestock, description)
	if err != nil {
		return nil, err
	}
	entry.Reference = p.ID
	return entry, nil
}
