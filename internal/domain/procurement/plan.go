package procurement

import (
	"fmt"
	"strings"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/order"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/money"
	"github.com/shopspring/decimal"
)

// PlanFromOrders monta a lista de compras somando as quantidades dos itens
// dos pedidos. Agrupa pelo ID do produto ou, sem ele, pelo nome. A ordem
// segue a primeira ocorrência.
func PlanFromOrders(orders []*order.Order) ([]Item, error) {
	index := make(map[string]int)
	var items []Item

	for _, o := range orders {
		for _, line := range o.Items {
			key := itemKey(line.ProductID, line.ProductName)
			if i, ok := index[key]; ok {
				items[i].TotalQty = items[i].TotalQty.Add(line.Qty)
				continue
			}

			it, err := NewItem(line.ProductID, line.ProductName, line.Unit, line.Qty)
			if err != nil {
				return nil, err
			}
			index[key] = len(items)
			items = append(items, it)
		}
	}
	return items, nil
}

func itemKey(productID *string, name string) string {
	if productID != nil && *productID != "" {
		return "id:" + *productID
	}
	return "name:" + strings.ToLower(strings.TrimSpace(name))
}

// StockMovement é uma entrada de estoque gerada pela conclusão da sessão
type StockMovement struct {
	ProductID string          `json:"product_id"`
	Qty       decimal.Decimal `json:"qty"`
}

// Completion reúne tudo que a conclusão grava de uma vez
type Completion struct {
	StockMovements []StockMovement            `json:"stock_movements"`
	Transactions   []*transaction.Transaction `json:"transactions"`
}

// Complete conclui a sessão e devolve as entradas de estoque e os
// lançamentos a gravar. Só itens comprados geram movimento; itens com custo
// viram despesa de HPP e gastos avulsos viram despesa operacional.
func (s *Session) Complete(now time.Time) (*Completion, error) {
	if s.Status != StatusInProgress {
		return nil, ErrInvalidTransition
	}

	c := &Completion{}
	for _, it := range s.Items {
		if !it.Purchased {
			continue
		}

		if it.ProductID != nil && *it.ProductID != "" {
			c.StockMovements = append(c.StockMovements, StockMovement{ProductID: *it.ProductID, Qty: it.TotalQty})
		}

		cost := it.Cost()
		if !cost.IsPositive() {
			continue
		}
		description := fmt.Sprintf("Belanja %s %s %s (%s)",
			it.ProductName, money.FormatQuantity(it.TotalQty), it.Unit, money.FormatRupiah(cost))
		entry, err := transaction.NewTransaction(now, transaction.TypeExpense, cost, transaction.CategoryRestock, description)
		if err != nil {
			return nil, err
		}
		entry.Reference = s.ID
		c.Transactions = append(c.Transactions, entry)
	}

	for _, e := range s.Expenses {
		entry, err := transaction.NewTransaction(now, transaction.TypeExpense, e.Amount, transaction.CategoryProcurementCosts, e.Name)
		if err != nil {
			return nil, err
		}
		entry.Reference = s.ID
		c.Transactions = append(c.Transactions, entry)
	}

	s.Status = StatusCompleted
	s.CompletedAt = &now
	s.UpdatedAt = now
	return c, nil
}
