package order

import (
	"fmt"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
)

// SalesEntry monta o lançamento de receita de um pedido pago
func (o *Order) SalesEntry(now time.Time) (*transaction.Transaction, error) {
	description := fmt.Sprintf("Pesanan %s - %s", o.OrderNumber, o.Customer.Name)
	entry, err := transaction.NewTransaction(now, transaction.TypeIncome, o.GrandTotal, transaction.CategorySales, description)
	if err != nil {
		return nil, err
	}
	entry.Reference = o.ID
	return entry, nil
}
