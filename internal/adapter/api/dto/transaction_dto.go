package dto

import (
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// TransactionRequest representa um lançamento manual
type TransactionRequest struct {
	Date        string          `json:"date"`
	Type        string          `json:"type" binding:"required,oneof=INCOME EXPENSE CAPITAL"`
	Amount      decimal.Decimal `json:"amount" binding:"decimal_gte0"`
	Category    string          `json:"category" binding:"required,notblank"`
	Description string          `json:"description"`
}

// TransactionResponse representa a resposta de lançamento
type TransactionResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Reference   string          `json:"reference,omitempty"`
	IsCOGS      bool            `json:"is_cogs"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToTransactionResponse converte o lançamento para DTO
func ToTransactionResponse(t *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Date:        t.Date,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Reference:   t.Reference,
		IsCOGS:      t.IsCostOfGoods(),
		CreatedAt:   t.CreatedAt,
	}
}

// ToTransactionListResponse converte a lista de lançamentos
func ToTransactionListResponse(items []*transaction.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(items))
	for _, t := range items {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}
