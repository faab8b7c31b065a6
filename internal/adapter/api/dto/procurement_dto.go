package dto

import (
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/procurement"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/service"
	"github.com/shopspring/decimal"
)

// SessionItemRequest é um item informado manualmente
type SessionItemRequest struct {
	ProductID   *string         `json:"product_id"`
	ProductName string          `json:"product_name" binding:"required,notblank"`
	Unit        string          `json:"unit"`
	Qty         decimal.Decimal `json:"qty" binding:"decimal_gt0"`
}

// SessionRequest cria uma sessão; sem itens a lista vem dos pedidos abertos do dia
type SessionRequest struct {
	Date  string               `json:"date"`
	Items []SessionItemRequest `json:"items" binding:"dive"`
	Notes string               `json:"notes"`
}

// ToInput converte a requisição para a entrada do serviço
func (r SessionRequest) ToInput(loc *time.Location) (service.SessionInput, error) {
	date, err := ParseDate(r.Date, loc)
	if err != nil {
		return service.SessionInput{}, err
	}
	items := make([]service.SessionItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, service.SessionItemInput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Unit:        it.Unit,
			Qty:         it.Qty,
		})
	}
	return service.SessionInput{Date: date, Items: items, Notes: r.Notes}, nil
}

// SessionItemUpdateRequest registra o preço pago e se o item foi comprado
type SessionItemUpdateRequest struct {
	CostPrice *decimal.Decimal `json:"cost_price" binding:"omitempty,decimal_gte0"`
	Purchased bool             `json:"purchased"`
}

// ExpenseRequest representa um gasto avulso da sessão
type ExpenseRequest struct {
	Name   string          `json:"name" binding:"required,notblank"`
	Amount decimal.Decimal `json:"amount" binding:"decimal_gt0"`
}

// SessionResponse representa a sessão com seus totais
type SessionResponse struct {
	ID          string                `json:"id"`
	Date        time.Time             `json:"date"`
	Status      string                `json:"status"`
	Items       []procurement.Item    `json:"items"`
	Expenses    []procurement.Expense `json:"expenses"`
	Totals      procurement.Totals    `json:"totals"`
	Notes       string                `json:"notes"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	CompletedAt *time.Time            `json:"completed_at"`
}

// ToSessionResponse converte a sessão para DTO
func ToSessionResponse(s *procurement.Session) SessionResponse {
	items, expenses := s.Items, s.Expenses
	if items == nil {
		items = []procurement.Item{}
	}
	if expenses == nil {
		expenses = []procurement.Expense{}
	}
	return SessionResponse{
		ID:          s.ID,
		Date:        s.Date,
		Status:      string(s.Status),
		Items:       items,
		Expenses:    expenses,
		Totals:      s.Totals(),
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		CompletedAt: s.CompletedAt,
	}
}

// ToSessionListResponse converte a lista de sessões
func ToSessionListResponse(items []*procurement.Session) []SessionResponse {
	out := make([]SessionResponse, 0, len(items))
	for _, s := range items {
		out = append(out, ToSessionResponse(s))
	}
	return out
}

// CompletionResponse devolve a sessão concluída e o que foi gravado
type CompletionResponse struct {
	Session        SessionResponse             `json:"session"`
	StockMovements []procurement.StockMovement `json:"stock_movements"`
	Transactions   []TransactionResponse       `json:"transactions"`
}

// ToCompletionResponse converte o resultado da conclusão
func ToCompletionResponse(s *procurement.Session, c *procurement.Completion) CompletionResponse {
	movements := c.StockMovements
	if movements == nil {
		movements = []procurement.StockMovement{}
	}
	return CompletionResponse{
		Session:        ToSessionResponse(s),
		StockMovements: movements,
		Transactions:   ToTransactionListResponse(c.Transactions),
	}
}
