package procurement

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNoItems           = errors.New("sessão de compras deve ter ao menos um item")
	ErrEmptyProductName  = errors.New("nome do produto não pode ser vazio")
	ErrNonPositiveQty    = errors.New("quantidade deve ser maior que zero")
	ErrNegativeCost      = errors.New("preço de custo não pode ser negativo")
	ErrEmptyExpenseName  = errors.New("descrição da despesa não pode ser vazia")
	ErrNonPositiveAmount = errors.New("valor da despesa deve ser maior que zero")
	ErrItemNotFound      = errors.New("item da sessão não encontrado")
	ErrExpenseNotFound   = errors.New("despesa da sessão não encontrada")
	ErrSessionCompleted  = errors.New("sessão de compras já concluída")
	ErrInvalidTransition = errors.New("transição de status não permitida")
)

// Status representa a etapa da sessão de compras
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// Item é uma linha da lista de compras
type Item struct {
	ID          string           `json:"id"`
	ProductID   *string          `json:"product_id"`
	ProductName string           `json:"product_name"`
	Unit        string           `json:"unit"`
	TotalQty    decimal.Decimal  `json:"total_qty"`
	CostPrice   *decimal.Decimal `json:"cost_price"` // nil = ainda não informado
	Purchased   bool             `json:"purchased"`
}

// NewItem cria uma linha da lista de compras
func NewItem(productID *string, productName, unit string, qty decimal.Decimal) (Item, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return Item{}, ErrEmptyProductName
	}
	if !qty.IsPositive() {
		return Item{}, ErrNonPositiveQty
	}

	return Item{
		ID:          uuid.New().String(),
		ProductID:   productID,
		ProductName: productName,
		Unit:        strings.TrimSpace(unit),
		TotalQty:    qty,
	}, nil
}

// Cost retorna custo unitário * quantidade, ou zero sem custo informado
func (it Item) Cost() decimal.Decimal {
	if it.CostPrice == nil {
		return decimal.Zero
	}
	return it.CostPrice.Mul(it.TotalQty)
}

// Expense é um gasto avulso da ida ao mercado (transporte, estacionamento...)
type Expense struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Totals agrega os valores da sessão
type Totals struct {
	ItemsTotal    decimal.Decimal `json:"items_total"`
	ExpensesTotal decimal.Decimal `json:"expenses_total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// Session representa uma sessão de compras no mercado
type Session struct {
	ID          string     `json:"id"`
	Date        time.Time  `json:"date"`
	Status      Status     `json:"status"`
	Items       []Item     `json:"items"`
	Expenses    []Expense  `json:"expenses"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// NewSession cria uma sessão OPEN
func NewSession(date time.Time, items []Item, notes string) (*Session, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	now := time.Now()
	if date.IsZero() {
		date = now
	}

	return &Session{
		ID:        uuid.New().String(),
		Date:      date,
		Status:    StatusOpen,
		Items:     items,
		Expenses:  []Expense{},
		Notes:     strings.TrimSpace(notes),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Totals calcula itens + despesas. Itens sem custo contam zero.
func (s *Session) Totals() Totals {
	items := decimal.Zero
	for _, it := range s.Items {
		items = items.Add(it.Cost())
	}

	expenses := decimal.Zero
	for _, e := range s.Expenses {
		expenses = expenses.Add(e.Amount)
	}

	return Totals{
		ItemsTotal:    items,
		ExpensesTotal: expenses,
		GrandTotal:    items.Add(expenses),
	}
}

// Start move a sessão de OPEN para IN_PROGRESS
func (s *Session) Start() error {
	if s.Status != StatusOpen {
		return ErrInvalidTransition
	}
	s.Status = StatusInProgress
	s.UpdatedAt = time.Now()
	return nil
}

// UpdateItem registra o custo unitário pago e se o item foi comprado
func (s *Session) UpdateItem(itemID string, costPrice *decimal.Decimal, purchased bool) error {
	if s.Status == StatusCompleted {
		return ErrSessionCompleted
	}
	if costPrice != nil && costPrice.IsNegative() {
		return ErrNegativeCost
	}

	for i := range s.Items {
		if s.Items[i].ID == itemID {
			s.Items[i].CostPrice = costPrice
			s.Items[i].Purchased = purchased
			s.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrItemNotFound
}

// AddExpense inclui um gasto avulso
func (s *Session) AddExpense(name string, amount decimal.Decimal) (*Expense, error) {
	if s.Status == StatusCompleted {
		return nil, ErrSessionCompleted
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyExpenseName
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	e := Expense{ID: uuid.New().String(), Name: name, Amount: amount}
	s.Expenses = append(s.Expenses, e)
	s.UpdatedAt = time.Now()
	return &e, nil
}

// RemoveExpense remove um gasto avulso
func (s *Session) RemoveExpense(expenseID string) error {
	if s.Status == StatusCompleted {
		return ErrSessionCompleted
	}

	for i, e := range s.Expenses {
		if e.ID == expenseID {
			s.Expenses = append(s.Expenses[:i], s.Expenses[i+1:]...)
			s.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrExpenseNotFound
}
