package transaction

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidType    = errors.New("tipo de transação inválido")
	ErrNegativeAmount = errors.New("valor não pode ser negativo")
	ErrEmptyCategory  = errors.New("categoria não pode ser vazia")
)

// Type representa a natureza do lançamento
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
	TypeCapital Type = "CAPITAL"
)

// Categorias gravadas automaticamente pelo sistema
const (
	CategoryRestock          = "Belanja Pasar (HPP)"
	CategoryProcurementCosts = "Biaya Operasional Belanja"
	CategorySales            = "Penjualan"
)

// cogsMarker identifica despesas de custo da mercadoria vendida.
// Classificação por substring do nome da categoria: qualquer categoria que
// contenha o texto conta como HPP. Um campo explícito seria mais seguro, mas
// os dados existentes dependem dessa convenção.
const cogsMarker = "Belanja Pasar"

// Valid verifica se o tipo é conhecido
func (t Type) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeCapital:
		return true
	}
	return false
}

// Transaction representa um lançamento no livro-caixa
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Type        Type            `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"` // Origem do lançamento (produto, sessão de compras)
	CreatedAt   time.Time       `json:"created_at"`
}

// NewTransaction cria um novo lançamento
func NewTransaction(date time.Time, txType Type, amount decimal.Decimal, category, description string) (*Transaction, error) {
	if !txType.Valid() {
		return nil, ErrInvalidType
	}

	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrEmptyCategory
	}

	if date.IsZero() {
		date = time.Now()
	}

	return &Transaction{
		ID:          uuid.New().String(),
		Date:        date,
		Type:        txType,
		Amount:      amount,
		Category:    category,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now(),
	}, nil
}

// IsCostOfGoods indica se o lançamento é uma despesa de HPP
func (t *Transaction) IsCostOfGoods() bool {
	return t.Type == TypeExpense && IsCostOfGoodsCategory(t.Category)
}

// IsOperatingExpense indica se o lançamento é despesa operacional
func (t *Transaction) IsOperatingExpense() bool {
	return t.Type == TypeExpense && !IsCostOfGoodsCategory(t.Category)
}

// IsCostOfGoodsCategory aplica a convenção de nome de categoria
func IsCostOfGoodsCategory(category string) bool {
	return strings.Contains(category, cogsMarker)
}

// Filter contém os critérios de listagem de lançamentos
type Filter struct {
	Type     Type
	Category string // substring
	From     *time.Time
	To       *time.Time // exclusivo
	Limit    int
	Offset   int
}

// Matches verifica se o lançamento satisfaz o filtro (sem paginação)
func (f Filter) Matches(t *Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Category != "" && !strings.Contains(strings.ToLower(t.Category), strings.ToLower(f.Category)) {
		return false
	}
	if f.From != nil && t.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.Date.Before(*f.To) {
		return false
	}
	return true
}
