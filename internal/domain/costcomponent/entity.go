package costcomponent

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName       = errors.New("nome não pode ser vazio")
	ErrNonPositiveCost = errors.New("custo deve ser maior que zero")
)

// CostComponent representa um item de custo reutilizável (embalagem, insumo)
type CostComponent struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Cost      decimal.Decimal `json:"cost"` // Custo por uma unidade
	Unit      string          `json:"unit"` // Rótulo de exibição, ex: "pcs"
	CreatedAt time.Time       `json:"created_at"`
}

// NewCostComponent cria um novo componente de custo
func NewCostComponent(name string, cost decimal.Decimal, unit string) (*CostComponent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if !cost.IsPositive() {
		return nil, ErrNonPositiveCost
	}

	return &CostComponent{
		ID:        uuid.New().String(),
		Name:      name,
		Cost:      cost,
		Unit:      strings.TrimSpace(unit),
		CreatedAt: time.Now(),
	}, nil
}
