package product

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("nome do produto não pode ser vazio")
	ErrNegativePrice     = errors.New("preço não pode ser negativo")
	ErrNegativeStock     = errors.New("estoque não pode ser negativo")
	ErrInvalidPromoPrice = errors.New("preço promocional deve estar entre zero e o preço de venda")
)

// Variant é uma combinação alternativa de unidade e preço do mesmo produto
type Variant struct {
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	IsDefault bool            `json:"is_default"`
}

// Product representa um item do catálogo
type Product struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Unit       string           `json:"unit"`
	Category   string           `json:"category"`
	Price      decimal.Decimal  `json:"price"`       // Preço de venda
	CostPrice  decimal.Decimal  `json:"cost_price"`  // HPP, base de custo
	Stock      decimal.Decimal  `json:"stock"`       // Pode ser fracionário (kg)
	PromoPrice *decimal.Decimal `json:"promo_price"` // nil = sem promoção
	Variants   []Variant        `json:"variants"`
	Active     bool             `json:"active"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// NewProduct cria um novo produto
func NewProduct(name, unit string, costPrice, price, stock decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if costPrice.IsNegative() || price.IsNegative() {
		return nil, ErrNegativePrice
	}

	if stock.IsNegative() {
		return nil, ErrNegativeStock
	}

	now := time.Now()
	return &Product{
		ID:        uuid.New().String(),
		Name:      name,
		Unit:      strings.TrimSpace(unit),
		Price:     price,
		CostPrice: costPrice,
		Stock:     stock,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update atualiza os dados editáveis. Preço e HPP são independentes.
func (p *Product) Update(name, unit, category string, costPrice, price decimal.Decimal, promoPrice *decimal.Decimal, variants []Variant, active bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	if costPrice.IsNegative() || price.IsNegative() {
		return ErrNegativePrice
	}

	if promoPrice != nil && (promoPrice.IsNegative() || promoPrice.GreaterThan(price)) {
		return ErrInvalidPromoPrice
	}

	for _, v := range variants {
		if v.Price.IsNegative() {
			return ErrNegativePrice
		}
	}

	p.Name = name
	p.Unit = strings.TrimSpace(unit)
	p.Category = strings.TrimSpace(category)
	p.CostPrice = costPrice
	p.Price = price
	p.PromoPrice = promoPrice
	p.Variants = variants
	p.Active = active
	p.UpdatedAt = time.Now()
	return nil
}

// EffectivePrice retorna o preço promocional quando definido
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.PromoPrice != nil {
		return *p.PromoPrice
	}
	return p.Price
}

// DefaultVariant retorna a primeira variante marcada como padrão ou,
// na falta dela, a primeira variante. A unicidade da marca não é imposta.
func (p *Product) DefaultVariant() *Variant {
	if len(p.Variants) == 0 {
		return nil
	}
	for i := range p.Variants {
		if p.Variants[i].IsDefault {
			return &p.Variants[i]
		}
	}
	return &p.Variants[0]
}

// InventoryValue é o valor do estoque ao custo (estoque * HPP)
func (p *Product) InventoryValue() decimal.Decimal {
	if p.Stock.IsNegative() {
		return decimal.Zero
	}
	return p.Stock.Mul(p.CostPrice)
}
