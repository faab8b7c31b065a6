package dto

import (
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/costcomponent"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/pricing"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/product"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// CostComponentRequest representa a requisição de componente de custo
type CostComponentRequest struct {
	Name string          `json:"name" binding:"required,notblank"`
	Cost decimal.Decimal `json:"cost" binding:"decimal_gt0"`
	Unit string          `json:"unit"`
}

// CostComponentResponse representa a resposta de componente de custo
type CostComponentResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Cost      decimal.Decimal `json:"cost"`
	Unit      string          `json:"unit"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToCostComponentResponse converte o componente para DTO
func ToCostComponentResponse(c *costcomponent.CostComponent) CostComponentResponse {
	return CostComponentResponse{
		ID:        c.ID,
		Name:      c.Name,
		Cost:      c.Cost,
		Unit:      c.Unit,
		CreatedAt: c.CreatedAt,
	}
}

// ToCostComponentListResponse converte a lista de componentes
func ToCostComponentListResponse(items []*costcomponent.CostComponent) []CostComponentResponse {
	out := make([]CostComponentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, ToCostComponentResponse(c))
	}
	return out
}

// HPPComponentRequest é uma linha de componente no cálculo
type HPPComponentRequest struct {
	ComponentID string          `json:"component_id"`
	Name        string          `json:"name"`
	Cost        decimal.Decimal `json:"cost" binding:"decimal_gte0"`
	Qty         decimal.Decimal `json:"qty" binding:"decimal_gte0"`
}

// HPPRequest representa a entrada do cálculo de HPP
type HPPRequest struct {
	BaseMaterialCost decimal.Decimal       `json:"base_material_cost" binding:"decimal_gte0"`
	ShrinkagePercent decimal.Decimal       `json:"shrinkage_percent" binding:"decimal_gte0"`
	Components       []HPPComponentRequest `json:"components" binding:"dive"`
	MarginPercent    decimal.Decimal       `json:"margin_percent"`
}

// ToInput converte a requisição para a entrada do cálculo
func (r HPPRequest) ToInput() pricing.Input {
	lines := make([]pricing.ComponentLine, 0, len(r.Components))
	for _, c := range r.Components {
		lines = append(lines, pricing.ComponentLine{
			ComponentID: c.ComponentID,
			Name:        c.Name,
			Cost:        c.Cost,
			Qty:         c.Qty,
		})
	}
	return pricing.Input{
		BaseMaterialCost: r.BaseMaterialCost,
		ShrinkagePercent: r.ShrinkagePercent,
		Components:       lines,
		MarginPercent:    r.MarginPercent,
	}
}

// HPPSaveRequest salva o resultado do cálculo como produto
type HPPSaveRequest struct {
	HPPRequest
	ProductName string `json:"product_name" binding:"required,notblank"`
	Unit        string `json:"unit"`
	Category    string `json:"category"`
}

// HPPSaveResponse devolve o produto criado e o cálculo usado
type HPPSaveResponse struct {
	Product     ProductResponse `json:"product"`
	Calculation pricing.Result  `json:"calculation"`
}

// VariantRequest representa uma variante de unidade e preço
type VariantRequest struct {
	Unit      string          `json:"unit" binding:"required,notblank"`
	Price     decimal.Decimal `json:"price" binding:"decimal_gte0"`
	IsDefault bool            `json:"is_default"`
}

// ProductRequest representa a requisição de produto
type ProductRequest struct {
	Name       string           `json:"name" binding:"required,notblank"`
	Unit       string           `json:"unit"`
	Category   string           `json:"category"`
	CostPrice  decimal.Decimal  `json:"cost_price" binding:"decimal_gte0"`
	Price      decimal.Decimal  `json:"price" binding:"decimal_gte0"`
	Stock      decimal.Decimal  `json:"stock" binding:"decimal_gte0"`
	PromoPrice *decimal.Decimal `json:"promo_price" binding:"omitempty,decimal_gte0"`
	Variants   []VariantRequest `json:"variants" binding:"dive"`
	Active     *bool            `json:"active"`
}

// DomainVariants converte as variantes da requisição
func (r ProductRequest) DomainVariants() []product.Variant {
	if len(r.Variants) == 0 {
		return nil
	}
	out := make([]product.Variant, 0, len(r.Variants))
	for _, v := range r.Variants {
		out = append(out, product.Variant{Unit: v.Unit, Price: v.Price, IsDefault: v.IsDefault})
	}
	return out
}

// ProductResponse representa a resposta de produto
type ProductResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Unit           string            `json:"unit"`
	Category       string            `json:"category"`
	Price          decimal.Decimal   `json:"price"`
	CostPrice      decimal.Decimal   `json:"cost_price"`
	Stock          decimal.Decimal   `json:"stock"`
	PromoPrice     *decimal.Decimal  `json:"promo_price"`
	EffectivePrice decimal.Decimal   `json:"effective_price"`
	Variants       []product.Variant `json:"variants"`
	Active         bool              `json:"active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ToProductResponse converte o produto para DTO
func ToProductResponse(p *product.Product) ProductResponse {
	variants := p.Variants
	if variants == nil {
		variants = []product.Variant{}
	}
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Unit:           p.Unit,
		Category:       p.Category,
		Price:          p.Price,
		CostPrice:      p.CostPrice,
		Stock:          p.Stock,
		PromoPrice:     p.PromoPrice,
		EffectivePrice: p.EffectivePrice(),
		Variants:       variants,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductListResponse converte a lista de produtos
func ToProductListResponse(items []*product.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ToProductResponse(p))
	}
	return out
}

// StorefrontProductResponse expõe apenas dados públicos do produto
type StorefrontProductResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Unit           string            `json:"unit"`
	Category       string            `json:"category"`
	Price          decimal.Decimal   `json:"price"`
	PromoPrice     *decimal.Decimal  `json:"promo_price"`
	EffectivePrice decimal.Decimal   `json:"effective_price"`
	Variants       []product.Variant `json:"variants"`
}

// ToStorefrontProductList converte o catálogo público (sem custo e estoque)
func ToStorefrontProductList(items []*product.Product) []StorefrontProductResponse {
	out := make([]StorefrontProductResponse, 0, len(items))
	for _, p := range items {
		variants := p.Variants
		if variants == nil {
			variants = []product.Variant{}
		}
		out = append(out, StorefrontProductResponse{
			ID:             p.ID,
			Name:           p.Name,
			Unit:           p.Unit,
			Category:       p.Category,
			Price:          p.Price,
			PromoPrice:     p.PromoPrice,
			EffectivePrice: p.EffectivePrice(),
			Variants:       variants,
		})
	}
	return out
}

// RestockRequest representa uma reposição de estoque
type RestockRequest struct {
	Qty       decimal.Decimal `json:"qty" binding:"decimal_gt0"`
	TotalCost decimal.Decimal `json:"total_cost" binding:"decimal_gte0"`
}

// RestockResponse devolve o produto e o lançamento gerado
type RestockResponse struct {
	Product     ProductResponse      `json:"product"`
	Transaction *TransactionResponse `json:"transaction"`
}

// ToRestockResponse converte o resultado da reposição
func ToRestockResponse(p *product.Product, t *transaction.Transaction) RestockResponse {
	resp := RestockResponse{Product: ToProductResponse(p)}
	if t != nil {
		tr := ToTransactionResponse(t)
		resp.Transaction = &tr
	}
	return resp
}
