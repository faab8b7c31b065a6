package service

import (
	"context"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/costcomponent"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/pricing"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/product"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/cache"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
	"github.com/shopspring/decimal"
)

// ProductInput contém os dados editáveis de um produto
type ProductInput struct {
	Name       string
	Unit       string
	Category   string
	CostPrice  decimal.Decimal
	Price      decimal.Decimal
	Stock      decimal.Decimal // usado apenas na criação
	PromoPrice *decimal.Decimal
	Variants   []product.Variant
	Active     *bool // nil = ativo
}

// RestockResult é o produto atualizado e o lançamento gerado, se houver
type RestockResult struct {
	Product     *product.Product
	Transaction *transaction.Transaction
}

// CatalogService cuida de componentes de custo, cálculo de HPP, produtos e reposição
type CatalogService struct {
	invalidator
	products   product.Repository
	components costcomponent.Repository
	locker     *cache.Locker
	now        func() time.Time
}

// NewCatalogService cria o serviço. reports e locker podem ser nil.
func NewCatalogService(products product.Repository, components costcomponent.Repository, reports *cache.ReportCache, locker *cache.Locker, log logger.Logger) *CatalogService {
	return &CatalogService{
		invalidator: invalidator{reports: reports, log: orNop(log)},
		products:    products,
		components:  components,
		locker:      locker,
		now:         systemNow,
	}
}

// CreateComponent cadastra um componente de custo
func (s *CatalogService) CreateComponent(ctx context.Context, name string, cost decimal.Decimal, unit string) (*costcomponent.CostComponent, error) {
	c, err := costcomponent.NewCostComponent(name, cost, unit)
	if err != nil {
		return nil, err
	}
	if err := s.components.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListComponents lista os componentes na ordem de criação
func (s *CatalogService) ListComponents(ctx context.Context) ([]*costcomponent.CostComponent, error) {
	return s.components.List(ctx)
}

// DeleteComponent remove um componente da biblioteca
func (s *CatalogService) DeleteComponent(ctx context.Context, id string) error {
	return s.components.Delete(ctx, id)
}

// CalculateHPP valida a entrada e calcula HPP e preço sugerido
func (s *CatalogService) CalculateHPP(in pricing.Input) (pricing.Result, error) {
	if err := in.Validate(); err != nil {
		return pricing.Result{}, err
	}
	return pricing.Calculate(in), nil
}

// SaveFromHPP cria um produto a partir do cálculo: custo = HPP total,
// preço = preço arredondado, estoque zero.
func (s *CatalogService) SaveFromHPP(ctx context.Context, in pricing.Input, name, unit, category string) (*product.Product, pricing.Result, error) {
	result, err := s.CalculateHPP(in)
	if err != nil {
		return nil, pricing.Result{}, err
	}

	p, err := s.CreateProduct(ctx, ProductInput{
		Name:      name,
		Unit:      unit,
		Category:  category,
		CostPrice: result.TotalHPP,
		Price:     result.RoundedPrice,
		Stock:     decimal.Zero,
	})
	if err != nil {
		return nil, pricing.Result{}, err
	}
	return p, result, nil
}

// CreateProduct cadastra um produto
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*product.Product, error) {
	p, err := product.NewProduct(in.Name, in.Unit, in.CostPrice, in.Price, in.Stock)
	if err != nil {
		return nil, err
	}

	active := in.Active == nil || *in.Active
	if err := p.Update(in.Name, in.Unit, in.Category, in.CostPrice, in.Price, in.PromoPrice, in.Variants, active); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateReports(ctx)
	s.log.Info("produto criado", "product_id", p.ID, "name", p.Name)
	return p, nil
}

// UpdateProduct altera os dados do produto. O estoque só muda por reposição.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*product.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	active := p.Active
	if in.Active != nil {
		active = *in.Active
	}
	if err := p.Update(in.Name, in.Unit, in.Category, in.CostPrice, in.Price, in.PromoPrice, in.Variants, active); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateReports(ctx)
	return p, nil
}

// GetProduct busca um produto
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	return s.products.FindByID(ctx, id)
}

// ListProducts lista o catálogo; activeOnly restringe aos produtos à venda
func (s *CatalogService) ListProducts(ctx context.Context, activeOnly bool) ([]*product.Product, error) {
	return s.products.List(ctx, activeOnly)
}

// DeleteProduct remove um produto
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	return nil
}

// Restock soma qty ao estoque e registra a despesa de compra quando
// totalCost > 0. Estoque e lançamento são gravados juntos.
func (s *CatalogService) Restock(ctx context.Context, id string, qty, totalCost decimal.Decimal) (*RestockResult, error) {
	release := s.locker.Acquire(ctx, "product:"+id)
	defer release()

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry, err := product.PlanRestock(p, qty, totalCost, s.now())
	if err != nil {
		return nil, err
	}

	updated, err := s.products.Restock(ctx, id, qty, entry)
	if err != nil {
		return nil, err
	}

	s.invalidateReports(ctx)
	s.log.Info("estoque reposto", "product_id", id, "qty", qty.String(), "total_cost", totalCost.String())
	return &RestockResult{Product: updated, Transaction: entry}, nil
}
