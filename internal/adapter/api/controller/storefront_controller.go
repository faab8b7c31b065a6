package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/dto"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/order"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/product"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/service"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
)

// StorefrontCatalog lista os produtos visíveis na loja
type StorefrontCatalog interface {
	ListProducts(ctx context.Context, activeOnly bool) ([]*product.Product, error)
}

// StorefrontOrders registra pedidos feitos pela loja
type StorefrontOrders interface {
	CreateStorefront(ctx context.Context, in service.OrderInput) (*order.Order, error)
}

// StorefrontController atende a loja online (rotas públicas)
type StorefrontController struct {
	catalog StorefrontCatalog
	orders  StorefrontOrders
	loc     *time.Location
	logger  logger.Logger
}

// NewStorefrontController cria uma nova instância de StorefrontController
func NewStorefrontController(catalog StorefrontCatalog, orders StorefrontOrders, loc *time.Location, logger logger.Logger) *StorefrontController {
	return &StorefrontController{catalog: catalog, orders: orders, loc: loc, logger: logger}
}

// ListProducts lista o catálogo público
// @Summary Catálogo da loja
// @Description Produtos ativos com preço efetivo e variantes, sem custo e estoque
// @Tags storefront
// @Produce json
// @Success 200 {array} dto.StorefrontProductResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /storefront/products [get]
func (c *StorefrontController) ListProducts(ctx *gin.Context) {
	products, err := c.catalog.ListProducts(ctx, true)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar produtos")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStorefrontProductList(products))
}

// CreateOrder registra um pedido da loja online
// @Summary Criar pedido pela loja
// @Description Preços vêm do catálogo. customer_id, date, shipping_fee, service_fee e discount são ignorados: data do servidor, taxas zero, vínculo de cliente só pelo telefone. O pedido nasce PENDING.
// @Tags storefront
// @Accept json
// @Produce json
// @Param order body dto.OrderRequest true "Dados do pedido"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /storefront/orders [post]
func (c *StorefrontController) CreateOrder(ctx *gin.Context) {
	var req dto.OrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	in, err := req.ToInput(c.loc)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao criar pedido")
		return
	}

	o, err := c.orders.CreateStorefront(ctx, in)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao criar pedido")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToOrderResponse(o))
}
