package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/dto"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/product"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/service"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
	"github.com/shopspring/decimal"
)

// ProductService é o que o controller usa do catálogo
type ProductService interface {
	CreateProduct(ctx context.Context, in service.ProductInput) (*product.Product, error)
	UpdateProduct(ctx context.Context, id string, in service.ProductInput) (*product.Product, error)
	GetProduct(ctx context.Context, id string) (*product.Product, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]*product.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Restock(ctx context.Context, id string, qty, totalCost decimal.Decimal) (*service.RestockResult, error)
}

// ProductController gerencia as requisições relacionadas a produtos
type ProductController struct {
	service ProductService
	logger  logger.Logger
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(service ProductService, logger logger.Logger) *ProductController {
	return &ProductController{service: service, logger: logger}
}

func toProductInput(req dto.ProductRequest) service.ProductInput {
	return service.ProductInput{
		Name:       req.Name,
		Unit:       req.Unit,
		Category:   req.Category,
		CostPrice:  req.CostPrice,
		Price:      req.Price,
		Stock:      req.Stock,
		PromoPrice: req.PromoPrice,
		Variants:   req.DomainVariants(),
		Active:     req.Active,
	}
}

// Create cria um novo produto
// @Summary Criar produto
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	p, err := c.service.CreateProduct(ctx, toProductInput(req))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao criar produto")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

// List lista os produtos
// @Summary Listar produtos
// @Tags products
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param active query bool false "Somente produtos ativos"
// @Success 200 {array} dto.ProductResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	activeOnly, _ := strconv.ParseBool(ctx.DefaultQuery("active", "false"))

	products, err := c.service.ListProducts(ctx, activeOnly)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar produtos")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductListResponse(products))
}

// Get busca um produto pelo ID
// @Summary Buscar produto
// @Tags products
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	p, err := c.service.GetProduct(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao buscar produto")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Update atualiza um produto. O estoque só muda por reposição ou compra.
// @Summary Atualizar produto
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	p, err := c.service.UpdateProduct(ctx, ctx.Param("id"), toProductInput(req))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao atualizar produto")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Delete remove um produto
// @Summary Remover produto
// @Tags products
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	if err := c.service.DeleteProduct(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, err, "erro ao remover produto")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Restock soma a quantidade ao estoque e lança a despesa de HPP
// @Summary Repor estoque
// @Description Soma a quantidade ao estoque e registra a despesa "Belanja Pasar (HPP)" quando o custo total é positivo. O HPP do produto não muda.
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Param restock body dto.RestockRequest true "Quantidade e custo total"
// @Success 200 {object} dto.RestockResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id}/restock [post]
func (c *ProductController) Restock(ctx *gin.Context) {
	var req dto.RestockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	result, err := c.service.Restock(ctx, ctx.Param("id"), req.Qty, req.TotalCost)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao repor estoque")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRestockResponse(result.Product, result.Transaction))
}
