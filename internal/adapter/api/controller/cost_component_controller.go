package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/dto"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/costcomponent"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
	"github.com/shopspring/decimal"
)

// CostComponentService é o que o controller usa da biblioteca de componentes
type CostComponentService interface {
	CreateComponent(ctx context.Context, name string, cost decimal.Decimal, unit string) (*costcomponent.CostComponent, error)
	ListComponents(ctx context.Context) ([]*costcomponent.CostComponent, error)
	DeleteComponent(ctx context.Context, id string) error
}

// CostComponentController gerencia a biblioteca de componentes de custo
type CostComponentController struct {
	service CostComponentService
	logger  logger.Logger
}

// NewCostComponentController cria uma nova instância de CostComponentController
func NewCostComponentController(service CostComponentService, logger logger.Logger) *CostComponentController {
	return &CostComponentController{service: service, logger: logger}
}

// Create cadastra um componente de custo
// @Summary Criar componente de custo
// @Description Cadastra um item de custo reutilizável (embalagem, insumo)
// @Tags cost-components
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param component body dto.CostComponentRequest true "Dados do componente"
// @Success 201 {object} dto.CostComponentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /cost-components [post]
func (c *CostComponentController) Create(ctx *gin.Context) {
	var req dto.CostComponentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	component, err := c.service.CreateComponent(ctx, req.Name, req.Cost, req.Unit)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao criar componente de custo")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCostComponentResponse(component))
}

// List lista os componentes na ordem de criação
// @Summary Listar componentes de custo
// @Tags cost-components
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} dto.CostComponentResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /cost-components [get]
func (c *CostComponentController) List(ctx *gin.Context) {
	components, err := c.service.ListComponents(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar componentes de custo")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCostComponentListResponse(components))
}

// Delete remove um componente
// @Summary Remover componente de custo
// @Description Remove o componente. Produtos já calculados não são afetados.
// @Tags cost-components
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do componente"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /cost-components/{id} [delete]
func (c *CostComponentController) Delete(ctx *gin.Context) {
	if err := c.service.DeleteComponent(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, err, "erro ao remover componente de custo")
		return
	}

	ctx.Status(http.StatusNoContent)
}
