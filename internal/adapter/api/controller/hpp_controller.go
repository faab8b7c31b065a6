package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/dto"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/pricing"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/product"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
)

// HPPService calcula o HPP e salva o resultado como produto
type HPPService interface {
	CalculateHPP(in pricing.Input) (pricing.Result, error)
	SaveFromHPP(ctx context.Context, in pricing.Input, name, unit, category string) (*product.Product, pricing.Result, error)
}

// HPPController expõe a calculadora de HPP
type HPPController struct {
	service HPPService
	logger  logger.Logger
}

// NewHPPController cria uma nova instância de HPPController
func NewHPPController(service HPPService, logger logger.Logger) *HPPController {
	return &HPPController{service: service, logger: logger}
}

// Calculate calcula HPP e preço sugerido sem gravar nada
// @Summary Calcular HPP
// @Description Retorna perda, custo após perda, componentes, HPP, lucro, preço de venda e preço arredondado (múltiplo de 500)
// @Tags hpp
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param input body dto.HPPRequest true "Entrada do cálculo"
// @Success 200 {object} pricing.Result
// @Failure 400 {object} dto.ErrorResponse
// @Router /hpp/calculate [post]
func (c *HPPController) Calculate(ctx *gin.Context) {
	var req dto.HPPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	result, err := c.service.CalculateHPP(req.ToInput())
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao calcular HPP")
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Save calcula e grava o produto com custo = HPP e preço = preço arredondado
// @Summary Salvar produto a partir do HPP
// @Tags hpp
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param input body dto.HPPSaveRequest true "Entrada do cálculo e dados do produto"
// @Success 201 {object} dto.HPPSaveResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /hpp/save [post]
func (c *HPPController) Save(ctx *gin.Context) {
	var req dto.HPPSaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	p, result, err := c.service.SaveFromHPP(ctx, req.ToInput(), req.ProductName, req.Unit, req.Category)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao salvar produto")
		return
	}

	ctx.JSON(http.StatusCreated, dto.HPPSaveResponse{Product: dto.ToProductResponse(p), Calculation: result})
}
