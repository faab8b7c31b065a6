package controller

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/dto"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/service"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
)

// LedgerService é o que o controller usa do livro caixa
type LedgerService interface {
	Create(ctx context.Context, in service.TransactionInput) (*transaction.Transaction, error)
	Get(ctx context.Context, id string) (*transaction.Transaction, error)
	List(ctx context.Context, f transaction.Filter) ([]*transaction.Transaction, error)
	Delete(ctx context.Context, id string) error
}

// TransactionController gerencia os lançamentos financeiros
type TransactionController struct {
	service LedgerService
	loc     *time.Location
	logger  logger.Logger
}

// NewTransactionController cria uma nova instância de TransactionController
func NewTransactionController(service LedgerService, loc *time.Location, logger logger.Logger) *TransactionController {
	return &TransactionController{service: service, loc: loc, logger: logger}
}

// Create registra um lançamento manual
// @Summary Criar lançamento
// @Tags transactions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param transaction body dto.TransactionRequest true "Dados do lançamento"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions [post]
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	date, err := dto.ParseDate(req.Date, c.loc)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao criar lançamento")
		return
	}

	t, err := c.service.Create(ctx, service.TransactionInput{
		Date:        date,
		Type:        transaction.Type(req.Type),
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao criar lançamento")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(t))
}

// List lista lançamentos com filtros
// @Summary Listar lançamentos
// @Tags transactions
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param type query string false "INCOME, EXPENSE ou CAPITAL"
// @Param category query string false "Trecho da categoria"
// @Param from query string false "Data inicial (AAAA-MM-DD)"
// @Param to query string false "Data final inclusiva (AAAA-MM-DD)"
// @Param page query int false "Página" default(1)
// @Param size query int false "Itens por página" default(10)
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions [get]
func (c *TransactionController) List(ctx *gin.Context) {
	p := pagination(ctx)

	from, to, err := dateRange(ctx, c.loc)
	if err != nil {
		respondError(ctx, c.logger, err, "filtro de data inválido")
		return
	}

	items, err := c.service.List(ctx, transaction.Filter{
		Type:     transaction.Type(strings.ToUpper(ctx.Query("type"))),
		Category: ctx.Query("category"),
		From:     from,
		To:       to,
		Limit:    p.PageSize,
		Offset:   p.Offset(),
	})
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar lançamentos")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(items))
}

// Get busca um lançamento
// @Summary Buscar lançamento
// @Tags transactions
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do lançamento"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /transactions/{id} [get]
func (c *TransactionController) Get(ctx *gin.Context) {
	t, err := c.service.Get(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao buscar lançamento")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(t))
}

// Delete remove um lançamento
// @Summary Remover lançamento
// @Tags transactions
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do lançamento"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /transactions/{id} [delete]
func (c *TransactionController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, err, "erro ao remover lançamento")
		return
	}

	ctx.Status(http.StatusNoContent)
}
