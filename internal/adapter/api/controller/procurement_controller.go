package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/dto"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/procurement"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/service"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
	"github.com/shopspring/decimal"
)

// ProcurementService é o que o controller usa das sessões de compra
type ProcurementService interface {
	Create(ctx context.Context, in service.SessionInput) (*procurement.Session, error)
	Get(ctx context.Context, id string) (*procurement.Session, error)
	List(ctx context.Context, limit, offset int) ([]*procurement.Session, error)
	UpdateItem(ctx context.Context, id, itemID string, costPrice *decimal.Decimal, purchased bool) (*procurement.Session, error)
	AddExpense(ctx context.Context, id, name string, amount decimal.Decimal) (*procurement.Session, error)
	RemoveExpense(ctx context.Context, id, expenseID string) (*procurement.Session, error)
	Start(ctx context.Context, id string) (*procurement.Session, error)
	Complete(ctx context.Context, id string) (*procurement.Session, *procurement.Completion, error)
}

// ProcurementController gerencia as sessões de compra no mercado
type ProcurementController struct {
	service ProcurementService
	loc     *time.Location
	logger  logger.Logger
}

// NewProcurementController cria uma nova instância de ProcurementController
func NewProcurementController(service ProcurementService, loc *time.Location, logger logger.Logger) *ProcurementController {
	return &ProcurementController{service: service, loc: loc, logger: logger}
}

// Create abre uma sessão de compra
// @Summary Criar sessão de compra
// @Description Sem itens, a lista é montada a partir dos pedidos do dia em PENDING, CONFIRMED ou PREPARING
// @Tags procurement
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param session body dto.SessionRequest true "Data, itens e observações"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procurement/sessions [post]
func (c *ProcurementController) Create(ctx *gin.Context) {
	var req dto.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	in, err := req.ToInput(c.loc)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao criar sessão de compra")
		return
	}

	s, err := c.service.Create(ctx, in)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao criar sessão de compra")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSessionResponse(s))
}

// List lista as sessões mais recentes
// @Summary Listar sessões de compra
// @Tags procurement
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Página" default(1)
// @Param size query int false "Itens por página" default(10)
// @Success 200 {array} dto.SessionResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procurement/sessions [get]
func (c *ProcurementController) List(ctx *gin.Context) {
	p := pagination(ctx)

	sessions, err := c.service.List(ctx, p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar sessões de compra")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionListResponse(sessions))
}

// Get busca uma sessão com itens, gastos e totais
// @Summary Buscar sessão de compra
// @Tags procurement
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da sessão"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procurement/sessions/{id} [get]
func (c *ProcurementController) Get(ctx *gin.Context) {
	s, err := c.service.Get(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao buscar sessão de compra")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionResponse(s))
}

// UpdateItem registra o preço pago e marca o item como comprado
// @Summary Atualizar item da sessão
// @Tags procurement
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da sessão"
// @Param itemId path string true "ID do item"
// @Param item body dto.SessionItemUpdateRequest true "Preço e situação"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /procurement/sessions/{id}/items/{itemId} [patch]
func (c *ProcurementController) UpdateItem(ctx *gin.Context) {
	var req dto.SessionItemUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	s, err := c.service.UpdateItem(ctx, ctx.Param("id"), ctx.Param("itemId"), req.CostPrice, req.Purchased)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao atualizar item")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionResponse(s))
}

// AddExpense registra um gasto avulso (transporte, estacionamento)
// @Summary Adicionar gasto à sessão
// @Tags procurement
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da sessão"
// @Param expense body dto.ExpenseRequest true "Nome e valor"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /procurement/sessions/{id}/expenses [post]
func (c *ProcurementController) AddExpense(ctx *gin.Context) {
	var req dto.ExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	s, err := c.service.AddExpense(ctx, ctx.Param("id"), req.Name, req.Amount)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao adicionar gasto")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSessionResponse(s))
}

// RemoveExpense remove um gasto da sessão
// @Summary Remover gasto da sessão
// @Tags procurement
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da sessão"
// @Param expenseId path string true "ID do gasto"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /procurement/sessions/{id}/expenses/{expenseId} [delete]
func (c *ProcurementController) RemoveExpense(ctx *gin.Context) {
	s, err := c.service.RemoveExpense(ctx, ctx.Param("id"), ctx.Param("expenseId"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao remover gasto")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionResponse(s))
}

// Start marca a sessão como em andamento
// @Summary Iniciar sessão de compra
// @Tags procurement
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da sessão"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /procurement/sessions/{id}/start [post]
func (c *ProcurementController) Start(ctx *gin.Context) {
	s, err := c.service.Start(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao iniciar sessão de compra")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionResponse(s))
}

// Complete conclui a sessão: atualiza estoque e custo dos itens comprados e
// lança as despesas de HPP e de gastos avulsos
// @Summary Concluir sessão de compra
// @Tags procurement
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da sessão"
// @Success 200 {object} dto.CompletionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procurement/sessions/{id}/complete [post]
func (c *ProcurementController) Complete(ctx *gin.Context) {
	s, completion, err := c.service.Complete(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao concluir sessão de compra")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompletionResponse(s, completion))
}
