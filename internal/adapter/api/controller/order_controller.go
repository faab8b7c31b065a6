package controller

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/dto"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/order"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/service"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
	"github.com/shopspring/decimal"
)

// OrderService é o que o controller usa do serviço de pedidos
type OrderService interface {
	CreateManual(ctx context.Context, in service.OrderInput) (*order.Order, error)
	Get(ctx context.Context, id string) (*order.Order, error)
	List(ctx context.Context, f order.Filter) ([]*order.Order, int, error)
	Update(ctx context.Context, id string, in service.OrderUpdateInput) (*order.Order, error)
	UpdateItem(ctx context.Context, id string, index int, qty decimal.Decimal, price *decimal.Decimal) (*order.Order, error)
	UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error)
	Delete(ctx context.Context, id string) error
}

// OrderController gerencia os pedidos no painel administrativo
type OrderController struct {
	service OrderService
	loc     *time.Location
	logger  logger.Logger
}

// NewOrderController cria uma nova instância de OrderController
func NewOrderController(service OrderService, loc *time.Location, logger logger.Logger) *OrderController {
	return &OrderController{service: service, loc: loc, logger: logger}
}

// Create registra um pedido manual
// @Summary Criar pedido manual
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param order body dto.OrderRequest true "Dados do pedido"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
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

	o, err := c.service.CreateManual(ctx, in)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao criar pedido")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToOrderResponse(o))
}

// List lista pedidos com filtros e paginação
// @Summary Listar pedidos
// @Tags orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Página" default(1)
// @Param size query int false "Itens por página" default(10)
// @Param status query string false "Status (PENDING, PAID, ...)"
// @Param channel query string false "Canal (MANUAL, STOREFRONT)"
// @Param from query string false "Data inicial (AAAA-MM-DD)"
// @Param to query string false "Data final inclusiva (AAAA-MM-DD)"
// @Success 200 {object} dto.PageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	p := pagination(ctx)

	from, to, err := dateRange(ctx, c.loc)
	if err != nil {
		respondError(ctx, c.logger, err, "filtro de data inválido")
		return
	}

	f := order.Filter{
		Status:  order.Status(strings.ToUpper(ctx.Query("status"))),
		Channel: order.Channel(strings.ToUpper(ctx.Query("channel"))),
		From:    from,
		To:      to,
		Limit:   p.PageSize,
		Offset:  p.Offset(),
	}
	if f.Status != "" && !f.Status.Valid() {
		respondError(ctx, c.logger, order.ErrInvalidStatus, "filtro de status inválido")
		return
	}

	orders, total, err := c.service.List(ctx, f)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar pedidos")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPageResponse(dto.ToOrderListResponse(orders), total, p))
}

// Get busca um pedido pelo ID
// @Summary Buscar pedido
// @Tags orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id} [get]
func (c *OrderController) Get(ctx *gin.Context) {
	o, err := c.service.Get(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao buscar pedido")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

// Update altera itens, taxas ou observações de um pedido aberto
// @Summary Atualizar pedido
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param order body dto.OrderUpdateRequest true "Campos a alterar"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id} [put]
func (c *OrderController) Update(ctx *gin.Context) {
	var req dto.OrderUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	o, err := c.service.Update(ctx, ctx.Param("id"), req.ToInput())
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao atualizar pedido")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

// UpdateItem altera quantidade e preço de uma linha
// @Summary Alterar linha do pedido
// @Description O total da linha e os totais do pedido são recalculados. Em pedidos da loja o preço informado é ignorado.
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param index path int true "Posição da linha (a partir de 0)"
// @Param item body dto.OrderItemUpdateRequest true "Quantidade e preço"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id}/items/{index} [patch]
func (c *OrderController) UpdateItem(ctx *gin.Context) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		respondError(ctx, c.logger, order.ErrItemNotFound, "linha do pedido inválida")
		return
	}

	var req dto.OrderItemUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	o, err := c.service.UpdateItem(ctx, ctx.Param("id"), index, req.Qty, req.Price)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao alterar linha do pedido")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

// UpdateStatus aplica uma transição de status
// @Summary Alterar status do pedido
// @Description Ao mudar para PAID é criado o lançamento de receita "Penjualan" com o total do pedido
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param status body dto.OrderStatusRequest true "Novo status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id}/status [patch]
func (c *OrderController) UpdateStatus(ctx *gin.Context) {
	var req dto.OrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	status := order.Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	o, err := c.service.UpdateStatus(ctx, ctx.Param("id"), status)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao alterar status do pedido")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

// Delete remove um pedido que ainda não foi pago
// @Summary Remover pedido
// @Tags orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id} [delete]
func (c *OrderController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, err, "erro ao remover pedido")
		return
	}

	ctx.Status(http.StatusNoContent)
}
