package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/dto"
	customerdomain "github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/customer"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
)

// CustomerController gerencia as requisições relacionadas a clientes
type CustomerController struct {
	customerRepo customerdomain.Repository
	logger       logger.Logger
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(customerRepo customerdomain.Repository, logger logger.Logger) *CustomerController {
	return &CustomerController{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cria um novo cliente. O telefone é normalizado para E.164.
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	customer, err := customerdomain.NewCustomer(req.Name, req.Phone, req.Address, req.Notes)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao criar cliente")
		return
	}

	if err := c.customerRepo.Create(ctx, customer); err != nil {
		respondError(ctx, c.logger, err, "erro ao salvar cliente")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// Get retorna um cliente pelo ID
// @Summary Buscar cliente
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id} [get]
func (c *CustomerController) Get(ctx *gin.Context) {
	customer, err := c.customerRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao buscar cliente")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// List retorna a lista de clientes
// @Summary Listar clientes
// @Description Retorna a lista de clientes paginada, com filtro opcional por nome
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param name query string false "Trecho do nome"
// @Success 200 {object} dto.CustomerListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	p := pagination(ctx)
	name := strings.TrimSpace(ctx.Query("name"))

	customers, err := c.customerRepo.List(ctx, name, p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao listar clientes")
		return
	}

	total, err := c.customerRepo.Count(ctx, name)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao contar clientes")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerListResponse(customers, total, p))
}

// Update atualiza um cliente
// @Summary Atualizar cliente
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id} [put]
func (c *CustomerController) Update(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	customer, err := c.customerRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao buscar cliente")
		return
	}

	if err := customer.Update(req.Name, req.Phone, req.Address, req.Notes); err != nil {
		respondError(ctx, c.logger, err, "erro ao atualizar dados do cliente")
		return
	}

	if err := c.customerRepo.Update(ctx, customer); err != nil {
		respondError(ctx, c.logger, err, "erro ao salvar cliente")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// Delete remove um cliente
// @Summary Remover cliente
// @Description Pedidos antigos mantêm o nome e o telefone gravados
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id} [delete]
func (c *CustomerController) Delete(ctx *gin.Context) {
	if err := c.customerRepo.Delete(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, err, "erro ao remover cliente")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UpdateStatus ativa ou desativa um cliente
// @Summary Atualizar status do cliente
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param status body dto.CustomerStatusRequest true "Novo status"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id}/status [patch]
func (c *CustomerController) UpdateStatus(ctx *gin.Context) {
	var req dto.CustomerStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	cust, err := c.customerRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao buscar cliente")
		return
	}

	if req.Status == customerdomain.StatusActive {
		cust.Activate()
	} else {
		cust.Deactivate()
	}

	if err := c.customerRepo.UpdateStatus(ctx, cust.ID, cust.Status); err != nil {
		respondError(ctx, c.logger, err, "erro ao atualizar status do cliente")
		return
	}

	message := "cliente desativado"
	if cust.IsActive() {
		message = "cliente ativado"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(message, dto.ToCustomerResponse(cust)))
}
