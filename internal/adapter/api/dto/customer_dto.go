package dto

import (
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/customer"
)

// CustomerRequest representa a requisição de cliente
type CustomerRequest struct {
	Name    string `json:"name" binding:"required,notblank"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// CustomerStatusRequest representa a mudança de status do cliente
type CustomerStatusRequest struct {
	Status customer.Status `json:"status" binding:"required,oneof=active inactive"`
}

// CustomerResponse representa a resposta de cliente
type CustomerResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Address        string     `json:"address"`
	Notes          string     `json:"notes"`
	Status         string     `json:"status"`
	LastPurchaseAt *time.Time `json:"last_purchase_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CustomerListResponse representa a resposta de lista de clientes
type CustomerListResponse struct {
	Items      []*CustomerResponse `json:"items"`
	TotalCount int                 `json:"total_count"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

// ToCustomerResponse converte um cliente do domínio para DTO
func ToCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		Address:        c.Address,
		Notes:          c.Notes,
		Status:         string(c.Status),
		LastPurchaseAt: c.LastPurchaseAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ToCustomerListResponse converte uma lista de clientes do domínio para DTO
func ToCustomerListResponse(customers []*customer.Customer, total int, p Pagination) *CustomerListResponse {
	items := make([]*CustomerResponse, 0, len(customers))
	for _, c := range customers {
		items = append(items, ToCustomerResponse(c))
	}

	return &CustomerListResponse{
		Items:      items,
		TotalCount: total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: calculateTotalPages(total, p.PageSize),
	}
}
