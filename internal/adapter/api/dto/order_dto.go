package dto

import (
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/order"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/service"
	"github.com/shopspring/decimal"
)

// OrderItemRequest representa uma linha do pedido
type OrderItemRequest struct {
	ProductID   *string          `json:"product_id"`
	ProductName string           `json:"product_name"`
	Qty         decimal.Decimal  `json:"qty" binding:"decimal_gt0"`
	Unit        string           `json:"unit"`
	Price       *decimal.Decimal `json:"price" binding:"omitempty,decimal_gte0"`
}

// OrderRequest representa a criação de um pedido
type OrderRequest struct {
	Date            string             `json:"date"`
	CustomerID      *string            `json:"customer_id"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerAddress string             `json:"customer_address"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingFee     decimal.Decimal    `json:"shipping_fee" binding:"decimal_gte0"`
	ServiceFee      decimal.Decimal    `json:"service_fee" binding:"decimal_gte0"`
	Discount        decimal.Decimal    `json:"discount" binding:"decimal_gte0"`
	Notes           string             `json:"notes"`
}

// OrderUpdateRequest altera um pedido aberto; campos ausentes ficam como estão
type OrderUpdateRequest struct {
	Items       []OrderItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	ShippingFee *decimal.Decimal   `json:"shipping_fee" binding:"omitempty,decimal_gte0"`
	ServiceFee  *decimal.Decimal   `json:"service_fee" binding:"omitempty,decimal_gte0"`
	Discount    *decimal.Decimal   `json:"discount" binding:"omitempty,decimal_gte0"`
	Notes       *string            `json:"notes"`
}

// OrderItemUpdateRequest altera uma linha do pedido
type OrderItemUpdateRequest struct {
	Qty   decimal.Decimal  `json:"qty" binding:"decimal_gt0"`
	Price *decimal.Decimal `json:"price" binding:"omitempty,decimal_gte0"`
}

// OrderStatusRequest representa a mudança de status
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required,notblank"`
}

func toItemInputs(items []OrderItemRequest) []service.OrderItemInput {
	if items == nil {
		return nil
	}
	out := make([]service.OrderItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, service.OrderItemInput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Qty:         it.Qty,
			Unit:        it.Unit,
			Price:       it.Price,
		})
	}
	return out
}

// ToInput converte a requisição para a entrada do serviço
func (r OrderRequest) ToInput(loc *time.Location) (service.OrderInput, error) {
	date, err := ParseDate(r.Date, loc)
	if err != nil {
		return service.OrderInput{}, err
	}
	return service.OrderInput{
		Date:            date,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		Items:           toItemInputs(r.Items),
		ShippingFee:     r.ShippingFee,
		ServiceFee:      r.ServiceFee,
		Discount:        r.Discount,
		Notes:           r.Notes,
	}, nil
}

// ToInput converte a requisição de alteração
func (r OrderUpdateRequest) ToInput() service.OrderUpdateInput {
	return service.OrderUpdateInput{
		Items:       toItemInputs(r.Items),
		ShippingFee: r.ShippingFee,
		ServiceFee:  r.ServiceFee,
		Discount:    r.Discount,
		Notes:       r.Notes,
	}
}

// OrderResponse representa a resposta de pedido
type OrderResponse struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	Date            time.Time       `json:"date"`
	Channel         string          `json:"channel"`
	CustomerID      *string         `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	Items           []order.Item    `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingFee     decimal.Decimal `json:"shipping_fee"`
	ServiceFee      decimal.Decimal `json:"service_fee"`
	Discount        decimal.Decimal `json:"discount"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToOrderResponse converte o pedido para DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := o.Items
	if items == nil {
		items = []order.Item{}
	}
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Date:            o.Date,
		Channel:         string(o.Channel),
		CustomerID:      o.Customer.ID,
		CustomerName:    o.Customer.Name,
		CustomerPhone:   o.Customer.Phone,
		CustomerAddress: o.Customer.Address,
		Items:           items,
		Subtotal:        o.Subtotal,
		ShippingFee:     o.ShippingFee,
		ServiceFee:      o.ServiceFee,
		Discount:        o.Discount,
		GrandTotal:      o.GrandTotal,
		Status:          string(o.Status),
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToOrderListResponse converte a lista de pedidos
func ToOrderListResponse(items []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(items))
	for _, o := range items {
		out = append(out, ToOrderResponse(o))
	}
	return out
}
