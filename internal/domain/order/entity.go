package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCustomerName  = errors.New("nome do cliente não pode ser vazio")
	ErrNoItems            = errors.New("pedido deve ter ao menos um item")
	ErrEmptyProductName   = errors.New("nome do produto não pode ser vazio")
	ErrNonPositiveQty     = errors.New("quantidade deve ser maior que zero")
	ErrNegativePrice      = errors.New("preço não pode ser negativo")
	ErrNegativeAmount     = errors.New("taxas e desconto não podem ser negativos")
	ErrNegativeGrandTotal = errors.New("desconto maior que o total do pedido")
	ErrItemNotFound       = errors.New("item do pedido não encontrado")
	ErrInvalidChannel     = errors.New("canal de venda inválido")
	ErrOrderClosed        = errors.New("pedido finalizado não pode ser alterado")
)

// Channel identifica a origem do pedido
type Channel string

const (
	ChannelManual     Channel = "MANUAL"     // Pedido lançado pelo operador
	ChannelStorefront Channel = "STOREFRONT" // Pedido feito pela loja online
)

// Item é uma linha do pedido. Total é calculado na criação da linha.
type Item struct {
	ProductID   *string         `json:"product_id"`
	ProductName string          `json:"product_name"`
	Qty         decimal.Decimal `json:"qty"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// NewItem cria uma linha de pedido com total = qty * price
func NewItem(productID *string, productName string, qty decimal.Decimal, unit string, price decimal.Decimal) (Item, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return Item{}, ErrEmptyProductName
	}
	if !qty.IsPositive() {
		return Item{}, ErrNonPositiveQty
	}
	if price.IsNegative() {
		return Item{}, ErrNegativePrice
	}

	return Item{
		ProductID:   productID,
		ProductName: productName,
		Qty:         qty,
		Unit:        strings.TrimSpace(unit),
		Price:       price,
		Total:       qty.Mul(price),
	}, nil
}

// Customer agrupa os dados do cliente copiados para o pedido
type Customer struct {
	ID      *string `json:"customer_id"`
	Name    string  `json:"customer_name"`
	Phone   string  `json:"customer_phone"`
	Address string  `json:"customer_address"`
}

// Order representa um pedido
type Order struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	Date        time.Time       `json:"date"`
	Channel     Channel         `json:"channel"`
	Customer    Customer        `json:"customer"`
	Items       []Item          `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	ServiceFee  decimal.Decimal `json:"service_fee"`
	Discount    decimal.Decimal `json:"discount"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	Status      Status          `json:"status"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewOrder cria um pedido PENDING com totais calculados
func NewOrder(channel Channel, date time.Time, customer Customer, items []Item, shippingFee, serviceFee, discount decimal.Decimal, notes string) (*Order, error) {
	if channel != ChannelManual && channel != ChannelStorefront {
		return nil, ErrInvalidChannel
	}

	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return nil, ErrEmptyCustomerName
	}

	if len(items) == 0 {
		return nil, ErrNoItems
	}

	now := time.Now()
	if date.IsZero() {
		date = now
	}

	o := &Order{
		ID:          uuid.New().String(),
		OrderNumber: NewOrderNumber(date),
		Date:        date,
		Channel:     channel,
		Customer:    customer,
		Items:       items,
		ShippingFee: shippingFee,
		ServiceFee:  serviceFee,
		Discount:    discount,
		Status:      StatusPending,
		Notes:       strings.TrimSpace(notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := o.Recalculate(); err != nil {
		return nil, err
	}
	return o, nil
}

// NewOrderNumber gera um número legível, ex: "PSR-20261018-3F9A1C"
func NewOrderNumber(date time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("PSR-%s-%s", date.Format("20060102"), suffix)
}

// Subtotal soma os totais das linhas
func Subtotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total)
	}
	return total
}

// GrandTotal = subtotal + frete + taxa de serviço - desconto
func GrandTotal(subtotal, shippingFee, serviceFee, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shippingFee).Add(serviceFee).Sub(discount)
}

// Recalculate recalcula subtotal e total geral a partir das linhas
func (o *Order) Recalculate() error {
	if o.ShippingFee.IsNegative() || o.ServiceFee.IsNegative() || o.Discount.IsNegative() {
		return ErrNegativeAmount
	}

	subtotal := Subtotal(o.Items)
	grandTotal := GrandTotal(subtotal, o.ShippingFee, o.ServiceFee, o.Discount)
	if grandTotal.IsNegative() {
		return ErrNegativeGrandTotal
	}

	o.Subtotal = subtotal
	o.GrandTotal = grandTotal
	return nil
}

// SetItems substitui as linhas do pedido e recalcula os totais
func (o *Order) SetItems(items []Item) error {
	if o.Status.IsTerminal() {
		return ErrOrderClosed
	}
	if len(items) == 0 {
		return ErrNoItems
	}

	previous := o.Items
	o.Items = items
	if err := o.Recalculate(); err != nil {
		o.Items = previous
		return err
	}
	o.UpdatedAt = time.Now()
	return nil
}

// SetCharges altera frete, taxa de serviço e desconto
func (o *Order) SetCharges(shippingFee, serviceFee, discount decimal.Decimal) error {
	if o.Status.IsTerminal() {
		return ErrOrderClosed
	}

	ship, svc, disc := o.ShippingFee, o.ServiceFee, o.Discount
	o.ShippingFee, o.ServiceFee, o.Discount = shippingFee, serviceFee, discount
	if err := o.Recalculate(); err != nil {
		o.ShippingFee, o.ServiceFee, o.Discount = ship, svc, disc
		return err
	}
	o.UpdatedAt = time.Now()
	return nil
}

// UpdateItem altera quantidade e preço de uma linha e recalcula os totais
func (o *Order) UpdateItem(index int, qty, price decimal.Decimal) error {
	if o.Status.IsTerminal() {
		return ErrOrderClosed
	}
	if index < 0 || index >= len(o.Items) {
		return ErrItemNotFound
	}

	it := o.Items[index]
	updated, err := NewItem(it.ProductID, it.ProductName, qty, it.Unit, price)
	if err != nil {
		return err
	}

	previous := o.Items[index]
	o.Items[index] = updated
	if err := o.Recalculate(); err != nil {
		o.Items[index] = previous
		return err
	}
	o.UpdatedAt = time.Now()
	return nil
}

// IsPaid indica se o pedido entra na receita do relatório
func (o *Order) IsPaid() bool {
	return o.Status == StatusPaid
}

// Filter contém os critérios de listagem de pedidos
type Filter struct {
	Status  Status
	Channel Channel
	From    *time.Time
	To      *time.Time // exclusivo
	Limit   int
	Offset  int
}
