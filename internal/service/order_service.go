package service

import (
	"context"
	"strings"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/customer"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/order"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/product"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/cache"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/phone"
	"github.com/shopspring/decimal"
)

// OrderItemInput é uma linha informada pelo cliente ou operador
type OrderItemInput struct {
	ProductID   *string
	ProductName string
	Qty         decimal.Decimal
	Unit        string
	Price       *decimal.Decimal // ignorado em pedidos da loja
}

// OrderInput contém os dados de criação de um pedido
type OrderInput struct {
	Date            time.Time
	CustomerID      *string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Items           []OrderItemInput
	ShippingFee     decimal.Decimal
	ServiceFee      decimal.Decimal
	Discount        decimal.Decimal
	Notes           string
}

// OrderUpdateInput altera um pedido aberto. Campos nil ficam como estão.
type OrderUpdateInput struct {
	Items       []OrderItemInput
	ShippingFee *decimal.Decimal
	ServiceFee  *decimal.Decimal
	Discount    *decimal.Decimal
	Notes       *string
}

// OrderService gerencia pedidos manuais e da loja online
type OrderService struct {
	invalidator
	orders    order.Repository
	products  product.Repository
	customers customer.Repository
	now       func() time.Time
}

// NewOrderService cria o serviço
func NewOrderService(orders order.Repository, products product.Repository, customers customer.Repository, reports *cache.ReportCache, log logger.Logger) *OrderService {
	return &OrderService{
		invalidator: invalidator{reports: reports, log: orNop(log)},
		orders:      orders,
		products:    products,
		customers:   customers,
		now:         systemNow,
	}
}

// CreateManual registra um pedido lançado pelo operador. Preços informados
// prevalecem; sem preço, usa o preço vigente do produto.
func (s *OrderService) CreateManual(ctx context.Context, in OrderInput) (*order.Order, error) {
	items := make([]order.Item, 0, len(in.Items))
	for _, line := range in.Items {
		item, err := s.manualItem(ctx, line)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return s.create(ctx, order.ChannelManual, in, items, in.ShippingFee, in.ServiceFee, in.Discount)
}

// CreateStorefront registra um pedido da loja online. Preços vêm sempre do
// catálogo e apenas produtos ativos podem ser pedidos. Data, ongkir, taxa de
// serviço e desconto ficam com a loja: o pedido nasce com a hora do servidor
// e taxas zeradas, e o operador ajusta o ongkir ao confirmar. O vínculo com
// cliente cadastrado é feito só pelo telefone, nunca pelo ID enviado.
func (s *OrderService) CreateStorefront(ctx context.Context, in OrderInput) (*order.Order, error) {
	in.CustomerID = nil
	in.Date = s.now()

	items := make([]order.Item, 0, len(in.Items))
	for _, line := range in.Items {
		item, err := s.storefrontItem(ctx, line)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return s.create(ctx, order.ChannelStorefront, in, items, decimal.Zero, decimal.Zero, decimal.Zero)
}

func (s *OrderService) create(ctx context.Context, channel order.Channel, in OrderInput, items []order.Item, shipping, service, discount decimal.Decimal) (*order.Order, error) {
	snapshot, err := s.customerSnapshot(ctx, in)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(channel, in.Date, snapshot, items, shipping, service, discount, in.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	s.log.Info("pedido criado", "order_id", o.ID, "order_number", o.OrderNumber, "channel", string(channel))
	return o, nil
}

// customerSnapshot copia os dados do cliente cadastrado para o pedido.
// Sem ID, usa os dados digitados e tenta vincular pelo telefone.
func (s *OrderService) customerSnapshot(ctx context.Context, in OrderInput) (order.Customer, error) {
	if in.CustomerID != nil && *in.CustomerID != "" {
		c, err := s.customers.FindByID(ctx, *in.CustomerID)
		if err != nil {
			return order.Customer{}, err
		}
		snap := order.Customer{ID: &c.ID, Name: c.Name, Phone: c.Phone, Address: c.Address}
		if addr := strings.TrimSpace(in.CustomerAddress); addr != "" {
			snap.Address = addr
		}
		return snap, nil
	}

	normalized, err := phone.Normalize(in.CustomerPhone)
	if err != nil {
		return order.Customer{}, customer.ErrInvalidPhone
	}

	snap := order.Customer{
		Name:    in.CustomerName,
		Phone:   normalized,
		Address: strings.TrimSpace(in.CustomerAddress),
	}
	if normalized != "" {
		if c, err := s.customers.FindByPhone(ctx, normalized); err == nil {
			snap.ID = &c.ID
		}
	}
	return snap, nil
}

func (s *OrderService) manualItem(ctx context.Context, line OrderItemInput) (order.Item, error) {
	if line.ProductID == nil || *line.ProductID == "" {
		if line.Price == nil {
			return order.Item{}, ErrPriceRequired
		}
		return order.NewItem(nil, line.ProductName, line.Qty, line.Unit, *line.Price)
	}

	p, err := s.products.FindByID(ctx, *line.ProductID)
	if err != nil {
		return order.Item{}, err
	}

	name, unit := line.ProductName, line.Unit
	if strings.TrimSpace(name) == "" {
		name = p.Name
	}
	if strings.TrimSpace(unit) == "" {
		unit = p.Unit
	}
	price := catalogPrice(p, unit)
	if line.Price != nil {
		price = *line.Price
	}
	return order.NewItem(&p.ID, name, line.Qty, unit, price)
}

func (s *OrderService) storefrontItem(ctx context.Context, line OrderItemInput) (order.Item, error) {
	if line.ProductID == nil || *line.ProductID == "" {
		return order.Item{}, ErrProductRequired
	}

	p, err := s.products.FindByID(ctx, *line.ProductID)
	if err != nil {
		return order.Item{}, err
	}
	if !p.Active {
		return order.Item{}, ErrProductInactive
	}

	// Sem unidade, a loja vende na variante padrão do produto
	unit := strings.TrimSpace(line.Unit)
	if unit == "" {
		unit = p.Unit
		if v := p.DefaultVariant(); v != nil {
			unit = v.Unit
		}
	}
	return order.NewItem(&p.ID, p.Name, line.Qty, unit, catalogPrice(p, unit))
}

// catalogPrice usa o preço da variante com a unidade pedida, senão o preço
// efetivo do produto
func catalogPrice(p *product.Product, unit string) decimal.Decimal {
	for _, v := range p.Variants {
		if strings.EqualFold(v.Unit, unit) {
			return v.Price
		}
	}
	return p.EffectivePrice()
}

// Get busca um pedido
func (s *OrderService) Get(ctx context.Context, id string) (*order.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// List retorna a página de pedidos e o total sem paginação
func (s *OrderService) List(ctx context.Context, f order.Filter) ([]*order.Order, int, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, order.ErrInvalidStatus
	}

	orders, err := s.orders.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Update altera itens, taxas e observações de um pedido não finalizado
func (s *OrderService) Update(ctx context.Context, id string, in OrderUpdateInput) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status.IsTerminal() {
		return nil, order.ErrOrderClosed
	}

	if in.Items != nil {
		items := make([]order.Item, 0, len(in.Items))
		for _, line := range in.Items {
			var item order.Item
			if o.Channel == order.ChannelStorefront {
				item, err = s.storefrontItem(ctx, line)
			} else {
				item, err = s.manualItem(ctx, line)
			}
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if err := o.SetItems(items); err != nil {
			return nil, err
		}
	}

	if in.ShippingFee != nil || in.ServiceFee != nil || in.Discount != nil {
		ship, svc, disc := o.ShippingFee, o.ServiceFee, o.Discount
		if in.ShippingFee != nil {
			ship = *in.ShippingFee
		}
		if in.ServiceFee != nil {
			svc = *in.ServiceFee
		}
		if in.Discount != nil {
			disc = *in.Discount
		}
		if err := o.SetCharges(ship, svc, disc); err != nil {
			return nil, err
		}
	}

	if in.Notes != nil {
		o.Notes = strings.TrimSpace(*in.Notes)
		o.UpdatedAt = s.now()
	}

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateItem altera quantidade e preço de uma linha. Em pedidos da loja o
// preço continua o do catálogo gravado na linha.
func (s *OrderService) UpdateItem(ctx context.Context, id string, index int, qty decimal.Decimal, price *decimal.Decimal) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(o.Items) {
		return nil, order.ErrItemNotFound
	}

	newPrice := o.Items[index].Price
	if price != nil && o.Channel == order.ChannelManual {
		newPrice = *price
	}
	if err := o.UpdateItem(index, qty, newPrice); err != nil {
		return nil, err
	}

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus aplica a transição de status. Ao ser pago, o pedido gera o
// lançamento de receita na mesma transação de banco.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := o.Status
	if err := o.TransitionTo(status); err != nil {
		return nil, err
	}

	var entry *transaction.Transaction
	if o.IsPaid() {
		entry, err = o.SalesEntry(s.now())
		if err != nil {
			return nil, err
		}
	}

	if err := s.orders.UpdateStatus(ctx, o, from, entry); err != nil {
		return nil, err
	}

	if entry != nil {
		s.invalidateReports(ctx)
		s.touchCustomer(ctx, o)
	}

	s.log.Info("status do pedido alterado", "order_id", o.ID, "status", string(o.Status))
	return o, nil
}

// touchCustomer registra a última compra do cliente vinculado
func (s *OrderService) touchCustomer(ctx context.Context, o *order.Order) {
	if o.Customer.ID == nil {
		return
	}

	c, err := s.customers.FindByID(ctx, *o.Customer.ID)
	if err != nil {
		s.log.Warn("cliente do pedido não encontrado", "order_id", o.ID, "error", err)
		return
	}
	c.UpdateLastPurchase(s.now())
	if err := s.customers.Update(ctx, c); err != nil {
		s.log.Warn("erro ao registrar última compra", "customer_id", c.ID, "error", err)
	}
}

// Delete remove um pedido. Pedidos pagos já geraram receita e são mantidos.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if o.IsPaid() {
		return ErrPaidOrderDeletion
	}
	return s.orders.Delete(ctx, id)
}
