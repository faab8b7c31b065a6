package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/order"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/database"
)

// Erros específicos do repositório
var (
	ErrOrderNotFound         = errors.New("pedido não encontrado")
	ErrOrderDuplicateKey     = errors.New("pedido com mesmo número já existe")
	ErrOrderInvalidReference = errors.New("pedido referencia produto ou cliente inexistente")
)

const orderColumns = `id, order_number, date, channel, customer_id, customer_name, customer_phone,
	customer_address, subtotal, shipping_fee, service_fee, discount, grand_total, status, notes,
	created_at, updated_at`

// PostgresOrderRepository implementa order.Repository
type PostgresOrderRepository struct {
	db *database.PostgresDB
}

// NewPostgresOrderRepository cria uma nova instância do repositório
func NewPostgresOrderRepository(db *database.PostgresDB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var o order.Order
	var channel, status string
	err := row.Scan(&o.ID, &o.OrderNumber, &o.Date, &channel, &o.Customer.ID, &o.Customer.Name,
		&o.Customer.Phone, &o.Customer.Address, &o.Subtotal, &o.ShippingFee, &o.ServiceFee,
		&o.Discount, &o.GrandTotal, &status, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Channel = order.Channel(channel)
	o.Status = order.Status(status)
	o.Items = []order.Item{}
	return &o, nil
}

func insertOrderItems(ctx context.Context, q querier, o *order.Order) error {
	for i, it := range o.Items {
		_, err := q.Exec(ctx,
			`INSERT INTO order_items (order_id, position, product_id, product_name, qty, unit, price, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			o.ID, i, it.ProductID, it.ProductName, it.Qty, it.Unit, it.Price, it.Total)
		if err != nil {
			if isForeignKeyViolation(err) {
				return ErrOrderInvalidReference
			}
			return fmt.Errorf("erro ao inserir item do pedido: %w", err)
		}
	}
	return nil
}

// loadItems carrega as linhas dos pedidos informados, na ordem de inclusão
func loadItems(ctx context.Context, q querier, orders []*order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[string]*order.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := q.Query(ctx,
		`SELECT order_id, product_id, product_name, qty, unit, price, total
		FROM order_items WHERE order_id = ANY($1::uuid[]) ORDER BY order_id, position`, ids)
	if err != nil {
		return fmt.Errorf("erro ao buscar itens dos pedidos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var it order.Item
		if err := rows.Scan(&orderID, &it.ProductID, &it.ProductName, &it.Qty, &it.Unit, &it.Price, &it.Total); err != nil {
			return fmt.Errorf("erro ao ler item do pedido: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

// Create implementa order.Repository.Create
func (r *PostgresOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO orders (`+orderColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			o.ID, o.OrderNumber, o.Date, string(o.Channel), o.Customer.ID, o.Customer.Name,
			o.Customer.Phone, o.Customer.Address, o.Subtotal, o.ShippingFee, o.ServiceFee,
			o.Discount, o.GrandTotal, string(o.Status), o.Notes, o.CreatedAt, o.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrOrderDuplicateKey
			}
			if isForeignKeyViolation(err) {
				return ErrOrderInvalidReference
			}
			return fmt.Errorf("erro ao criar pedido: %w", err)
		}

		return insertOrderItems(ctx, tx, o)
	})
}

// FindByID implementa order.Repository.FindByID
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	pool := r.db.Pool()
	o, err := scanOrder(pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pedido: %w", err)
	}

	if err := loadItems(ctx, pool, []*order.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// filterClause monta o WHERE do filtro de pedidos
func filterClause(f order.Filter) (string, []any) {
	var conditions []string
	var args []any

	add := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.Channel != "" {
		add("channel = $%d", string(f.Channel))
	}
	if f.From != nil {
		add("date >= $%d", *f.From)
	}
	if f.To != nil {
		add("date < $%d", *f.To)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List implementa order.Repository.List
func (r *PostgresOrderRepository) List(ctx context.Context, f order.Filter) ([]*order.Order, error) {
	where, args := filterClause(f)
	limit, offset := limitOffset(f.Limit, f.Offset)
	args = append(args, limit, offset)

	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	return r.query(ctx, query, args...)
}

// Count implementa order.Repository.Count
func (r *PostgresOrderRepository) Count(ctx context.Context, f order.Filter) (int, error) {
	where, args := filterClause(f)

	var count int
	if err := r.db.Pool().QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar pedidos: %w", err)
	}
	return count, nil
}

// ListPaidBetween implementa order.Repository.ListPaidBetween
func (r *PostgresOrderRepository) ListPaidBetween(ctx context.Context, from, to time.Time) ([]*order.Order, error) {
	return r.query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = $1 AND date >= $2 AND date < $3 ORDER BY date, created_at`,
		string(order.StatusPaid), from, to)
}

// ListByStatusOn implementa order.Repository.ListByStatusOn
func (r *PostgresOrderRepository) ListByStatusOn(ctx context.Context, day time.Time, statuses []order.Status) ([]*order.Order, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}

	return r.query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = ANY($1) AND date >= $2 AND date < $3 ORDER BY date, created_at`,
		names, from, to)
}

// Update implementa order.Repository.Update (itens, totais e observações)
func (r *PostgresOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		current, err := lockOrder(ctx, tx, o.ID)
		if err != nil {
			return err
		}
		if current.IsTerminal() {
			return order.ErrOrderClosed
		}

		tag, err := tx.Exec(ctx,
			`UPDATE orders SET customer_id = $2, customer_name = $3, customer_phone = $4,
				customer_address = $5, subtotal = $6, shipping_fee = $7, service_fee = $8,
				discount = $9, grand_total = $10, notes = $11, updated_at = $12
			WHERE id = $1`,
			o.ID, o.Customer.ID, o.Customer.Name, o.Customer.Phone, o.Customer.Address,
			o.Subtotal, o.ShippingFee, o.ServiceFee, o.Discount, o.GrandTotal, o.Notes, o.UpdatedAt)
		if err != nil {
			return fmt.Errorf("erro ao atualizar pedido: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrOrderNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID); err != nil {
			return fmt.Errorf("erro ao remover itens do pedido: %w", err)
		}
		return insertOrderItems(ctx, tx, o)
	})
}

// UpdateStatus implementa order.Repository.UpdateStatus
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, from order.Status, entry *transaction.Transaction) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		// Outra requisição já mudou o status: a transição lida não vale mais
		current, err := lockOrder(ctx, tx, o.ID)
		if err != nil {
			return err
		}
		if current != from {
			return order.ErrInvalidTransition
		}

		tag, err := tx.Exec(ctx,
			`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
			o.ID, string(o.Status), o.UpdatedAt)
		if err != nil {
			return fmt.Errorf("erro ao atualizar status do pedido: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrOrderNotFound
		}

		if entry == nil {
			return nil
		}
		return insertTransaction(ctx, tx, entry)
	})
}

// lockOrder trava a linha do pedido até o fim da transação e devolve o
// status gravado
func lockOrder(ctx context.Context, tx pgx.Tx, id string) (order.Status, error) {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrOrderNotFound
		}
		return "", fmt.Errorf("erro ao travar pedido: %w", err)
	}
	return order.Status(status), nil
}

// Delete implementa order.Repository.Delete
func (r *PostgresOrderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao remover pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *PostgresOrderRepository) query(ctx context.Context, query string, args ...any) ([]*order.Order, error) {
	pool := r.db.Pool()
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos: %w", err)
	}

	orders := []*order.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("erro ao ler pedido: %w", err)
		}
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos: %w", err)
	}

	if err := loadItems(ctx, pool, orders); err != nil {
		return nil, err
	}
	return orders, nil
}
