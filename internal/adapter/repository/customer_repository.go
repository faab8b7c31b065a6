package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/customer"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/database"
)

// Erros específicos do repositório
var (
	ErrCustomerNotFound     = errors.New("cliente não encontrado")
	ErrCustomerDuplicateKey = errors.New("cliente com mesmo telefone já existe")
)

const customerColumns = `id, name, phone, address, notes, status, last_purchase_at, created_at, updated_at`

// CustomerRepository implementa a interface customer.Repository
type CustomerRepository struct {
	db *database.PostgresDB
}

// NewCustomerRepository cria uma nova instância de CustomerRepository
func NewCustomerRepository(db *database.PostgresDB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	var status string
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Notes, &status,
		&c.LastPurchaseAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Status = customer.Status(status)
	return &c, nil
}

// Create implementa customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.db.Pool().Exec(ctx,
		`INSERT INTO customers (`+customerColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Name, c.Phone, c.Address, c.Notes, string(c.Status),
		c.LastPurchaseAt, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCustomerDuplicateKey
		}
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}
	return nil
}

// FindByID implementa customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	return r.findOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// FindByPhone implementa customer.Repository.FindByPhone
func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	return r.findOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE phone = $1 AND phone <> ''`, phone)
}

func (r *CustomerRepository) findOne(ctx context.Context, query string, args ...any) (*customer.Customer, error) {
	c, err := scanCustomer(r.db.Pool().QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	return c, nil
}

// List implementa customer.Repository.List
func (r *CustomerRepository) List(ctx context.Context, name string, limit, offset int) ([]*customer.Customer, error) {
	lim, off := limitOffset(limit, offset)
	rows, err := r.db.Pool().Query(ctx,
		`SELECT `+customerColumns+` FROM customers
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2 OFFSET $3`,
		name, lim, off)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	customers := []*customer.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Count implementa customer.Repository.Count
func (r *CustomerRepository) Count(ctx context.Context, name string) (int, error) {
	var count int
	err := r.db.Pool().QueryRow(ctx,
		`SELECT COUNT(*) FROM customers WHERE $1 = '' OR name ILIKE '%' || $1 || '%'`, name).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar clientes: %w", err)
	}
	return count, nil
}

// Update implementa customer.Repository.Update
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	tag, err := r.db.Pool().Exec(ctx,
		`UPDATE customers SET name = $2, phone = $3, address = $4, notes = $5,
			status = $6, last_purchase_at = $7, updated_at = $8
		WHERE id = $1`,
		c.ID, c.Name, c.Phone, c.Address, c.Notes, string(c.Status), c.LastPurchaseAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCustomerDuplicateKey
		}
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// UpdateStatus implementa customer.Repository.UpdateStatus
func (r *CustomerRepository) UpdateStatus(ctx context.Context, id string, status customer.Status) error {
	tag, err := r.db.Pool().Exec(ctx,
		`UPDATE customers SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("erro ao atualizar status do cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// Delete implementa customer.Repository.Delete
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao remover cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
