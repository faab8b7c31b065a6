package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/database"
)

// Erros específicos do repositório
var (
	ErrTransactionNotFound     = errors.New("lançamento não encontrado")
	ErrTransactionDuplicateKey = errors.New("lançamento com mesmo ID já existe")
)

const transactionColumns = `id, date, type, amount, category, description, reference, created_at`

// PostgresTransactionRepository implementa transaction.Repository
type PostgresTransactionRepository struct {
	db *database.PostgresDB
}

// NewPostgresTransactionRepository cria uma nova instância do repositório
func NewPostgresTransactionRepository(db *database.PostgresDB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

// insertTransaction grava um lançamento; usado também dentro de transações
// de outros repositórios (reposição, conclusão de compras, pedido pago)
func insertTransaction(ctx context.Context, q querier, t *transaction.Transaction) error {
	_, err := q.Exec(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.Date, string(t.Type), t.Amount, t.Category, t.Description, t.Reference, t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrTransactionDuplicateKey
		}
		return fmt.Errorf("erro ao inserir lançamento: %w", err)
	}
	return nil
}

func scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var txType string
	if err := row.Scan(&t.ID, &t.Date, &txType, &t.Amount, &t.Category, &t.Description, &t.Reference, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Type = transaction.Type(txType)
	return &t, nil
}

// Create implementa transaction.Repository.Create
func (r *PostgresTransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	return insertTransaction(ctx, r.db.Pool(), t)
}

// FindByID implementa transaction.Repository.FindByID
func (r *PostgresTransactionRepository) FindByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	t, err := scanTransaction(r.db.Pool().QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("erro ao buscar lançamento: %w", err)
	}
	return t, nil
}

// List implementa transaction.Repository.List
func (r *PostgresTransactionRepository) List(ctx context.Context, f transaction.Filter) ([]*transaction.Transaction, error) {
	var conditions []string
	var args []any

	add := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if f.Type != "" {
		add("type = $%d", string(f.Type))
	}
	if f.Category != "" {
		add("category ILIKE '%%' || $%d || '%%'", f.Category)
	}
	if f.From != nil {
		add("date >= $%d", *f.From)
	}
	if f.To != nil {
		add("date < $%d", *f.To)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}

	limit, offset := limitOffset(f.Limit, f.Offset)
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	return r.query(ctx, query, args...)
}

// ListBetween implementa transaction.Repository.ListBetween
func (r *PostgresTransactionRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*transaction.Transaction, error) {
	return r.query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE date >= $1 AND date < $2 ORDER BY date, created_at`,
		from, to)
}

// Delete implementa transaction.Repository.Delete
func (r *PostgresTransactionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao remover lançamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *PostgresTransactionRepository) query(ctx context.Context, query string, args ...any) ([]*transaction.Transaction, error) {
	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar lançamentos: %w", err)
	}
	defer rows.Close()

	list := []*transaction.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler lançamento: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
