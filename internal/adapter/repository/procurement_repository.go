package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/procurement"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/database"
	"github.com/shopspring/decimal"
)

// Erros específicos do repositório
var (
	ErrProcurementNotFound     = errors.New("sessão de compras não encontrada")
	ErrProcurementDuplicateKey = errors.New("sessão de compras com mesmo ID já existe")
)

// PostgresProcurementRepository implementa procurement.Repository
type PostgresProcurementRepository struct {
	db *database.PostgresDB
}

// NewPostgresProcurementRepository cria uma nova instância do repositório
func NewPostgresProcurementRepository(db *database.PostgresDB) *PostgresProcurementRepository {
	return &PostgresProcurementRepository{db: db}
}

const sessionColumns = `id, date, status, notes, created_at, updated_at, completed_at`

func scanSession(row pgx.Row) (*procurement.Session, error) {
	var s procurement.Session
	var status string
	if err := row.Scan(&s.ID, &s.Date, &status, &s.Notes, &s.CreatedAt, &s.UpdatedAt, &s.CompletedAt); err != nil {
		return nil, err
	}
	s.Status = procurement.Status(status)
	s.Items = []procurement.Item{}
	s.Expenses = []procurement.Expense{}
	return &s, nil
}

// writeLines regrava itens e despesas da sessão
func writeLines(ctx context.Context, q querier, s *procurement.Session) error {
	if _, err := q.Exec(ctx, `DELETE FROM procurement_items WHERE session_id = $1`, s.ID); err != nil {
		return fmt.Errorf("erro ao remover itens da sessão: %w", err)
	}
	if _, err := q.Exec(ctx, `DELETE FROM procurement_expenses WHERE session_id = $1`, s.ID); err != nil {
		return fmt.Errorf("erro ao remover despesas da sessão: %w", err)
	}

	for i, it := range s.Items {
		_, err := q.Exec(ctx,
			`INSERT INTO procurement_items (id, session_id, position, product_id, product_name, unit, total_qty, cost_price, purchased)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, s.ID, i, it.ProductID, it.ProductName, it.Unit, it.TotalQty, it.CostPrice, it.Purchased)
		if err != nil {
			if isForeignKeyViolation(err) {
				return ErrProductNotFound
			}
			return fmt.Errorf("erro ao inserir item da sessão: %w", err)
		}
	}

	for i, e := range s.Expenses {
		_, err := q.Exec(ctx,
			`INSERT INTO procurement_expenses (id, session_id, position, name, amount) VALUES ($1, $2, $3, $4, $5)`,
			e.ID, s.ID, i, e.Name, e.Amount)
		if err != nil {
			return fmt.Errorf("erro ao inserir despesa da sessão: %w", err)
		}
	}
	return nil
}

// lockSession trava a linha da sessão até o fim da transação e devolve o
// status gravado
func lockSession(ctx context.Context, tx pgx.Tx, id string) (procurement.Status, error) {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM procurement_sessions WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrProcurementNotFound
		}
		return "", fmt.Errorf("erro ao travar sessão de compras: %w", err)
	}
	return procurement.Status(status), nil
}

func updateSessionRow(ctx context.Context, q querier, s *procurement.Session) error {
	tag, err := q.Exec(ctx,
		`UPDATE procurement_sessions SET status = $2, notes = $3, updated_at = $4, completed_at = $5 WHERE id = $1`,
		s.ID, string(s.Status), s.Notes, s.UpdatedAt, s.CompletedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar sessão de compras: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProcurementNotFound
	}
	return nil
}

// Create implementa procurement.Repository.Create
func (r *PostgresProcurementRepository) Create(ctx context.Context, s *procurement.Session) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO procurement_sessions (`+sessionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.ID, s.Date, string(s.Status), s.Notes, s.CreatedAt, s.UpdatedAt, s.CompletedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrProcurementDuplicateKey
			}
			return fmt.Errorf("erro ao criar sessão de compras: %w", err)
		}
		return writeLines(ctx, tx, s)
	})
}

// FindByID implementa procurement.Repository.FindByID
func (r *PostgresProcurementRepository) FindByID(ctx context.Context, id string) (*procurement.Session, error) {
	pool := r.db.Pool()
	s, err := scanSession(pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM procurement_sessions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProcurementNotFound
		}
		return nil, fmt.Errorf("erro ao buscar sessão de compras: %w", err)
	}

	rows, err := pool.Query(ctx,
		`SELECT id, product_id, product_name, unit, total_qty, cost_price, purchased
		FROM procurement_items WHERE session_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens da sessão: %w", err)
	}
	for rows.Next() {
		var it procurement.Item
		var cost decimal.NullDecimal
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.Unit, &it.TotalQty, &cost, &it.Purchased); err != nil {
			rows.Close()
			return nil, fmt.Errorf("erro ao ler item da sessão: %w", err)
		}
		if cost.Valid {
			it.CostPrice = &cost.Decimal
		}
		s.Items = append(s.Items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler itens da sessão: %w", err)
	}

	rows, err = pool.Query(ctx,
		`SELECT id, name, amount FROM procurement_expenses WHERE session_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar despesas da sessão: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e procurement.Expense
		if err := rows.Scan(&e.ID, &e.Name, &e.Amount); err != nil {
			return nil, fmt.Errorf("erro ao ler despesa da sessão: %w", err)
		}
		s.Expenses = append(s.Expenses, e)
	}
	return s, rows.Err()
}

// List implementa procurement.Repository.List. Itens e despesas não são carregados.
func (r *PostgresProcurementRepository) List(ctx context.Context, limit, offset int) ([]*procurement.Session, error) {
	lim, off := limitOffset(limit, offset)
	rows, err := r.db.Pool().Query(ctx,
		`SELECT `+sessionColumns+` FROM procurement_sessions ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`,
		lim, off)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar sessões de compras: %w", err)
	}
	defer rows.Close()

	sessions := []*procurement.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler sessão de compras: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Update implementa procurement.Repository.Update
func (r *PostgresProcurementRepository) Update(ctx context.Context, s *procurement.Session) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		current, err := lockSession(ctx, tx, s.ID)
		if err != nil {
			return err
		}
		if current == procurement.StatusCompleted {
			return procurement.ErrSessionCompleted
		}
		// Cópia carregada antes do Start não pode voltar a sessão para OPEN
		if current == procurement.StatusInProgress && s.Status == procurement.StatusOpen {
			return procurement.ErrInvalidTransition
		}

		if err := updateSessionRow(ctx, tx, s); err != nil {
			return err
		}
		return writeLines(ctx, tx, s)
	})
}

// Complete implementa procurement.Repository.Complete
func (r *PostgresProcurementRepository) Complete(ctx context.Context, s *procurement.Session, c *procurement.Completion) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		// Trava a linha para impedir duas conclusões simultâneas
		current, err := lockSession(ctx, tx, s.ID)
		if err != nil {
			return err
		}
		if current == procurement.StatusCompleted {
			return procurement.ErrSessionCompleted
		}

		if err := updateSessionRow(ctx, tx, s); err != nil {
			return err
		}
		if err := writeLines(ctx, tx, s); err != nil {
			return err
		}

		for _, m := range c.StockMovements {
			if _, err := addStock(ctx, tx, m.ProductID, m.Qty); err != nil {
				return err
			}
		}

		for _, entry := range c.Transactions {
			if err := insertTransaction(ctx, tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
}
