package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/costcomponent"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/database"
)

// Erros específicos do repositório
var (
	ErrCostComponentNotFound     = errors.New("componente de custo não encontrado")
	ErrCostComponentDuplicateKey = errors.New("componente de custo com mesmo ID já existe")
)

// PostgresCostComponentRepository implementa costcomponent.Repository
type PostgresCostComponentRepository struct {
	db *database.PostgresDB
}

// NewPostgresCostComponentRepository cria uma nova instância do repositório
func NewPostgresCostComponentRepository(db *database.PostgresDB) *PostgresCostComponentRepository {
	return &PostgresCostComponentRepository{db: db}
}

// Create implementa costcomponent.Repository.Create
func (r *PostgresCostComponentRepository) Create(ctx context.Context, c *costcomponent.CostComponent) error {
	_, err := r.db.Pool().Exec(ctx,
		`INSERT INTO cost_components (id, name, cost, unit, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Cost, c.Unit, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCostComponentDuplicateKey
		}
		return fmt.Errorf("erro ao criar componente de custo: %w", err)
	}
	return nil
}

// Delete implementa costcomponent.Repository.Delete
func (r *PostgresCostComponentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM cost_components WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao remover componente de custo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCostComponentNotFound
	}
	return nil
}

// List implementa costcomponent.Repository.List (ordem de criação)
func (r *PostgresCostComponentRepository) List(ctx context.Context) ([]*costcomponent.CostComponent, error) {
	rows, err := r.db.Pool().Query(ctx,
		`SELECT id, name, cost, unit, created_at FROM cost_components ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar componentes de custo: %w", err)
	}
	defer rows.Close()

	components := []*costcomponent.CostComponent{}
	for rows.Next() {
		var c costcomponent.CostComponent
		if err := rows.Scan(&c.ID, &c.Name, &c.Cost, &c.Unit, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler componente de custo: %w", err)
		}
		components = append(components, &c)
	}
	return components, rows.Err()
}
