package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/product"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/database"
	"github.com/shopspring/decimal"
)

// Erros específicos do repositório
var (
	ErrProductNotFound     = errors.New("produto não encontrado")
	ErrProductDuplicateKey = errors.New("produto com mesmo ID já existe")
	ErrProductInUse        = errors.New("produto referenciado por outros registros")
)

const productColumns = `id, name, unit, category, price, cost_price, stock, promo_price, variants, active, created_at, updated_at`

// PostgresProductRepository implementa product.Repository
type PostgresProductRepository struct {
	db *database.PostgresDB
}

// NewPostgresProductRepository cria uma nova instância do repositório
func NewPostgresProductRepository(db *database.PostgresDB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	var promo decimal.NullDecimal
	var variantsJSON []byte

	err := row.Scan(&p.ID, &p.Name, &p.Unit, &p.Category, &p.Price, &p.CostPrice, &p.Stock,
		&promo, &variantsJSON, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if promo.Valid {
		p.PromoPrice = &promo.Decimal
	}

	p.Variants = []product.Variant{}
	if len(variantsJSON) > 0 {
		if err := json.Unmarshal(variantsJSON, &p.Variants); err != nil {
			return nil, fmt.Errorf("erro ao converter variantes: %w", err)
		}
	}
	return &p, nil
}

func marshalVariants(variants []product.Variant) ([]byte, error) {
	if variants == nil {
		variants = []product.Variant{}
	}
	b, err := json.Marshal(variants)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter variantes para JSON: %w", err)
	}
	return b, nil
}

// Create implementa product.Repository.Create
func (r *PostgresProductRepository) Create(ctx context.Context, p *product.Product) error {
	variants, err := marshalVariants(p.Variants)
	if err != nil {
		return err
	}

	_, err = r.db.Pool().Exec(ctx,
		`INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.Name, p.Unit, p.Category, p.Price, p.CostPrice, p.Stock,
		p.PromoPrice, variants, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrProductDuplicateKey
		}
		return fmt.Errorf("erro ao criar produto: %w", err)
	}
	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *PostgresProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	p, err := scanProduct(r.db.Pool().QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}
	return p, nil
}

// List implementa product.Repository.List
func (r *PostgresProductRepository) List(ctx context.Context, activeOnly bool) ([]*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if activeOnly {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	products := []*product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update implementa product.Repository.Update. O estoque só muda via Restock.
func (r *PostgresProductRepository) Update(ctx context.Context, p *product.Product) error {
	variants, err := marshalVariants(p.Variants)
	if err != nil {
		return err
	}

	tag, err := r.db.Pool().Exec(ctx,
		`UPDATE products SET name = $2, unit = $3, category = $4, price = $5, cost_price = $6,
			promo_price = $7, variants = $8, active = $9, updated_at = $10
		WHERE id = $1`,
		p.ID, p.Name, p.Unit, p.Category, p.Price, p.CostPrice,
		p.PromoPrice, variants, p.Active, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete implementa product.Repository.Delete
func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrProductInUse
		}
		return fmt.Errorf("erro ao remover produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Restock implementa product.Repository.Restock
func (r *PostgresProductRepository) Restock(ctx context.Context, id string, qty decimal.Decimal, entry *transaction.Transaction) (*product.Product, error) {
	var updated *product.Product

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		p, err := addStock(ctx, tx, id, qty)
		if err != nil {
			return err
		}

		if entry != nil {
			if err := insertTransaction(ctx, tx, entry); err != nil {
				return err
			}
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// addStock incrementa o estoque de forma atômica no banco
func addStock(ctx context.Context, q querier, id string, qty decimal.Decimal) (*product.Product, error) {
	p, err := scanProduct(q.QueryRow(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+productColumns,
		id, qty))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("erro ao atualizar estoque: %w", err)
	}
	return p, nil
}
