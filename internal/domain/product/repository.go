package product

import (
	"context"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// Repository define as operações de persistência para produtos
type Repository interface {
	// Create persiste um novo produto
	Create(ctx context.Context, p *Product) error

	// FindByID busca um produto pelo ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// List retorna todos os produtos ordenados por nome
	List(ctx context.Context, activeOnly bool) ([]*Product, error)

	// Update atualiza um produto existente (não altera o estoque)
	Update(ctx context.Context, p *Product) error

	// Delete remove um produto
	Delete(ctx context.Context, id string) error

	// Restock soma qty ao estoque e, quando entry não é nil, grava o
	// lançamento na mesma transação de banco. Ou ambos persistem, ou nenhum.
	Restock(ctx context.Context, id string, qty decimal.Decimal, entry *transaction.Transaction) (*Product, error)
}
