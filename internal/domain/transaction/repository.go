package transaction

import (
	"context"
	"time"
)

// Repository define as operações de persistência para lançamentos
type Repository interface {
	// Create persiste um novo lançamento
	Create(ctx context.Context, t *Transaction) error

	// FindByID busca um lançamento pelo ID
	FindByID(ctx context.Context, id string) (*Transaction, error)

	// List lista lançamentos ordenados por data (mais recentes primeiro)
	List(ctx context.Context, f Filter) ([]*Transaction, error)

	// ListBetween retorna os lançamentos com data em [from, to)
	ListBetween(ctx context.Context, from, to time.Time) ([]*Transaction, error)

	// Delete remove um lançamento
	Delete(ctx context.Context, id string) error
}
