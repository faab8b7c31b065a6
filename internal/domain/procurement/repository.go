package procurement

import (
	"context"
)

// Repository define as operações de persistência para sessões de compras
type Repository interface {
	// Create persiste a sessão com seus itens
	Create(ctx context.Context, s *Session) error

	// FindByID busca uma sessão com itens e despesas
	FindByID(ctx context.Context, id string) (*Session, error)

	// List lista sessões (mais recentes primeiro)
	List(ctx context.Context, limit, offset int) ([]*Session, error)

	// Update grava status, itens e despesas da sessão
	Update(ctx context.Context, s *Session) error

	// Complete grava a sessão concluída, as entradas de estoque e os
	// lançamentos em uma única transação de banco
	Complete(ctx context.Context, s *Session, c *Completion) error
}
