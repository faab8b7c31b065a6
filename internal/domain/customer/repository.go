package customer

import (
	"context"
)

// Repository define a interface para operações de repositório de clientes
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Customer) error

	// FindByID busca um cliente pelo ID
	FindByID(ctx context.Context, id string) (*Customer, error)

	// FindByPhone busca um cliente pelo telefone (E.164)
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	// List lista os clientes com paginação; name filtra por trecho do nome
	List(ctx context.Context, name string, limit, offset int) ([]*Customer, error)

	// Count conta os clientes que satisfazem o filtro de nome
	Count(ctx context.Context, name string) (int, error)

	// Update atualiza os dados de um cliente existente
	Update(ctx context.Context, c *Customer) error

	// UpdateStatus atualiza o status de um cliente
	UpdateStatus(ctx context.Context, id string, status Status) error

	// Delete remove um cliente
	Delete(ctx context.Context, id string) error
}
