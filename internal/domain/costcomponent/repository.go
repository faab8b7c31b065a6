package costcomponent

import (
	"context"
)

// Repository define as operações de persistência para componentes de custo
type Repository interface {
	// Create persiste um novo componente
	Create(ctx context.Context, c *CostComponent) error

	// Delete remove um componente. Cálculos que já copiaram o custo não são afetados.
	Delete(ctx context.Context, id string) error

	// List retorna todos os componentes na ordem de criação
	List(ctx context.Context) ([]*CostComponent, error)
}
