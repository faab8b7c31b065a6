package order

import (
	"context"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
)

// Repository define as operações de persistência para pedidos
type Repository interface {
	// Create persiste o pedido e suas linhas
	Create(ctx context.Context, o *Order) error

	// FindByID busca um pedido pelo ID
	FindByID(ctx context.Context, id string) (*Order, error)

	// List lista pedidos por data (mais recentes primeiro)
	List(ctx context.Context, f Filter) ([]*Order, error)

	// Count conta pedidos que satisfazem o filtro (sem paginação)
	Count(ctx context.Context, f Filter) (int, error)

	// ListPaidBetween retorna os pedidos PAID com data em [from, to)
	ListPaidBetween(ctx context.Context, from, to time.Time) ([]*Order, error)

	// ListByStatusOn retorna os pedidos do dia nos status informados
	ListByStatusOn(ctx context.Context, day time.Time, statuses []Status) ([]*Order, error)

	// Update grava itens, totais e observações. Pedido já finalizado no
	// banco retorna ErrOrderClosed.
	Update(ctx context.Context, o *Order) error

	// UpdateStatus grava o novo status e, quando entry não é nil, o
	// lançamento de receita na mesma transação de banco. Se o status gravado
	// não for mais from, retorna ErrInvalidTransition sem gravar nada.
	UpdateStatus(ctx context.Context, o *Order, from Status, entry *transaction.Transaction) error

	// Delete remove um pedido
	Delete(ctx context.Context, id string) error
}
