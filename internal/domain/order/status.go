package order

import (
	"errors"
	"time"
)

var (
	ErrInvalidStatus     = errors.New("status de pedido inválido")
	ErrInvalidTransition = errors.New("transição de status não permitida")
)

// Status representa o estado do pedido
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
	StatusConfirmed Status = "CONFIRMED"
	StatusPreparing Status = "PREPARING"
	StatusShipping  Status = "SHIPPING"
	StatusDelivered Status = "DELIVERED"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusPaid, StatusCancelled, StatusConfirmed},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusShipping, StatusCancelled},
	StatusShipping:  {StatusDelivered, StatusCancelled},
}

// storefrontOnly são estados exclusivos do fluxo da loja online
var storefrontOnly = map[Status]bool{
	StatusConfirmed: true,
	StatusPreparing: true,
	StatusShipping:  true,
	StatusDelivered: true,
}

// Valid verifica se o status é conhecido
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled, StatusConfirmed,
		StatusPreparing, StatusShipping, StatusDelivered:
		return true
	}
	return false
}

// IsTerminal indica estados sem saída
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled || s == StatusDelivered
}

// CanTransition verifica se um pedido do canal pode ir de from para to
func CanTransition(channel Channel, from, to Status) bool {
	if channel == ChannelManual && storefrontOnly[to] {
		return false
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo muda o status respeitando a máquina de estados
func (o *Order) TransitionTo(to Status) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	if !CanTransition(o.Channel, o.Status, to) {
		return ErrInvalidTransition
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	return nil
}
