package customer

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/phone"
)

var (
	ErrEmptyName    = errors.New("nome não pode ser vazio")
	ErrInvalidPhone = errors.New("telefone inválido")
)

// Status representa o estado do cliente
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Customer representa um cliente da loja
type Customer struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"` // E.164
	Address        string     `json:"address"`
	Notes          string     `json:"notes"`
	Status         Status     `json:"status"`
	LastPurchaseAt *time.Time `json:"last_purchase_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewCustomer cria um novo cliente
func NewCustomer(name, phoneNumber, address, notes string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	normalized, err := phone.Normalize(phoneNumber)
	if err != nil {
		return nil, ErrInvalidPhone
	}

	now := time.Now()
	return &Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     normalized,
		Address:   strings.TrimSpace(address),
		Notes:     strings.TrimSpace(notes),
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsActive verifica se o cliente está ativo
func (c *Customer) IsActive() bool {
	return c.Status == StatusActive
}

// Activate ativa o cliente
func (c *Customer) Activate() {
	c.Status = StatusActive
	c.UpdatedAt = time.Now()
}

// Deactivate desativa o cliente
func (c *Customer) Deactivate() {
	c.Status = StatusInactive
	c.UpdatedAt = time.Now()
}

// Update atualiza os dados do cliente
func (c *Customer) Update(name, phoneNumber, address, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	normalized, err := phone.Normalize(phoneNumber)
	if err != nil {
		return ErrInvalidPhone
	}

	c.Name = name
	c.Phone = normalized
	c.Address = strings.TrimSpace(address)
	c.Notes = strings.TrimSpace(notes)
	c.UpdatedAt = time.Now()
	return nil
}

// UpdateLastPurchase atualiza a data da última compra
func (c *Customer) UpdateLastPurchase(at time.Time) {
	c.LastPurchaseAt = &at
	c.UpdatedAt = time.Now()
}
