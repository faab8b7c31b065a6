package customer

import "testing"

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer("  Bu Sri ", "0812 3456 7890", "Jl. Melati 5", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Bu Sri" || c.Phone != "+6281234567890" || !c.IsActive() {
		t.Fatalf("unexpected customer %+v", c)
	}

	if _, err := NewCustomer("", "", "", ""); err != ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := NewCustomer("Pak Budi", "123", "", ""); err != ErrInvalidPhone {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
}

func TestUpdateAndStatus(t *testing.T) {
	c, _ := NewCustomer("Bu Sri", "", "", "")

	if err := c.Update("Bu Sri Rahayu", "+62 812 3456 7890", "Jl. Mawar 1", "langganan"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Phone != "+6281234567890" || c.Address != "Jl. Mawar 1" {
		t.Fatalf("update not applied: %+v", c)
	}

	if err := c.Update("Bu Sri", "abc", "", ""); err != ErrInvalidPhone {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
	if c.Name != "Bu Sri Rahayu" {
		t.Fatalf("customer changed after rejected update: %+v", c)
	}

	c.Deactivate()
	if c.IsActive() {
		t.Fatal("expected inactive customer")
	}
	c.Activate()
	if !c.IsActive() {
		t.Fatal("expected active customer")
	}
}
