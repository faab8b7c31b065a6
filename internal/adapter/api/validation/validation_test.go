package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type sample struct {
	Name     string           `validate:"notblank"`
	Qty      decimal.Decimal  `validate:"decimal_gt0"`
	Cost     decimal.Decimal  `validate:"decimal_gte0"`
	Optional *decimal.Decimal `validate:"omitempty,decimal_gte0"`
}

func TestRules(t *testing.T) {
	v := validator.New()
	if err := Register(v); err != nil {
		t.Fatalf("register: %v", err)
	}

	neg := decimal.NewFromInt(-1)
	zero := decimal.Zero

	tests := []struct {
		name   string
		in     sample
		failed map[string]string
	}{
		{
			name: "válido",
			in:   sample{Name: "Bawang", Qty: decimal.RequireFromString("0.5"), Cost: zero, Optional: &zero},
		},
		{
			name:   "nome em branco",
			in:     sample{Name: "   ", Qty: decimal.NewFromInt(1)},
			failed: map[string]string{"Name": "notblank"},
		},
		{
			name:   "quantidade zero e custo negativo",
			in:     sample{Name: "Bawang", Qty: zero, Cost: neg},
			failed: map[string]string{"Qty": "decimal_gt0", "Cost": "decimal_gte0"},
		},
		{
			name:   "opcional negativo",
			in:     sample{Name: "Bawang", Qty: decimal.NewFromInt(1), Optional: &neg},
			failed: map[string]string{"Optional": "decimal_gte0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if len(tt.failed) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			got := ProcessValidationErrors(err)
			if len(got) != len(tt.failed) {
				t.Fatalf("expected %v, got %v", tt.failed, got)
			}
			for field, tag := range tt.failed {
				if got[field] != tag {
					t.Fatalf("expected %s to fail %s, got %v", field, tag, got)
				}
			}
		})
	}
}
