package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// RoundingStep é o degrau de arredondamento do preço de venda (em Rupiah).
// É política fixa, não configurável.
const RoundingStep = 500

var (
	ErrNegativeBaseCost  = errors.New("custo da matéria-prima não pode ser negativo")
	ErrInvalidShrinkage  = errors.New("percentual de perda deve estar entre 0 e 100")
	ErrNegativeComponent = errors.New("custo e quantidade do componente não podem ser negativos")
)

var (
	hundred      = decimal.NewFromInt(100)
	roundingStep = decimal.NewFromInt(RoundingStep)
)

// ComponentLine é uma referência a um componente de custo dentro de um cálculo.
// O custo é copiado da biblioteca no momento do cálculo.
type ComponentLine struct {
	ComponentID string          `json:"component_id"`
	Name        string          `json:"name"`
	Cost        decimal.Decimal `json:"cost"`
	Qty         decimal.Decimal `json:"qty"`
}

// Input contém os dados de entrada do cálculo de HPP
type Input struct {
	BaseMaterialCost decimal.Decimal `json:"base_material_cost"`
	ShrinkagePercent decimal.Decimal `json:"shrinkage_percent"`
	Components       []ComponentLine `json:"components"`
	MarginPercent    decimal.Decimal `json:"margin_percent"`
}

// Result expõe todos os valores intermediários do cálculo
type Result struct {
	ShrinkageCost       decimal.Decimal `json:"shrinkage_cost"`
	CostAfterShrinkage  decimal.Decimal `json:"cost_after_shrinkage"`
	ComponentsTotalCost decimal.Decimal `json:"components_total_cost"`
	TotalHPP            decimal.Decimal `json:"total_hpp"`
	Profit              decimal.Decimal `json:"profit"`
	SellingPrice        decimal.Decimal `json:"selling_price"`
	RoundedPrice        decimal.Decimal `json:"rounded_price"`
}

// Validate verifica os limites das entradas. Margem negativa é aceita.
func (in Input) Validate() error {
	if in.BaseMaterialCost.IsNegative() {
		return ErrNegativeBaseCost
	}
	if in.ShrinkagePercent.IsNegative() || in.ShrinkagePercent.GreaterThan(hundred) {
		return ErrInvalidShrinkage
	}
	for _, c := range in.Components {
		if c.Cost.IsNegative() || c.Qty.IsNegative() {
			return ErrNegativeComponent
		}
	}
	return nil
}

// Calculate monta o HPP e o preço de venda recomendado.
// A perda (shrinkage) soma custo: paga-se mais matéria-prima do que se aproveita.
func Calculate(in Input) Result {
	shrinkageCost := in.BaseMaterialCost.Mul(in.ShrinkagePercent).Div(hundred)
	costAfterShrinkage := in.BaseMaterialCost.Add(shrinkageCost)
	componentsTotal := ComponentsTotal(in.Components)
	totalHPP := costAfterShrinkage.Add(componentsTotal)
	profit := totalHPP.Mul(in.MarginPercent).Div(hundred)
	sellingPrice := totalHPP.Add(profit)

	return Result{
		ShrinkageCost:       shrinkageCost,
		CostAfterShrinkage:  costAfterShrinkage,
		ComponentsTotalCost: componentsTotal,
		TotalHPP:            totalHPP,
		Profit:              profit,
		SellingPrice:        sellingPrice,
		RoundedPrice:        RoundUp(sellingPrice),
	}
}

// ComponentsTotal soma custo * quantidade de cada componente
func ComponentsTotal(lines []ComponentLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Cost.Mul(l.Qty))
	}
	return total
}

// RoundUp arredonda para cima até o próximo múltiplo de RoundingStep.
// Preços negativos (margem abaixo de -100%) resultam em zero.
func RoundUp(price decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	return price.Div(roundingStep).Ceil().Mul(roundingStep)
}
