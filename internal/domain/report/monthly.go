package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/order"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/product"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// TopProductsLimit é o tamanho do ranking de produtos
const TopProductsLimit = 5

var (
	ErrInvalidMonth = errors.New("mês deve estar entre 1 e 12")
	ErrInvalidYear  = errors.New("ano inválido")
)

var hundred = decimal.NewFromInt(100)

// ProductSales é a venda agregada de um produto no período
type ProductSales struct {
	Name  string          `json:"name"`
	Qty   decimal.Decimal `json:"qty"`
	Total decimal.Decimal `json:"total"`
}

// CategoryTotal é o total de despesas de uma categoria
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	IsCOGS   bool            `json:"is_cogs"`
}

// Monthly é o relatório financeiro de um mês
type Monthly struct {
	Month             int             `json:"month"`
	Year              int             `json:"year"`
	Revenue           decimal.Decimal `json:"revenue"`
	COGS              decimal.Decimal `json:"cogs"`
	OperatingExpenses decimal.Decimal `json:"opex"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	GrossMargin       decimal.Decimal `json:"gross_margin"` // percentual
	NetMargin         decimal.Decimal `json:"net_margin"`   // percentual
	Capital           decimal.Decimal `json:"capital"`
	PaidOrders        int             `json:"paid_orders"`
	AvgOrderValue     decimal.Decimal `json:"avg_order_value"`
	TopProducts       []ProductSales  `json:"top_products"`
	ExpenseCategories []CategoryTotal `json:"expense_categories"`
	InventoryValue    decimal.Decimal `json:"inventory_value"` // posição atual, não do período
	GeneratedAt       time.Time       `json:"generated_at"`
}

// Input reúne os dados brutos do relatório
type Input struct {
	Month        int
	Year         int
	Location     *time.Location // nil = time.Local
	Transactions []*transaction.Transaction
	Orders       []*order.Order
	Products     []*product.Product // catálogo atual
}

// Period retorna o intervalo [from, to) do mês
func Period(month, year int, loc *time.Location) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	if year < 1900 || year > 9999 {
		return time.Time{}, time.Time{}, ErrInvalidYear
	}
	if loc == nil {
		loc = time.Local
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0), nil
}

// BuildMonthly agrega lançamentos e pedidos pagos do mês. Dados fora do
// período são ignorados, exceto o catálogo usado no valor de estoque.
func BuildMonthly(in Input) (*Monthly, error) {
	from, to, err := Period(in.Month, in.Year, in.Location)
	if err != nil {
		return nil, err
	}

	r := &Monthly{
		Month:             in.Month,
		Year:              in.Year,
		Revenue:           decimal.Zero,
		COGS:              decimal.Zero,
		OperatingExpenses: decimal.Zero,
		Capital:           decimal.Zero,
		TopProducts:       []ProductSales{},
		ExpenseCategories: []CategoryTotal{},
		GeneratedAt:       time.Now(),
	}

	categoryIndex := make(map[string]int)
	for _, t := range in.Transactions {
		if !inPeriod(t.Date, from, to) {
			continue
		}

		switch t.Type {
		case transaction.TypeIncome:
			r.Revenue = r.Revenue.Add(t.Amount)
		case transaction.TypeCapital:
			r.Capital = r.Capital.Add(t.Amount)
		case transaction.TypeExpense:
			if t.IsCostOfGoods() {
				r.COGS = r.COGS.Add(t.Amount)
			} else {
				r.OperatingExpenses = r.OperatingExpenses.Add(t.Amount)
			}

			if i, ok := categoryIndex[t.Category]; ok {
				r.ExpenseCategories[i].Amount = r.ExpenseCategories[i].Amount.Add(t.Amount)
			} else {
				categoryIndex[t.Category] = len(r.ExpenseCategories)
				r.ExpenseCategories = append(r.ExpenseCategories, CategoryTotal{
					Category: t.Category,
					Amount:   t.Amount,
					IsCOGS:   t.IsCostOfGoods(),
				})
			}
		}
	}

	r.GrossProfit = r.Revenue.Sub(r.COGS)
	r.NetProfit = r.GrossProfit.Sub(r.OperatingExpenses)
	r.GrossMargin = percentOf(r.GrossProfit, r.Revenue)
	r.NetMargin = percentOf(r.NetProfit, r.Revenue)

	var paid []*order.Order
	for _, o := range in.Orders {
		if o.IsPaid() && inPeriod(o.Date, from, to) {
			paid = append(paid, o)
		}
	}
	r.PaidOrders = len(paid)
	r.AvgOrderValue = decimal.Zero
	if r.PaidOrders > 0 {
		r.AvgOrderValue = r.Revenue.Div(decimal.NewFromInt(int64(r.PaidOrders))).Round(2)
	}
	r.TopProducts = TopProducts(paid, TopProductsLimit)

	r.InventoryValue = InventoryValue(in.Products)
	return r, nil
}

// TopProducts soma qty e total por nome de produto e ordena por total.
// Empates mantêm a ordem da primeira ocorrência.
func TopProducts(orders []*order.Order, limit int) []ProductSales {
	index := make(map[string]int)
	sales := []ProductSales{}

	for _, o := range orders {
		for _, it := range o.Items {
			if i, ok := index[it.ProductName]; ok {
				sales[i].Qty = sales[i].Qty.Add(it.Qty)
				sales[i].Total = sales[i].Total.Add(it.Total)
				continue
			}
			index[it.ProductName] = len(sales)
			sales = append(sales, ProductSales{Name: it.ProductName, Qty: it.Qty, Total: it.Total})
		}
	}

	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].Total.GreaterThan(sales[j].Total)
	})

	if limit > 0 && len(sales) > limit {
		sales = sales[:limit]
	}
	return sales
}

// InventoryValue soma estoque * HPP do catálogo
func InventoryValue(products []*product.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.InventoryValue())
	}
	return total
}

// percentOf retorna part/whole*100 com duas casas, ou zero quando whole é zero
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

func inPeriod(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

// MonthName devolve o nome do mês em indonésio, usado em títulos e planilhas
func MonthName(month int) string {
	names := []string{"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember"}
	if month < 1 || month > 12 {
		return ""
	}
	return names[month-1]
}

// Title monta o título padrão, ex: "Laporan Keuangan Maret 2026"
func (r *Monthly) Title() string {
	return fmt.Sprintf("Laporan Keuangan %s %d", MonthName(r.Month), r.Year)
}
