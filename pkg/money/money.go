package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah formata um valor no padrão indonésio sem casas decimais, ex: "Rp 15.000"
func FormatRupiah(v decimal.Decimal) string {
	rounded := v.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "Rp " + group(rounded.String())
}

// FormatQuantity formata uma quantidade usando vírgula decimal, ex: "2,5"
func FormatQuantity(v decimal.Decimal) string {
	return strings.Replace(v.String(), ".", ",", 1)
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
