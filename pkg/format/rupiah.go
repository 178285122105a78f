package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Rupiah formats an amount in the smallest currency unit as "Rp 15.000".
func Rupiah(amount int64) string {
	return RupiahDecimal(decimal.NewFromInt(amount))
}

func RupiahDecimal(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	str := amount.StringFixed(0)

	n := len(str)
	if n <= 3 {
		return sign + "Rp " + str
	}
	var b strings.Builder
	for i, char := range str {
		b.WriteRune(char)
		if (n-1-i)%3 == 0 && i != n-1 {
			b.WriteRune('.')
		}
	}
	return sign + "Rp " + b.String()
}
