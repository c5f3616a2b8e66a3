// Package format renders monetary amounts for display.
package format

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a currency code is blank or unknown.
const DefaultCurrency = money.USD

// Money renders amount with no decimals, e.g. "$1,235".
func Money(amount decimal.Decimal, currency string) string {
	return render(amount, currency, 0)
}

// MoneyDecimal renders amount with two decimals, e.g. "$1,234.56".
func MoneyDecimal(amount decimal.Decimal, currency string) string {
	return render(amount, currency, 2)
}

// Percent renders a percentage with one decimal, e.g. "66.7%".
func Percent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}

func render(amount decimal.Decimal, currency string, fraction int) string {
	cur := lookup(currency)
	f := money.NewFormatter(fraction, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)

	minor := amount.Shift(int32(fraction)).Round(0)
	if minor.IsNegative() {
		return "-" + f.Format(minor.Neg().IntPart())
	}
	return f.Format(minor.IntPart())
}

func lookup(code string) *money.Currency {
	if c := money.GetCurrency(strings.ToUpper(strings.TrimSpace(code))); c != nil {
		return c
	}
	return money.GetCurrency(DefaultCurrency)
}
