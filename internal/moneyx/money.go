// Package moneyx parses user-entered amounts and formats them for display.
// All amounts are a single currency (USD) with no fractional digits shown.
package moneyx

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currencySymbol = "$"

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders d as whole dollars with thousands grouping,
// e.g. 4500 -> "$4,500" and -300.6 -> "-$301".
func FormatCurrency(d decimal.Decimal) string {
	rounded := d.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + currencySymbol + printer.Sprintf("%d", rounded.IntPart())
}

// ParseAmount reads an amount typed by a user. A leading "$" and grouping
// commas are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, currencySymbol)
	clean = strings.ReplaceAll(clean, ",", "")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", common.ErrDataFormat, s)
	}
	return d, nil
}
