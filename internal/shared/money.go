package shared

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount with grouping separators and two decimals,
// e.g. 10412.5 -> "10,412.50". Used by CSV exports and notification text.
func FormatMoney(amount float64) string {
	return moneyPrinter.Sprintf("%.2f", amount)
}
