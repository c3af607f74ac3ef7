package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatCurrencyTHB formats an amount in Thai baht with two decimals.
// Example: 1234.5 -> "฿1,234.50"
func FormatCurrencyTHB(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "฿" + amountPrinter.Sprintf("%.2f", amount)
}
