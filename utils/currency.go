package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.Spanish)

// FormatCLP renders an integral peso amount with a currency prefix and
// locale thousands grouping, e.g. 12500 -> "$12.500".
func FormatCLP(amount int64) string {
	return currencyPrinter.Sprintf("$%d", amount)
}
