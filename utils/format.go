package utils

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders an amount as "$1,234.50".
func FormatUSD(amount float64) string {
	if amount < 0 {
		return "-" + usd.Sprintf("$%.2f", -amount)
	}
	return usd.Sprintf("$%.2f", amount)
}

// FormatUSDWhole renders an amount rounded to whole dollars as "$1,235".
func FormatUSDWhole(amount float64) string {
	rounded := math.Floor(amount + 0.5)
	if rounded < 0 {
		return "-" + usd.Sprintf("$%.0f", -rounded)
	}
	return usd.Sprintf("$%.0f", rounded)
}
