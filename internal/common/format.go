package common

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// maxFractionDigits matches the en-US locale default for number rendering.
const maxFractionDigits = 3

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatNumber renders v with thousands separators and at most three
// fraction digits, trailing zeros dropped: 67000 -> "67,000", 1234.5 -> "1,234.5".
func FormatNumber(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(maxFractionDigits)))
}

// FormatInt renders n with thousands separators: 850000 -> "850,000".
func FormatInt(n int64) string {
	return printer.Sprint(number.Decimal(n))
}
