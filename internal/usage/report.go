package usage

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders a dollar amount with digit grouping and up to four
// fractional digits, matching the vendor's sub-cent unit prices.
func FormatUSD(amount float64) string {
	return usdPrinter.Sprintf("$%v", number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(4),
	))
}
