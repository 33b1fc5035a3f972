package finance

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount as a currency string with the
// symbol for the supplied ISO 4217 code. Unknown codes fall back to
// USD.
func FormatCurrency(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	return printer.Sprint(currency.Symbol(unit.Amount(amount)))
}

// FormatPercentage renders a fractional value (0.20 -> "20.00%") with
// the requested number of decimal places.
func FormatPercentage(value float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, value*100)
}
