// Package locale formats figures the way the info panel shows them: en-GB
// digit grouping and whole-number percentages.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BritishEnglish)

// Count formats n with thousands separators, e.g. 50592 -> "50,592".
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Percent formats a fraction as a percentage, e.g. 0.5327 -> "53%".
func Percent(f float64) string {
	return printer.Sprint(number.Percent(f, number.MaxFractionDigits(0)))
}
