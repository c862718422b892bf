package fees

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.French)

// FormatAmount renders a whole-euro amount with French digit grouping.
func FormatAmount(v float64) string {
	return printer.Sprintf("%d €", int64(math.Round(v)))
}

// FormatPercent renders a percentage with a decimal comma.
func FormatPercent(v float64, digits int) string {
	return printer.Sprintf(fmt.Sprintf("%%.%df %%%%", digits), v)
}

// BracketLabel describes the price range covered by a bracket row.
func BracketLabel(b BracketRow) string {
	if b.Unbounded() {
		return "au-delà de " + FormatAmount(b.Lower)
	}
	return "de " + FormatAmount(b.Lower) + " à " + FormatAmount(b.Upper)
}
