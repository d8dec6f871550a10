package letter

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatters holds the two value formatters every block in a letter goes
// through. No other code path formats currency or dates, so a letter can
// never show the same value in two representations.
type Formatters struct {
	Currency func(int64) string
	Date     func(time.Time) string
}

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders whole rupees with Indian digit grouping. The core PDF
// fonts are cp1252-only, so the rupee sign is spelled "Rs.".
func FormatINR(amount int64) string {
	return inrPrinter.Sprintf("Rs. %d", amount)
}

// FormatDate renders dates in long letter form, e.g. "September 1, 2026".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// DefaultFormatters returns the production currency and date formatters.
func DefaultFormatters() Formatters {
	return Formatters{Currency: FormatINR, Date: FormatDate}
}
