// Package money holds the shared presentation helpers for amounts and invoice
// dates. These are formatting utilities only; stored values are always integer
// cents and are never derived from formatted output.
package money

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const invoiceDateLayout = "02 Jan 2006, 3:04 PM"

var printer = message.NewPrinter(language.MustParse("en-IN"))

// FormatCents renders an amount in cents as a locale-aware decimal string with
// exactly two fraction digits, e.g. 123456789 -> "12,34,567.89".
func FormatCents(cents int64) string {
	return FormatDecimal(float64(cents) / 100)
}

// FormatDecimal renders a decimal amount with Indian digit grouping and two
// fraction digits
func FormatDecimal(v float64) string {
	return printer.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// ToCents converts a decimal amount to integer cents. Negative amounts clamp
// to zero; money in this system is never negative.
func ToCents(v float64) int64 {
	if v <= 0 {
		return 0
	}
	return int64(v*100 + 0.5)
}

// FormatInvoiceTime renders a timestamp for invoice display, substituting
// the current time when the input is unset rather than failing
func FormatInvoiceTime(t time.Time) string {
	if t.IsZero() {
		return time.Now().Format(invoiceDateLayout)
	}
	return t.Local().Format(invoiceDateLayout)
}
