package money

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(25000), ToCents(250))
	assert.Equal(t, int64(9999), ToCents(99.99))
	assert.Equal(t, int64(1), ToCents(0.005))

	// Money is never negative
	assert.Equal(t, int64(0), ToCents(-12.50))
	assert.Equal(t, int64(0), ToCents(0))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "250.00", FormatCents(25000))
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "99.99", FormatCents(9999))
}

func TestFormatInvoiceTime(t *testing.T) {
	ts := time.Date(2025, 6, 1, 15, 4, 0, 0, time.UTC)
	formatted := FormatInvoiceTime(ts.UTC())
	assert.NotEmpty(t, formatted)
	assert.Contains(t, formatted, "2025")

	// Zero time falls back to now instead of rendering year 1
	assert.NotContains(t, FormatInvoiceTime(time.Time{}), "0001")
}
