package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/pkg/money"
)

// InvoiceLine is one priced line of an invoice. Amounts are stored in cents so
// the invoice total is an exact integer sum of its line subtotals.
type InvoiceLine struct {
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	Price        int64     `json:"price_cents"`
	Quantity     int       `json:"quantity"`
	Subtotal     int64     `json:"subtotal_cents"`
	FarmerID     uuid.UUID `json:"farmer_id"`
	FarmerEmail  string    `json:"farmer_email"`
	FarmerName   string    `json:"farmer_name"`
	ProductImage string    `json:"product_image,omitempty"`
}

// MarshalJSON adds decimal amounts alongside the cent fields. The cent fields
// stay in the payload so the invoice round-trips losslessly through the
// session store.
func (l InvoiceLine) MarshalJSON() ([]byte, error) {
	type Alias InvoiceLine
	return json.Marshal(&struct {
		Alias
		PriceDecimal    float64 `json:"price"`
		SubtotalDecimal float64 `json:"subtotal"`
	}{
		Alias:           Alias(l),
		PriceDecimal:    float64(l.Price) / 100,
		SubtotalDecimal: float64(l.Subtotal) / 100,
	})
}

// Invoice is the pre-payment summary of a cart. It is built at
// proceed-to-checkout, held in the per-buyer session store so a reload does
// not lose the billing session, stamped once at successful payment and kept
// around afterwards as the receipt.
type Invoice struct {
	InvoiceNo   string        `json:"invoice_no"`
	Date        time.Time     `json:"date"`
	Items       []InvoiceLine `json:"items"`
	TotalAmount int64         `json:"total_amount_cents"`
	BuyerID     uuid.UUID     `json:"buyer_id"`
	BuyerName   string        `json:"buyer_name"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`
	OrderIDs    []uuid.UUID   `json:"order_ids,omitempty"`
}

// MarshalJSON adds the decimal total and the display strings the billing and
// receipt views render verbatim
func (inv Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		TotalDecimal float64 `json:"total_amount"`
		TotalDisplay string  `json:"total_display"`
		DateDisplay  string  `json:"date_display"`
	}{
		Alias:        Alias(inv),
		TotalDecimal: float64(inv.TotalAmount) / 100,
		TotalDisplay: money.FormatCents(inv.TotalAmount),
		DateDisplay:  money.FormatInvoiceTime(inv.Date),
	})
}

// IsPaid reports whether the invoice has been stamped by a successful payment
func (inv *Invoice) IsPaid() bool {
	return inv.PaidAt != nil
}
