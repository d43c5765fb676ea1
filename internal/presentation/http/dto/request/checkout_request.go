package request

import "github.com/google/uuid"

// BuyNowRequest starts a single-product billing session, bypassing the cart
type BuyNowRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"omitempty,min=1"`
}

// PayInvoiceRequest represents a payment submission. The invoice number is
// optional; when present it must match the pending billing session, which
// guards against paying a session that was replaced in another tab.
type PayInvoiceRequest struct {
	InvoiceNo string `json:"invoice_no" binding:"omitempty,max=64"`
}
