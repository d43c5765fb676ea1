package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
)

// RawItem is an un-normalized invoice input line, typically produced from a
// resolved cart item or a buy-now selection. Fields may be missing or out of
// range; BuildInvoice coerces them instead of failing so the checkout flow
// degrades rather than crashes.
type RawItem struct {
	ProductID   uuid.UUID
	Name        string
	Price       int64 // cents; negative values are treated as 0
	Quantity    int
	FarmerID    uuid.UUID
	FarmerEmail string
	FarmerName  string
	Image       string
}

// InvoiceMetadata carries the caller-supplied invoice attributes. Zero values
// are filled in at build time: the invoice number from the creation timestamp,
// the date from now.
type InvoiceMetadata struct {
	InvoiceNo string
	Date      time.Time
	BuyerID   uuid.UUID
	BuyerName string
}

// BuildInvoice turns raw lines into a normalized, priced invoice. It is pure:
// persistence is the caller's decision.
//
// Per line: quantity is floored to at least 1, price is clamped to a
// non-negative amount, a missing name becomes "Item", and
// subtotal = price × quantity. The invoice total is the exact sum of line
// subtotals and is the single authoritative total for the rest of checkout;
// no later stage recomputes it independently.
func BuildInvoice(items []RawItem, meta InvoiceMetadata) *entity.Invoice {
	lines := make([]entity.InvoiceLine, 0, len(items))
	var total int64

	for _, item := range items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		price := item.Price
		if price < 0 {
			price = 0
		}
		name := item.Name
		if name == "" {
			name = "Item"
		}

		subtotal := price * int64(quantity)
		total += subtotal

		lines = append(lines, entity.InvoiceLine{
			ProductID:    item.ProductID,
			Name:         name,
			Price:        price,
			Quantity:     quantity,
			Subtotal:     subtotal,
			FarmerID:     item.FarmerID,
			FarmerEmail:  item.FarmerEmail,
			FarmerName:   item.FarmerName,
			ProductImage: item.Image,
		})
	}

	invoiceNo := meta.InvoiceNo
	if invoiceNo == "" {
		invoiceNo = generateInvoiceNo()
	}
	date := meta.Date
	if date.IsZero() {
		date = time.Now()
	}

	return &entity.Invoice{
		InvoiceNo:   invoiceNo,
		Date:        date,
		Items:       lines,
		TotalAmount: total,
		BuyerID:     meta.BuyerID,
		BuyerName:   meta.BuyerName,
	}
}

// generateInvoiceNo derives the invoice number from the creation time
func generateInvoiceNo() string {
	return fmt.Sprintf("INV%d", time.Now().UnixMilli())
}

// RawItemFromResolved converts a resolved cart item into an invoice input line
func RawItemFromResolved(item entity.ResolvedCartItem) RawItem {
	return RawItem{
		ProductID:   item.ProductID,
		Name:        item.Name,
		Price:       item.Price,
		Quantity:    item.Quantity,
		FarmerID:    item.FarmerID,
		FarmerEmail: item.FarmerEmail,
		FarmerName:  item.FarmerName,
		Image:       item.Image,
	}
}
