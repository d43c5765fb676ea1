package entity

import (
	"encoding/json"

	"github.com/google/uuid"
)

// CartLine is the minimal persisted cart record: a product reference plus a
// quantity. Name, price, image and farmer identity are deliberately not stored
// here; they are resolved from the catalog on every read so the cart stays
// small and never goes stale.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// ResolvedCartItem is a CartLine joined with a catalog snapshot. Derived,
// never persisted.
type ResolvedCartItem struct {
	ProductID   uuid.UUID `json:"product_id"`
	Name        string    `json:"name"`
	Price       int64     `json:"-"` // cents
	Quantity    int       `json:"quantity"`
	FarmerID    uuid.UUID `json:"farmer_id"`
	FarmerEmail string    `json:"farmer_email"`
	FarmerName  string    `json:"farmer_name"`
	Image       string    `json:"image,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i ResolvedCartItem) MarshalJSON() ([]byte, error) {
	type Alias ResolvedCartItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(i),
		Price: float64(i.Price) / 100,
	})
}

// GetPriceDecimal returns the price as a decimal (for display)
func (i *ResolvedCartItem) GetPriceDecimal() float64 {
	return float64(i.Price) / 100
}
