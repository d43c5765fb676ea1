package request

import "github.com/google/uuid"

// AddToCartRequest represents an add-to-cart request. Quantities below one
// are treated as one.
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// UpdateQuantityRequest represents a cart line quantity change. A quantity
// of zero or less removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
