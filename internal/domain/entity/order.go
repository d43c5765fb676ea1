package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
)

// Order represents a placed order. A multi-farmer cart is split at checkout,
// so every order's items belong to a single farmer.
type Order struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	BuyerID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"buyer_id"`
	InvoiceNo   string           `gorm:"size:100;not null;index" json:"invoice_no"`
	OrderDate   time.Time        `gorm:"not null" json:"order_date"`
	OrderStatus enum.OrderStatus `gorm:"default:0" json:"order_status"`
	TotalAmount int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Buyer *User       `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(o),
		TotalAmount: float64(o.TotalAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// FarmerOwns reports whether the given farmer has at least one item in the order
func (o *Order) FarmerOwns(farmerID uuid.UUID) bool {
	for _, item := range o.Items {
		if item.FarmerID == farmerID {
			return true
		}
	}
	return false
}

// OrderItem represents a single product line within an order. PriceAtPurchase
// is captured at order-creation time and never recomputed from the catalog.
type OrderItem struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	FarmerID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"farmer_id"`
	Quantity        int            `gorm:"not null" json:"quantity"`
	PriceAtPurchase int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   *Order   `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses.
// Subtotal is a presentation derivation, not a stored field.
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		PriceAtPurchase float64 `json:"price_at_purchase"`
		Subtotal        float64 `json:"subtotal"`
	}{
		Alias:           Alias(oi),
		PriceAtPurchase: float64(oi.PriceAtPurchase) / 100,
		Subtotal:        float64(oi.Subtotal()) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns priceAtPurchase × quantity in cents
func (oi *OrderItem) Subtotal() int64 {
	return oi.PriceAtPurchase * int64(oi.Quantity)
}
