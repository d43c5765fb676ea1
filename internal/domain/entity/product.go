package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agriconnect/agriconnect-api/pkg/money"
)

// Product represents produce listed by a farmer
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FarmerID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"farmer_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	Category    string         `gorm:"size:100;default:'General'" json:"category"`
	Price       int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Quantity    int            `gorm:"default:0" json:"quantity"`
	Image       *string        `gorm:"size:255" json:"image,omitempty"`
	Location    *string        `gorm:"size:255" json:"location,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Farmer User `gorm:"foreignKey:FarmerID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses,
// with the farmer identity flattened onto the record the way the storefront expects
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	out := &struct {
		Alias
		Price       float64 `json:"price"`
		FarmerEmail string  `json:"farmer_email,omitempty"`
		FarmerName  string  `json:"farmer_name,omitempty"`
	}{
		Alias: Alias(p),
		Price: p.GetPriceDecimal(),
	}
	if p.Farmer.ID != uuid.Nil {
		out.FarmerEmail = p.Farmer.Email
		out.FarmerName = p.Farmer.Name
	}
	return json.Marshal(out)
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetPriceDecimal returns the price as a decimal (for display)
func (p *Product) GetPriceDecimal() float64 {
	return float64(p.Price) / 100
}

// SetPriceFromDecimal sets the price from a decimal value
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = money.ToCents(price)
}
