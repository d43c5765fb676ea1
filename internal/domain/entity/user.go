package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
)

// User represents a marketplace user: buyer, farmer or admin
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Email      string         `gorm:"size:255;unique;not null" json:"email"`
	Password   string         `gorm:"size:255" json:"-"`
	Role       enum.Role      `gorm:"size:20;not null;default:'buyer'" json:"role"`
	Provider   string         `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID *string        `gorm:"size:255" json:"-"`
	Photo      *string        `gorm:"size:255" json:"photo,omitempty"`
	Location   *string        `gorm:"size:255" json:"location,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:FarmerID" json:"-"`
	Orders   []Order   `gorm:"foreignKey:BuyerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsFarmer reports whether the user can list produce and fulfil orders
func (u *User) IsFarmer() bool {
	return u.Role == enum.RoleFarmer
}

// IsAdmin reports whether the user can manage users and view all transactions
func (u *User) IsAdmin() bool {
	return u.Role == enum.RoleAdmin
}
