package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey caches the response of a processed mutating request so a
// resubmission (double-click, network retry) replays the original outcome
// instead of creating duplicate orders. Checkout keys the header on the
// invoice number.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"uniqueIndex;size:255;not null"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Endpoint     string    `gorm:"size:255;not null"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
