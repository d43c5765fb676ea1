package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
)

// CartRepository defines the interface for the per-user durable cart store.
// The cart lives outside the transactional order data; a malformed persisted
// payload must degrade to an empty cart, never an error.
type CartRepository interface {
	Load(ctx context.Context, userID uuid.UUID) ([]entity.CartLine, error)
	Save(ctx context.Context, userID uuid.UUID, lines []entity.CartLine) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

// InvoiceRepository defines the interface for the per-buyer billing session
// state: the in-progress invoice (so a reload does not lose the checkout) and
// the last completed invoice (the receipt).
type InvoiceRepository interface {
	SavePending(ctx context.Context, buyerID uuid.UUID, inv *entity.Invoice) error
	GetPending(ctx context.Context, buyerID uuid.UUID) (*entity.Invoice, error)
	DeletePending(ctx context.Context, buyerID uuid.UUID) error
	SaveReceipt(ctx context.Context, buyerID uuid.UUID, inv *entity.Invoice) error
	GetReceipt(ctx context.Context, buyerID uuid.UUID) (*entity.Invoice, error)
}
