package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
	"github.com/agriconnect/agriconnect-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// CreateBatch persists the given orders and their items in a single
	// transaction. A multi-farmer checkout either creates every order or none.
	CreateBatch(ctx context.Context, orders []*entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]entity.Order, error)
	ListAll(ctx context.Context, params *pagination.PaginationParams) ([]entity.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
}

// OrderItemRepository defines the interface for farmer-scoped order item reads
type OrderItemRepository interface {
	// ListByFarmer returns the farmer's own line items across all orders they
	// participate in, with order, product and buyer context preloaded
	ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]entity.OrderItem, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
}
