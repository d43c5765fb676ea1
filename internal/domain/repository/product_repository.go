package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	"github.com/agriconnect/agriconnect-api/pkg/pagination"
)

// ProductRepository defines the interface for product catalog operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]entity.Product, error)
	// AtomicDecrementBatch decrements stock for each product and returns the
	// IDs that failed due to insufficient stock. All-or-nothing.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error)
	// AtomicIncrementBatch restores stock, used when a placed order is cancelled
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// ProductFilterParams contains filtering parameters for catalog browsing
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	FarmerID   *uuid.UUID
}
