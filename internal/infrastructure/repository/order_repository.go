package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
	domainRepo "github.com/agriconnect/agriconnect-api/internal/domain/repository"
	"github.com/agriconnect/agriconnect-api/pkg/pagination"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateBatch(ctx context.Context, orders []*entity.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, order := range orders {
			// Items are created through the has-many association
			if err := tx.Create(order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListAll(ctx context.Context, params *pagination.PaginationParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Buyer").
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("order_status", status).Error
}

type orderItemRepository struct {
	db *gorm.DB
}

// NewOrderItemRepository creates a new order item repository
func NewOrderItemRepository(db *gorm.DB) domainRepo.OrderItemRepository {
	return &orderItemRepository{db: db}
}

// ListByFarmer returns only the farmer's own line items, not whole orders: a
// farmer has no visibility into co-farmer lines of a multi-farmer order.
func (r *orderItemRepository) ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Preload("Order").
		Preload("Order.Buyer").
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}
