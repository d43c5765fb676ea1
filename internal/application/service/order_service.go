package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
	"github.com/agriconnect/agriconnect-api/internal/domain/repository"
	"github.com/agriconnect/agriconnect-api/pkg/apperror"
	"github.com/agriconnect/agriconnect-api/pkg/pagination"
)

// OrderService drives the order lifecycle after checkout. Status changes go
// through the transition table in the enum package; this service adds the
// ownership checks (a farmer may only move orders containing their items, a
// buyer may only cancel their own orders) and the stock restoration on
// cancellation.
type OrderService struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	productRepo   repository.ProductRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	productRepo repository.ProductRepository,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		productRepo:   productRepo,
	}
}

// GetBuyerOrders returns the buyer's own orders, newest first, with items and
// product context for the order history view
func (s *OrderService) GetBuyerOrders(ctx context.Context, buyerID uuid.UUID) ([]entity.Order, error) {
	return s.orderRepo.ListByBuyer(ctx, buyerID)
}

// GetOrder returns a single order with items, visible only to its buyer, a
// farmer with items in it, or an admin
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID, requester *entity.User) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !s.canView(order, requester) {
		return nil, apperror.ErrForbidden
	}
	return order, nil
}

// GetFarmerOrderItems returns the farmer's sales ledger: only their own line
// items, across every order they participate in
func (s *OrderService) GetFarmerOrderItems(ctx context.Context, farmerID uuid.UUID) ([]entity.OrderItem, error) {
	return s.orderItemRepo.ListByFarmer(ctx, farmerID)
}

// ListAllOrders returns every order for the admin dashboard
func (s *OrderService) ListAllOrders(ctx context.Context, params *pagination.PaginationParams) ([]entity.Order, int64, error) {
	return s.orderRepo.ListAll(ctx, params)
}

// AdvanceStatus moves an order to the requested status on behalf of a farmer.
// The farmer must own at least one item in the order, and the move must be a
// legal forward step; anything else is rejected without touching the order.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, farmer *entity.User, target enum.OrderStatus) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !farmer.IsAdmin() && !order.FarmerOwns(farmer.ID) {
		return nil, apperror.ErrForbidden
	}
	if !enum.CanTransition(order.OrderStatus, target, enum.RoleFarmer) {
		return nil, apperror.ErrIllegalTransition
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, target); err != nil {
		return nil, err
	}

	// Re-read so the caller sees the stored state, not an optimistic guess
	return s.orderRepo.GetWithItems(ctx, orderID)
}

// CancelOrder cancels a PLACED order on behalf of its buyer and returns the
// reserved stock to the catalog. Orders a farmer has already accepted can no
// longer be cancelled by the buyer.
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID, buyer *entity.User) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !buyer.IsAdmin() && order.BuyerID != buyer.ID {
		return nil, apperror.ErrForbidden
	}
	if !enum.CanTransition(order.OrderStatus, enum.OrderStatusCancelled, enum.RoleBuyer) {
		return nil, apperror.ErrIllegalTransition
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, enum.OrderStatusCancelled); err != nil {
		return nil, err
	}

	increments := make(map[uuid.UUID]int, len(order.Items))
	for _, item := range order.Items {
		increments[item.ProductID] += item.Quantity
	}
	if len(increments) > 0 {
		if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
			return nil, err
		}
	}

	return s.orderRepo.GetWithItems(ctx, orderID)
}

func (s *OrderService) canView(order *entity.Order, requester *entity.User) bool {
	if requester == nil {
		return false
	}
	if requester.IsAdmin() || order.BuyerID == requester.ID {
		return true
	}
	return requester.IsFarmer() && order.FarmerOwns(requester.ID)
}
