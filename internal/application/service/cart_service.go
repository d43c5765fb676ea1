package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	"github.com/agriconnect/agriconnect-api/internal/domain/repository"
)

// CartService handles the per-user durable cart. Carts store only
// {productId, quantity}; everything else is joined from the catalog on read.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new cart service
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddToCart merges the line into the user's cart, summing quantities for an
// existing product rather than duplicating the line. A missing user or
// product reference is a deliberate silent no-op, not an error.
func (s *CartService) AddToCart(ctx context.Context, userID uuid.UUID, line entity.CartLine) error {
	if userID == uuid.Nil || line.ProductID == uuid.Nil {
		return nil
	}
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	lines, err := s.cartRepo.Load(ctx, userID)
	if err != nil {
		return err
	}

	merged := false
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, line)
	}

	return s.cartRepo.Save(ctx, userID, lines)
}

// UpdateQuantity sets the quantity of an existing line. A requested quantity
// of zero or less removes the line entirely; it is never left at zero.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	lines, err := s.cartRepo.Load(ctx, userID)
	if err != nil {
		return err
	}

	next := lines[:0]
	for _, line := range lines {
		if line.ProductID == productID {
			if quantity <= 0 {
				continue
			}
			line.Quantity = quantity
		}
		next = append(next, line)
	}

	return s.cartRepo.Save(ctx, userID, next)
}

// RemoveFromCart removes the line for the given product. Removing an absent
// product is a no-op, so the operation is idempotent.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error {
	lines, err := s.cartRepo.Load(ctx, userID)
	if err != nil {
		return err
	}

	next := lines[:0]
	for _, line := range lines {
		if line.ProductID != productID {
			next = append(next, line)
		}
	}

	return s.cartRepo.Save(ctx, userID, next)
}

// ClearCart empties the user's cart. Checkout calls this only after the order
// backend has confirmed creation; clearing earlier would lose the buyer's
// selection on a failed order.
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.Clear(ctx, userID)
}

// GetCart loads the user's cart and resolves every line against the catalog
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]entity.ResolvedCartItem, error) {
	lines, err := s.cartRepo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []entity.ResolvedCartItem{}, nil
	}

	ids := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	items := make([]entity.ResolvedCartItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, Resolve(line, productMap[line.ProductID]))
	}
	return items, nil
}

// Resolve joins a cart line with its catalog snapshot. A vanished product
// resolves to a placeholder instead of an error so a stale cart still renders.
func Resolve(line entity.CartLine, product *entity.Product) entity.ResolvedCartItem {
	quantity := line.Quantity
	if quantity < 1 {
		quantity = 1
	}

	if product == nil {
		return entity.ResolvedCartItem{
			ProductID: line.ProductID,
			Name:      "Unknown Product",
			Price:     0,
			Quantity:  quantity,
		}
	}

	item := entity.ResolvedCartItem{
		ProductID: line.ProductID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		FarmerID:  product.FarmerID,
	}
	if product.Image != nil {
		item.Image = *product.Image
	}
	if product.Farmer.ID != uuid.Nil {
		item.FarmerEmail = product.Farmer.Email
		item.FarmerName = product.Farmer.Name
	}
	return item
}
