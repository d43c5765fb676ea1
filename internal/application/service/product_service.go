package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	"github.com/agriconnect/agriconnect-api/internal/domain/repository"
	"github.com/agriconnect/agriconnect-api/pkg/apperror"
)

// ProductService handles catalog operations. Listings are public; mutations
// are restricted to the owning farmer (or an admin).
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name     string
	Price    float64
	Quantity int
	Category string
	Image    *string
	Location *string
}

// UpdateProductInput represents the update product input; nil fields are
// left unchanged
type UpdateProductInput struct {
	Name     *string
	Price    *float64
	Quantity *int
	Category *string
	Image    *string
	Location *string
}

// CreateProduct creates a catalog listing owned by the given farmer
func (s *ProductService) CreateProduct(ctx context.Context, farmer *entity.User, input *CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		FarmerID: farmer.ID,
		Name:     input.Name,
		Quantity: input.Quantity,
		Category: input.Category,
		Image:    input.Image,
		Location: input.Location,
	}
	product.SetPriceFromDecimal(input.Price)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists catalog products with search and category filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params)
}

// ListFarmerProducts lists the farmer's own products
func (s *ProductService) ListFarmerProducts(ctx context.Context, farmerID uuid.UUID) ([]entity.Product, error) {
	return s.productRepo.ListByFarmer(ctx, farmerID)
}

// UpdateProduct applies a partial update to a listing the requester owns
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, requester *entity.User, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if !requester.IsAdmin() && product.FarmerID != requester.ID {
		return nil, apperror.ErrForbidden
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Image != nil {
		product.Image = input.Image
	}
	if input.Location != nil {
		product.Location = input.Location
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, id)
}

// DeleteProduct removes a listing the requester owns
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID, requester *entity.User) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	if !requester.IsAdmin() && product.FarmerID != requester.ID {
		return apperror.ErrForbidden
	}

	return s.productRepo.Delete(ctx, id)
}
