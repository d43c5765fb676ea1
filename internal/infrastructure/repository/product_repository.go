package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	domainRepo "github.com/agriconnect/agriconnect-api/internal/domain/repository"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Farmer").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Preload("Farmer").
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.FarmerID != nil {
		query = query.Where("farmer_id = ?", *params.FarmerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Farmer").
		Order("created_at DESC").
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// AtomicDecrementBatch decrements stock inside one transaction, guarding each
// update with a quantity check so concurrent checkouts cannot oversell. If any
// product has insufficient stock the whole batch rolls back and the failing
// IDs are returned.
func (r *productRepository) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failedIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, qty := range decrements {
			res := tx.Model(&entity.Product{}).
				Where("id = ? AND quantity >= ?", id, qty).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}
		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}
		return nil
	})

	if len(failedIDs) > 0 {
		return failedIDs, nil
	}
	return nil, err
}

func (r *productRepository) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, qty := range increments {
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", id).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", qty)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
