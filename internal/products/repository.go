package product

import (
	"context"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/internal/repo"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	"github.com/mobishop/mobishop-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository encapsulates product persistence.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Create(product).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update writes the given columns. Missing rows surface as gorm.ErrRecordNotFound.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := r.DB(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DeleteByID(ctx, &models.Product{}, id)
}

// PriceRange bounds a listing; nil ends are open.
type PriceRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// List loads every product within the price range in the requested order.
func (r *Repository) List(ctx context.Context, prices PriceRange, sort enums.ProductSort) ([]models.Product, error) {
	query := r.DB(ctx).Model(&models.Product{})
	if prices.Min != nil {
		query = query.Where("price >= ?", *prices.Min)
	}
	if prices.Max != nil {
		query = query.Where("price <= ?", *prices.Max)
	}
	switch sort {
	case enums.ProductSortPriceAsc:
		query = query.Order("price ASC")
	case enums.ProductSortPriceDesc:
		query = query.Order("price DESC")
	case enums.ProductSortBestSelling:
		query = query.Order("sales DESC")
	}
	query = query.Order("created_at DESC").Order("id DESC")

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// TopSelling returns the best sellers for the admin dashboard.
func (r *Repository) TopSelling(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.DB(ctx).
		Where("sales > 0").
		Order("sales DESC").
		Order("title ASC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}
