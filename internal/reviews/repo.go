package reviews

import (
	"context"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/internal/repo"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists product reviews.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, review *models.Review) error {
	return r.DB(ctx).Create(review).Error
}

// List returns reviews newest first; zero-valued filters are ignored.
func (r *Repository) List(ctx context.Context, productID uuid.UUID, email string) ([]models.Review, error) {
	query := r.DB(ctx).Model(&models.Review{})
	if productID != uuid.Nil {
		query = query.Where("product_id = ?", productID)
	}
	if email != "" {
		query = query.Where("user_email = ?", email)
	}
	var out []models.Review
	err := query.Order("created_at DESC").Order("id DESC").Find(&out).Error
	return out, err
}

type RatingBucket struct {
	Rating int
	Count  int64
}

// RatingCounts groups a product's reviews by star rating.
func (r *Repository) RatingCounts(ctx context.Context, productID uuid.UUID) ([]RatingBucket, error) {
	var rows []RatingBucket
	err := r.DB(ctx).Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Group("rating").
		Scan(&rows).Error
	return rows, err
}

func (r *Repository) RenameEmail(ctx context.Context, oldEmail, newEmail string) error {
	return r.RenameOwner(ctx, &models.Review{}, oldEmail, newEmail)
}
