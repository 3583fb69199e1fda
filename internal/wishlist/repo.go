package wishlist

import (
	"context"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/internal/repo"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListByEmail returns a shopper's saved items, newest first. An empty email
// lists every entry.
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]models.WishlistItem, error) {
	query := r.DB(ctx).Model(&models.WishlistItem{})
	if email != "" {
		query = query.Where("user_email = ?", email)
	}
	var out []models.WishlistItem
	err := query.Order("created_at DESC").Order("id DESC").Find(&out).Error
	return out, err
}

func (r *Repository) Create(ctx context.Context, item *models.WishlistItem) error {
	return r.DB(ctx).Create(item).Error
}

// Delete removes the entry and reports gorm.ErrRecordNotFound when nothing matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DeleteByID(ctx, &models.WishlistItem{}, id)
}

func (r *Repository) RenameEmail(ctx context.Context, oldEmail, newEmail string) error {
	return r.RenameOwner(ctx, &models.WishlistItem{}, oldEmail, newEmail)
}
