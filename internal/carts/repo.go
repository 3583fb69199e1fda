package carts

import (
	"context"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/internal/cart"
	"github.com/mobishop/mobishop-backend/internal/repo"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists server-side carts.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.CartRecord, error) {
	var record models.CartRecord
	if err := r.DB(ctx).Where("user_email = ?", email).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CartRecord, error) {
	var record models.CartRecord
	if err := r.DB(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) Create(ctx context.Context, record *models.CartRecord) error {
	return r.DB(ctx).Create(record).Error
}

// ReplaceItems overwrites the stored lines of a cart.
func (r *Repository) ReplaceItems(ctx context.Context, id uuid.UUID, items []cart.Line) (*models.CartRecord, error) {
	record, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Items = items
	if record.Items == nil {
		record.Items = []cart.Line{}
	}
	if err := r.DB(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// RenameEmail moves a shopper's cart to a new address.
func (r *Repository) RenameEmail(ctx context.Context, oldEmail, newEmail string) error {
	return r.RenameOwner(ctx, &models.CartRecord{}, oldEmail, newEmail)
}
