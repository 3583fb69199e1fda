package wishlist

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/pkg/db"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes business rules for wishlist management.
type Service interface {
	List(ctx context.Context, userEmail string) ([]ItemDTO, error)
	Add(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userEmail string) ([]ItemDTO, error) {
	rows, err := s.repo.ListByEmail(ctx, normalizeEmail(userEmail))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}
	out := make([]ItemDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapItemDTO(row))
	}
	return out, nil
}

// Add saves a product for a shopper. Saving the same product twice is a conflict.
func (s *service) Add(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	email := normalizeEmail(input.UserEmail)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "userEmail is required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "productId is required")
	}
	if input.SavedPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "savedPrice must not be negative")
	}
	item := &models.WishlistItem{
		UserEmail:  email,
		ProductID:  input.ProductID,
		Title:      strings.TrimSpace(input.Title),
		SavedPrice: input.SavedPrice,
		Image:      strings.TrimSpace(input.Image),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product already in wishlist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add wishlist item")
	}
	dto := mapItemDTO(*item)
	return &dto, nil
}

func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "wishlist item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist item")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
