package carts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/internal/cart"
	"github.com/mobishop/mobishop-backend/pkg/db"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"gorm.io/gorm"
)

// CartDTO is the wire shape of a server-side cart.
type CartDTO struct {
	ID        uuid.UUID   `json:"id"`
	UserEmail string      `json:"userEmail"`
	Items     []cart.Line `json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type CreateCartInput struct {
	UserEmail string      `json:"userEmail" validate:"required,email"`
	Items     []cart.Line `json:"items"`
}

type UpdateCartInput struct {
	Items []cart.Line `json:"items"`
}

// Service exposes the server-side cart resource.
type Service interface {
	ListByEmail(ctx context.Context, email string) ([]CartDTO, error)
	Create(ctx context.Context, input CreateCartInput) (*CartDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCartInput) (*CartDTO, error)
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repository required")
	}
	return &service{repo: repo}, nil
}

// ListByEmail returns zero or one carts; there is at most one per email.
func (s *service) ListByEmail(ctx context.Context, email string) ([]CartDTO, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "userEmail is required")
	}
	record, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []CartDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return []CartDTO{mapCartDTO(*record)}, nil
}

func (s *service) Create(ctx context.Context, input CreateCartInput) (*CartDTO, error) {
	email := normalizeEmail(input.UserEmail)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "userEmail is required")
	}
	record := &models.CartRecord{UserEmail: email, Items: cart.New(input.Items).Lines()}
	if err := s.repo.Create(ctx, record); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "cart already exists for user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
	}
	dto := mapCartDTO(*record)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCartInput) (*CartDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	record, err := s.repo.ReplaceItems(ctx, id, cart.New(input.Items).Lines())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart")
	}
	dto := mapCartDTO(*record)
	return &dto, nil
}

func mapCartDTO(record models.CartRecord) CartDTO {
	items := record.Items
	if items == nil {
		items = []cart.Line{}
	}
	return CartDTO{
		ID:        record.ID,
		UserEmail: record.UserEmail,
		Items:     items,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
