package reviews

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	dbtypes "github.com/mobishop/mobishop-backend/pkg/db/types"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
)

type ReviewDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	UserEmail string    `json:"userEmail"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Photos    []string  `json:"photos"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateReviewInput struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	UserEmail string    `json:"userEmail" validate:"required,email"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" validate:"max=2000"`
	Photos    []string  `json:"photos" validate:"max=5"`
}

// SummaryDTO aggregates a product's ratings. Distribution is indexed by
// star count minus one.
type SummaryDTO struct {
	ProductID    uuid.UUID `json:"productId"`
	Count        int64     `json:"count"`
	Average      float64   `json:"average"`
	Distribution [5]int64  `json:"distribution"`
}

type Service interface {
	Create(ctx context.Context, input CreateReviewInput) (*ReviewDTO, error)
	List(ctx context.Context, productID uuid.UUID, email string) ([]ReviewDTO, error)
	Summary(ctx context.Context, productID uuid.UUID) (*SummaryDTO, error)
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateReviewInput) (*ReviewDTO, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "productId is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.UserEmail))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "userEmail is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	review := &models.Review{
		ProductID: input.ProductID,
		UserEmail: email,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		Photos:    dbtypes.StringList(input.Photos).Clean(),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	dto := mapReviewDTO(*review)
	return &dto, nil
}

// List requires at least one of productID or email.
func (s *service) List(ctx context.Context, productID uuid.UUID, email string) ([]ReviewDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if productID == uuid.Nil && email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "productId or userEmail is required")
	}
	rows, err := s.repo.List(ctx, productID, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	out := make([]ReviewDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapReviewDTO(row))
	}
	return out, nil
}

func (s *service) Summary(ctx context.Context, productID uuid.UUID) (*SummaryDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "productId is required")
	}
	buckets, err := s.repo.RatingCounts(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summarize reviews")
	}
	summary := &SummaryDTO{ProductID: productID}
	var weighted int64
	for _, b := range buckets {
		if b.Rating < 1 || b.Rating > 5 {
			continue
		}
		summary.Distribution[b.Rating-1] = b.Count
		summary.Count += b.Count
		weighted += int64(b.Rating) * b.Count
	}
	if summary.Count > 0 {
		summary.Average = math.Round(float64(weighted)/float64(summary.Count)*10) / 10
	}
	return summary, nil
}

func mapReviewDTO(r models.Review) ReviewDTO {
	photos := []string(r.Photos)
	if photos == nil {
		photos = []string{}
	}
	return ReviewDTO{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserEmail: r.UserEmail,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Photos:    photos,
		CreatedAt: r.CreatedAt,
	}
}
