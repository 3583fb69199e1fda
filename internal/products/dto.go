package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/internal/catalog"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ProductDTO is the product payload returned to clients. Category carries
// the legacy space-joined tags for older readers.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	Colors      []string        `json:"colors"`
	Sizes       []string        `json:"sizes"`
	Categories  []catalog.Path  `json:"categories"`
	Category    string          `json:"category"`
	Rating      float64         `json:"rating"`
	Sales       int             `json:"sales"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductListResult is one page of a filtered listing.
type ProductListResult struct {
	Items      []ProductDTO `json:"items"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
}

func mapProductDTO(p models.Product) ProductDTO {
	categories := p.Categories
	if categories == nil {
		categories = []catalog.Path{}
	}
	return ProductDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Images:      nonNil(p.Images),
		Colors:      nonNil(p.Colors),
		Sizes:       nonNil(p.Sizes),
		Categories:  categories,
		Category:    p.LegacyCategory(),
		Rating:      p.Rating,
		Sales:       p.Sales,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
