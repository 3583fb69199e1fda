package product

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/internal/catalog"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	dbtypes "github.com/mobishop/mobishop-backend/pkg/db/types"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NotFoundMessage is shown by the storefront when a product is missing.
const NotFoundMessage = "Ürün bulunamadı"

// Service exposes product catalog operations for the admin and storefront.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
}

// CreateProductInput holds the payload to create a product. Categories
// wins over the legacy Category string when both are present.
type CreateProductInput struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	Colors      []string        `json:"colors"`
	Sizes       []string        `json:"sizes"`
	Categories  []catalog.Path  `json:"categories"`
	Category    string          `json:"category"`
	Rating      float64         `json:"rating" validate:"min=0,max=5"`
}

// UpdateProductInput holds optional mutations. SalesDelta is added to the
// stored counter rather than replacing it.
type UpdateProductInput struct {
	Title       *string          `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Images      *[]string        `json:"images,omitempty"`
	Colors      *[]string        `json:"colors,omitempty"`
	Sizes       *[]string        `json:"sizes,omitempty"`
	Categories  *[]catalog.Path  `json:"categories,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Rating      *float64         `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Sales       *int             `json:"sales,omitempty" validate:"omitempty,min=0"`
	SalesDelta  *int             `json:"salesDelta,omitempty"`
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	categories, err := resolveCategories(input.Categories, input.Category)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Title:       title,
		Description: input.Description,
		Price:       input.Price,
		Image:       strings.TrimSpace(input.Image),
		Images:      dbtypes.StringList(input.Images).Clean(),
		Colors:      dbtypes.StringList(input.Colors).Clean(),
		Sizes:       dbtypes.StringList(input.Sizes).Clean(),
		Categories:  categories,
		Rating:      input.Rating,
	}
	if product.Image == "" && len(product.Images) > 0 {
		product.Image = product.Images[0]
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	dto := mapProductDTO(*product)
	return &dto, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "load product")
	}
	dto := mapProductDTO(*product)
	return &dto, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	updates, err := buildUpdates(input)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, mapRepoError(err, "update product")
		}
	}
	return s.GetProduct(ctx, id)
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "delete product")
	}
	return nil
}

// ListProducts narrows by price in SQL and by category, color and size in
// memory, then pages the result.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	if input.MinPrice != nil && input.MaxPrice != nil && input.MinPrice.GreaterThan(*input.MaxPrice) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minPrice must not exceed maxPrice")
	}
	rows, err := s.repo.List(ctx, PriceRange{Min: input.MinPrice, Max: input.MaxPrice}, input.Sort)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	filtered := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		if input.matches(row) {
			filtered = append(filtered, row)
		}
	}

	meta := input.Pagination.Meta(len(filtered))
	start, end := input.Pagination.Bounds(len(filtered))
	items := make([]ProductDTO, 0, end-start)
	for _, row := range filtered[start:end] {
		items = append(items, mapProductDTO(row))
	}
	return &ProductListResult{
		Items:      items,
		Total:      meta.Total,
		Page:       meta.Page,
		Limit:      meta.Limit,
		TotalPages: meta.TotalPages,
	}, nil
}

func buildUpdates(input UpdateProductInput) (map[string]any, error) {
	updates := map[string]any{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title must not be empty")
		}
		updates["title"] = title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		updates["price"] = *input.Price
	}
	if input.Image != nil {
		updates["image"] = strings.TrimSpace(*input.Image)
	}
	if input.Images != nil {
		updates["images"] = dbtypes.StringList(*input.Images).Clean()
	}
	if input.Colors != nil {
		updates["colors"] = dbtypes.StringList(*input.Colors).Clean()
	}
	if input.Sizes != nil {
		updates["sizes"] = dbtypes.StringList(*input.Sizes).Clean()
	}
	if input.Categories != nil || input.Category != nil {
		var structured []catalog.Path
		legacy := ""
		if input.Categories != nil {
			structured = *input.Categories
		}
		if input.Category != nil {
			legacy = *input.Category
		}
		categories, err := resolveCategories(structured, legacy)
		if err != nil {
			return nil, err
		}
		updates["categories"] = categoriesColumn(categories)
	}
	if input.Rating != nil {
		updates["rating"] = *input.Rating
	}
	if input.Sales != nil && input.SalesDelta != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sales and salesDelta are mutually exclusive")
	}
	if input.Sales != nil {
		updates["sales"] = *input.Sales
	}
	if input.SalesDelta != nil {
		updates["sales"] = gorm.Expr("sales + ?", *input.SalesDelta)
	}
	return updates, nil
}

func resolveCategories(structured []catalog.Path, legacy string) ([]catalog.Path, error) {
	if len(structured) > 0 {
		out := make([]catalog.Path, 0, len(structured))
		for _, p := range structured {
			p = catalog.Path{
				Gender:      strings.TrimSpace(p.Gender),
				Group:       strings.TrimSpace(p.Group),
				Subcategory: strings.TrimSpace(p.Subcategory),
			}
			if err := p.Validate(); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
			}
			out = append(out, p)
		}
		return out, nil
	}
	paths, err := catalog.ParseLegacyPaths(legacy)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	if paths == nil {
		paths = []catalog.Path{}
	}
	return paths, nil
}

func mapRepoError(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, NotFoundMessage)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

// categoriesColumn encodes paths for a map-based update, which bypasses the
// model's JSON serializer.
func categoriesColumn(paths []catalog.Path) string {
	body, err := json.Marshal(paths)
	if err != nil {
		return "[]"
	}
	return string(body)
}
