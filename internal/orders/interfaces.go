package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	"github.com/mobishop/mobishop-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the orders table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filters ListFilters) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus, updates map[string]any) error
	RenameEmail(ctx context.Context, oldEmail, newEmail string) error
	Totals(ctx context.Context) (OrderTotals, error)
	Recent(ctx context.Context, limit int) ([]models.Order, error)
}

// ProductStats is the slice of the product repository the dashboard reads.
type ProductStats interface {
	Count(ctx context.Context) (int64, error)
	TopSelling(ctx context.Context, limit int) ([]models.Product, error)
}

// UserCounter counts registered shoppers.
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}
