package orders

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	"github.com/mobishop/mobishop-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filters.UserEmail != "" {
		query = query.Where("user_email = ?", filters.UserEmail)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if q := strings.ToLower(strings.TrimSpace(filters.Query)); q != "" {
		like := "%" + q + "%"
		query = query.Where("LOWER(CAST(id AS TEXT)) LIKE ? OR LOWER(user_email) LIKE ? OR LOWER(status) LIKE ?", like, like, like)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus, updates map[string]any) error {
	values := map[string]any{"status": status}
	for k, v := range updates {
		values[k] = v
	}
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) RenameEmail(ctx context.Context, oldEmail, newEmail string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("user_email = ?", oldEmail).
		Update("user_email", newEmail).Error
}

func (r *repository) Totals(ctx context.Context) (OrderTotals, error) {
	var row struct {
		Orders  int64
		Revenue decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("COUNT(*) AS orders, SUM(CASE WHEN status <> ? THEN total ELSE 0 END) AS revenue", enums.OrderStatusCanceled).
		Scan(&row).Error
	if err != nil {
		return OrderTotals{}, err
	}
	totals := OrderTotals{Orders: row.Orders, Revenue: decimal.Zero}
	if row.Revenue.Valid {
		totals.Revenue = row.Revenue.Decimal
	}
	return totals, nil
}

func (r *repository) Recent(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&orders).Error
	return orders, err
}
