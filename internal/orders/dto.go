package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	"github.com/mobishop/mobishop-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// OrderDTO is the wire shape of an order.
type OrderDTO struct {
	ID             uuid.UUID          `json:"id"`
	UserEmail      string             `json:"userEmail"`
	Items          []models.OrderItem `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Shipping       decimal.Decimal    `json:"shipping"`
	Total          decimal.Decimal    `json:"total"`
	FullName       string             `json:"fullName"`
	Phone          string             `json:"phone"`
	Address        string             `json:"address"`
	BillingAddress string             `json:"billingAddress"`
	Status         enums.OrderStatus  `json:"status"`
	CanceledAt     *time.Time         `json:"canceledAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// CreateOrderInput is the payload to place an order. Subtotal and total are
// recomputed from the items.
type CreateOrderInput struct {
	UserEmail      string             `json:"userEmail" validate:"required,email"`
	Items          []models.OrderItem `json:"items" validate:"required,min=1,dive"`
	Shipping       decimal.Decimal    `json:"shipping"`
	FullName       string             `json:"fullName" validate:"required"`
	Phone          string             `json:"phone" validate:"required"`
	Address        string             `json:"address" validate:"required"`
	BillingAddress string             `json:"billingAddress"`
	Status         enums.OrderStatus  `json:"status"`
}

// UpdateOrderInput carries the only mutable order field.
type UpdateOrderInput struct {
	Status enums.OrderStatus `json:"status" validate:"required"`
}

// ListFilters narrows order listings. Query matches id, email or status.
type ListFilters struct {
	UserEmail string
	Status    enums.OrderStatus
	Query     string
}

// OrderTotals counts every order; revenue leaves out canceled ones.
type OrderTotals struct {
	Orders  int64
	Revenue decimal.Decimal
}

// StatsDTO feeds the admin dashboard.
type StatsDTO struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalOrders   int64           `json:"totalOrders"`
	TotalUsers    int64           `json:"totalUsers"`
	TotalProducts int64           `json:"totalProducts"`
	RecentOrders  []OrderDTO      `json:"recentOrders"`
	TopProducts   []TopProductDTO `json:"topProducts"`
}

type TopProductDTO struct {
	ID    uuid.UUID       `json:"id"`
	Title string          `json:"title"`
	Image string          `json:"image"`
	Price decimal.Decimal `json:"price"`
	Sales int             `json:"sales"`
}

func mapOrderDTO(o models.Order) OrderDTO {
	items := o.Items
	if items == nil {
		items = []models.OrderItem{}
	}
	return OrderDTO{
		ID:             o.ID,
		UserEmail:      o.UserEmail,
		Items:          items,
		Subtotal:       o.Subtotal,
		Shipping:       o.Shipping,
		Total:          o.Total,
		FullName:       o.FullName,
		Phone:          o.Phone,
		Address:        o.Address,
		BillingAddress: o.BillingAddress,
		Status:         o.Status,
		CanceledAt:     o.CanceledAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func mapOrderDTOs(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapOrderDTO(row))
	}
	return out
}
