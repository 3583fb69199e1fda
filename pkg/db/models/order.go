package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is a snapshot of a purchased cart line.
type OrderItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Title     string          `json:"title"`
	Image     string          `json:"image,omitempty"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Color     *string         `json:"color"`
	Size      *string         `json:"size"`
}

// Order is immutable after placement apart from its status.
type Order struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	UserEmail      string            `gorm:"column:user_email;type:text;not null;index"`
	Items          []OrderItem       `gorm:"column:items;type:text;not null;serializer:json"`
	Subtotal       decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Shipping       decimal.Decimal   `gorm:"column:shipping;type:numeric(12,2);not null"`
	Total          decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	FullName       string            `gorm:"column:full_name;not null"`
	Phone          string            `gorm:"column:phone;not null"`
	Address        string            `gorm:"column:address;not null"`
	BillingAddress string            `gorm:"column:billing_address;not null;default:''"`
	Status         enums.OrderStatus `gorm:"column:status;type:text;not null"`
	CanceledAt     *time.Time        `gorm:"column:canceled_at"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	assignID(&o.ID)
	if o.Items == nil {
		o.Items = []OrderItem{}
	}
	return nil
}
