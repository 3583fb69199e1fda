package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/internal/cart"
	"gorm.io/gorm"
)

// CartRecord is the server-side copy of a shopper's cart, one per email.
type CartRecord struct {
	ID        uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	UserEmail string      `gorm:"column:user_email;type:text;not null;uniqueIndex"`
	Items     []cart.Line `gorm:"column:items;type:text;not null;serializer:json"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (CartRecord) TableName() string { return "carts" }

func (c *CartRecord) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	if c.Items == nil {
		c.Items = []cart.Line{}
	}
	return nil
}
