package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WishlistItem is a saved product with the price seen when it was saved.
type WishlistItem struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserEmail  string          `gorm:"column:user_email;type:text;not null;uniqueIndex:wishlist_items_user_product_key"`
	ProductID  uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:wishlist_items_user_product_key"`
	Title      string          `gorm:"column:title;not null"`
	SavedPrice decimal.Decimal `gorm:"column:saved_price;type:numeric(12,2);not null"`
	Image      string          `gorm:"column:image;not null;default:''"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (w *WishlistItem) BeforeCreate(*gorm.DB) error {
	assignID(&w.ID)
	return nil
}
