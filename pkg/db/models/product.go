package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/internal/catalog"
	dbtypes "github.com/mobishop/mobishop-backend/pkg/db/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a sellable catalog item.
type Product struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Title       string             `gorm:"column:title;not null"`
	Description string             `gorm:"column:description;not null;default:''"`
	Price       decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null"`
	Image       string             `gorm:"column:image;not null;default:''"`
	Images      dbtypes.StringList `gorm:"column:images;type:text;not null;default:'[]'"`
	Colors      dbtypes.StringList `gorm:"column:colors;type:text;not null;default:'[]'"`
	Sizes       dbtypes.StringList `gorm:"column:sizes;type:text;not null;default:'[]'"`
	Categories  []catalog.Path     `gorm:"column:categories;type:text;not null;serializer:json"`
	Rating      float64            `gorm:"column:rating;not null;default:0"`
	Sales       int                `gorm:"column:sales;not null;default:0"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	if p.Categories == nil {
		p.Categories = []catalog.Path{}
	}
	return nil
}

// LegacyCategory renders the space-joined tag string older clients read.
func (p Product) LegacyCategory() string {
	return catalog.JoinLegacy(p.Categories)
}
