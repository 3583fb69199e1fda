package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/mobishop/mobishop-backend/pkg/db/types"
	"gorm.io/gorm"
)

type Review struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID          `gorm:"column:product_id;type:uuid;not null;index"`
	UserEmail string             `gorm:"column:user_email;type:text;not null;index"`
	Rating    int                `gorm:"column:rating;not null"`
	Comment   string             `gorm:"column:comment;not null;default:''"`
	Photos    dbtypes.StringList `gorm:"column:photos;type:text;not null;default:'[]'"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}
