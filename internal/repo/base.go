package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnerColumn is the column every shopper-owned table keys on.
const OwnerColumn = "user_email"

// Base is embedded by repositories that share one gorm connection.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// RenameOwner rewrites the owner email of every model row held by oldEmail.
func (b Base) RenameOwner(ctx context.Context, model any, oldEmail, newEmail string) error {
	return b.DB(ctx).Model(model).
		Where(OwnerColumn+" = ?", oldEmail).
		Update(OwnerColumn, newEmail).Error
}

// DeleteByID removes one row and reports gorm.ErrRecordNotFound when none matched.
func (b Base) DeleteByID(ctx context.Context, model any, id uuid.UUID) error {
	res := b.DB(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
