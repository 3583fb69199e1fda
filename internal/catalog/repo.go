package catalog

import (
	"context"

	"github.com/mobishop/mobishop-backend/internal/repo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists catalog documents.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Find returns gorm.ErrRecordNotFound when the document was never written.
func (r *Repository) Find(ctx context.Context, key string) (*Document, error) {
	var doc Document
	if err := r.DB(ctx).Where("doc_key = ?", key).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save overwrites the whole document.
func (r *Repository) Save(ctx context.Context, doc *Document) error {
	return r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doc_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
		}).
		Create(doc).Error
}
