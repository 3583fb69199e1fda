package models

import (
	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/internal/catalog"
)

// assignID gives a row a random id before insert when none was set.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All lists every table the data API owns, for AutoMigrate in SQLite mode.
func All() []any {
	return []any{
		&User{},
		&Product{},
		&Order{},
		&Review{},
		&WishlistItem{},
		&CartRecord{},
		&catalog.Document{},
	}
}
