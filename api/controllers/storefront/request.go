package storefront

import (
	"github.com/google/uuid"

	"github.com/mobishop/mobishop-backend/internal/cart"
)

type addItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Qty       int       `json:"qty"`
	Color     *string   `json:"color"`
	Size      *string   `json:"size"`
}

type updateItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Qty       int       `json:"qty"`
	Color     *string   `json:"color"`
	Size      *string   `json:"size"`
}

type removeItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Color     *string   `json:"color"`
	Size      *string   `json:"size"`
}

func options(color, size *string) cart.Options {
	return cart.Options{Color: color, Size: size}
}
