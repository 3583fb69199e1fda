package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSnapshot is the product data copied into a line when it is added.
// It is never refreshed from the catalog afterwards.
type ProductSnapshot struct {
	ID    uuid.UUID       `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// Options selects the variant of a product.
type Options struct {
	Color *string
	Size  *string
}

// Line is one product variant in a cart.
type Line struct {
	Product ProductSnapshot `json:"product"`
	Qty     int             `json:"qty"`
	Color   *string         `json:"color"`
	Size    *string         `json:"size"`
}

// Key identifies a line: product id plus color and size, absent values as "".
type Key struct {
	ProductID uuid.UUID
	Color     string
	Size      string
}

func KeyFor(productID uuid.UUID, opts Options) Key {
	return Key{ProductID: productID, Color: deref(opts.Color), Size: deref(opts.Size)}
}

func (l Line) Key() Key {
	return Key{ProductID: l.Product.ID, Color: deref(l.Color), Size: deref(l.Size)}
}

// Subtotal returns price × qty.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// optional normalizes "" to nil so both spellings of "no option" share a key.
func optional(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	out := *v
	return &out
}
