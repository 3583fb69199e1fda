package product

import (
	"github.com/mobishop/mobishop-backend/internal/catalog"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	"github.com/mobishop/mobishop-backend/pkg/enums"
	"github.com/mobishop/mobishop-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ListProductsInput captures the storefront grid filters.
type ListProductsInput struct {
	Categories []string
	Colors     []string
	Sizes      []string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       enums.ProductSort
	Pagination pagination.Params
}

// matches applies the filters that are not expressible in SQL. Colors and
// sizes match when the product offers any requested value.
func (in ListProductsInput) matches(p models.Product) bool {
	if !catalog.MatchesAny(p.Categories, in.Categories) {
		return false
	}
	if len(in.Colors) > 0 && !anyOf(p.Colors, in.Colors) {
		return false
	}
	if len(in.Sizes) > 0 && !anyOf(p.Sizes, in.Sizes) {
		return false
	}
	return true
}

func anyOf(offered interface{ Contains(string) bool }, wanted []string) bool {
	for _, w := range wanted {
		if offered.Contains(w) {
			return true
		}
	}
	return false
}
