package enums

import "fmt"

// ProductSort selects the ordering of product listings.
type ProductSort string

const (
	ProductSortNewest      ProductSort = "newest"
	ProductSortPriceAsc    ProductSort = "price_asc"
	ProductSortPriceDesc   ProductSort = "price_desc"
	ProductSortBestSelling ProductSort = "best_selling"
)

var validProductSorts = []ProductSort{
	ProductSortNewest,
	ProductSortPriceAsc,
	ProductSortPriceDesc,
	ProductSortBestSelling,
}

// String implements fmt.Stringer.
func (s ProductSort) String() string {
	return string(s)
}

// ParseProductSort converts raw input into a ProductSort; empty means newest.
func ParseProductSort(value string) (ProductSort, error) {
	if value == "" {
		return ProductSortNewest, nil
	}
	for _, candidate := range validProductSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product sort %q", value)
}
