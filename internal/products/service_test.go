package product

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/internal/catalog"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	"github.com/mobishop/mobishop-backend/pkg/enums"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"github.com/mobishop/mobishop-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}))

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func seedProduct(t *testing.T, conn *gorm.DB, title, price string, sales int, createdAt time.Time, paths ...catalog.Path) models.Product {
	t.Helper()
	p := models.Product{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		Colors:     []string{"siyah"},
		Sizes:      []string{"M"},
		Categories: paths,
		Sales:      sales,
		CreatedAt:  createdAt,
	}
	require.NoError(t, conn.Create(&p).Error)
	return p
}

func TestCreateProductParsesLegacyCategory(t *testing.T) {
	svc, _ := setupProductService(t)

	dto, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Title:    "Keten Elbise",
		Price:    decimal.RequireFromString("499.90"),
		Images:   []string{"/products/a.jpg", "", "/products/a.jpg"},
		Category: "Kadın Giyim Elbise",
	})
	require.NoError(t, err)
	assert.Equal(t, []catalog.Path{{Gender: "kadın", Group: "giyim", Subcategory: "elbise"}}, dto.Categories)
	assert.Equal(t, "kadın giyim elbise", dto.Category)
	assert.Equal(t, []string{"/products/a.jpg"}, dto.Images)
	assert.Equal(t, "/products/a.jpg", dto.Image)

	loaded, err := svc.GetProduct(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Price.Equal(decimal.RequireFromString("499.90")))
	assert.Equal(t, dto.Categories, loaded.Categories)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := setupProductService(t)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{Title: " "})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{Title: "x", Category: "kadın giyim"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{Title: "x", Price: decimal.NewFromInt(-1)})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{
		Title:      "Tayt",
		Price:      decimal.NewFromInt(250),
		Categories: []catalog.Path{{Gender: "kadın", Group: "spor giyim", Subcategory: "tayt"}},
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "multi-word labels must be rejected, got %v", err)
}

func TestGetProductNotFound(t *testing.T) {
	svc, _ := setupProductService(t)

	_, err := svc.GetProduct(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, NotFoundMessage, typed.Message())
}

func TestUpdateProductSalesDelta(t *testing.T) {
	svc, conn := setupProductService(t)
	p := seedProduct(t, conn, "Gömlek", "100", 3, time.Now())

	delta := 2
	dto, err := svc.UpdateProduct(context.Background(), p.ID, UpdateProductInput{SalesDelta: &delta})
	require.NoError(t, err)
	assert.Equal(t, 5, dto.Sales)

	paths := []catalog.Path{{Gender: "erkek", Group: "giyim", Subcategory: "gömlek"}}
	dto, err = svc.UpdateProduct(context.Background(), p.ID, UpdateProductInput{Categories: &paths})
	require.NoError(t, err)
	assert.Equal(t, paths, dto.Categories)

	_, err = svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductInput{SalesDelta: &delta})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestListProductsFiltersSortsAndPages(t *testing.T) {
	svc, conn := setupProductService(t)
	now := time.Now()
	dress := catalog.Path{Gender: "kadın", Group: "giyim", Subcategory: "elbise"}
	boots := catalog.Path{Gender: "kadın", Group: "ayakkabı", Subcategory: "bot"}
	shirt := catalog.Path{Gender: "erkek", Group: "giyim", Subcategory: "gömlek"}

	seedProduct(t, conn, "Elbise A", "300", 1, now.Add(-3*time.Hour), dress)
	seedProduct(t, conn, "Elbise B", "150", 9, now.Add(-2*time.Hour), dress)
	seedProduct(t, conn, "Bot", "800", 4, now.Add(-1*time.Hour), boots)
	seedProduct(t, conn, "Gömlek", "200", 2, now, shirt)

	res, err := svc.ListProducts(context.Background(), ListProductsInput{Categories: []string{"kadın"}})
	require.NoError(t, err)
	require.Equal(t, 3, res.Total)
	assert.Equal(t, "Bot", res.Items[0].Title, "newest first by default")

	res, err = svc.ListProducts(context.Background(), ListProductsInput{Categories: []string{"kadın giyim"}, Sort: enums.ProductSortPriceAsc})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Elbise B", res.Items[0].Title)

	min := decimal.RequireFromString("180")
	max := decimal.RequireFromString("500")
	res, err = svc.ListProducts(context.Background(), ListProductsInput{MinPrice: &min, MaxPrice: &max, Sort: enums.ProductSortPriceDesc})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Elbise A", res.Items[0].Title)
	assert.Equal(t, "Gömlek", res.Items[1].Title)

	res, err = svc.ListProducts(context.Background(), ListProductsInput{
		Sort:       enums.ProductSortBestSelling,
		Pagination: pagination.Params{Page: 2, Limit: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Elbise A", res.Items[0].Title)

	res, err = svc.ListProducts(context.Background(), ListProductsInput{Sizes: []string{"xl"}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.NotNil(t, res.Items)

	_, err = svc.ListProducts(context.Background(), ListProductsInput{MinPrice: &max, MaxPrice: &min})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDeleteProduct(t *testing.T) {
	svc, conn := setupProductService(t)
	p := seedProduct(t, conn, "Şapka", "50", 0, time.Now())

	require.NoError(t, svc.DeleteProduct(context.Background(), p.ID))
	err := svc.DeleteProduct(context.Background(), p.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
