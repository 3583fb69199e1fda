package carts

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/internal/cart"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartService(t *testing.T) Service {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.CartRecord{}))

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func line(qty int) cart.Line {
	return cart.Line{
		Product: cart.ProductSnapshot{ID: uuid.New(), Title: "Kazak", Price: decimal.RequireFromString("250")},
		Qty:     qty,
	}
}

func TestCartLifecycle(t *testing.T) {
	svc := setupCartService(t)
	ctx := context.Background()

	list, err := svc.ListByEmail(ctx, "ali@example.com")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	created, err := svc.Create(ctx, CreateCartInput{UserEmail: "Ali@Example.com", Items: []cart.Line{line(1)}})
	require.NoError(t, err)
	assert.Equal(t, "ali@example.com", created.UserEmail)

	_, err = svc.Create(ctx, CreateCartInput{UserEmail: "ali@example.com"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	updated, err := svc.Update(ctx, created.ID, UpdateCartInput{Items: []cart.Line{line(2), line(3)}})
	require.NoError(t, err)
	assert.Len(t, updated.Items, 2)

	list, err = svc.ListByEmail(ctx, "ali@example.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].Items[1].Qty)
	assert.True(t, list[0].Items[0].Product.Price.Equal(decimal.NewFromInt(250)))
}

func TestCartUpdateMissing(t *testing.T) {
	svc := setupCartService(t)

	_, err := svc.Update(context.Background(), uuid.New(), UpdateCartInput{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.ListByEmail(context.Background(), " ")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
