package dataapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/mobishop/mobishop-backend/internal/orders"
	product "github.com/mobishop/mobishop-backend/internal/products"
	"github.com/mobishop/mobishop-backend/internal/users"
	"github.com/mobishop/mobishop-backend/internal/wishlist"
)

func (c *Client) CreateUser(ctx context.Context, input users.CreateUserInput) (*users.UserDTO, error) {
	return call[*users.UserDTO](ctx, c, http.MethodPost, "/users", nil, input)
}

func (c *Client) Authenticate(ctx context.Context, input users.AuthenticateInput) (*users.UserDTO, error) {
	return call[*users.UserDTO](ctx, c, http.MethodPost, "/users/authenticate", nil, input)
}

func (c *Client) CreateOrder(ctx context.Context, input orders.CreateOrderInput) (*orders.OrderDTO, error) {
	return call[*orders.OrderDTO](ctx, c, http.MethodPost, "/orders", nil, input)
}

func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*product.ProductDTO, error) {
	return call[*product.ProductDTO](ctx, c, http.MethodGet, "/products/"+id.String(), nil, nil)
}

// BumpSales adds delta to a product's sales counter.
func (c *Client) BumpSales(ctx context.Context, id uuid.UUID, delta int) error {
	_, err := call[*product.ProductDTO](ctx, c, http.MethodPatch, "/products/"+id.String(), nil, product.UpdateProductInput{SalesDelta: &delta})
	return err
}

func (c *Client) ListWishlist(ctx context.Context, email string) ([]wishlist.ItemDTO, error) {
	return call[[]wishlist.ItemDTO](ctx, c, http.MethodGet, "/wishlist", url.Values{"userEmail": {email}}, nil)
}

func (c *Client) AddWishlist(ctx context.Context, input wishlist.CreateItemInput) (*wishlist.ItemDTO, error) {
	return call[*wishlist.ItemDTO](ctx, c, http.MethodPost, "/wishlist", nil, input)
}

func (c *Client) RemoveWishlist(ctx context.Context, id uuid.UUID) error {
	_, err := call[any](ctx, c, http.MethodDelete, "/wishlist/"+id.String(), nil, nil)
	return err
}

// Ping checks that the data API answers its liveness probe.
func (c *Client) Ping(ctx context.Context) error {
	_, err := call[any](ctx, c, http.MethodGet, "/health/live", nil, nil)
	return err
}
