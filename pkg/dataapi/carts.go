package dataapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mobishop/mobishop-backend/internal/cart"
	"github.com/mobishop/mobishop-backend/internal/carts"
	"github.com/mobishop/mobishop-backend/internal/cartsync"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
)

type cartStore struct {
	c *Client
}

// Carts returns the server cart store used by cart sessions.
func (c *Client) Carts() cartsync.RemoteStore {
	return cartStore{c: c}
}

func (s cartStore) Fetch(ctx context.Context, email string) (*cartsync.Remote, error) {
	list, err := call[[]carts.CartDTO](ctx, s.c, http.MethodGet, "/carts", url.Values{"userEmail": {email}}, nil)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return toRemote(list[0]), nil
}

// Save patches the shopper's cart, creating it first when missing.
func (s cartStore) Save(ctx context.Context, email string, lines []cart.Line) (*cartsync.Remote, error) {
	if lines == nil {
		lines = []cart.Line{}
	}
	existing, err := s.Fetch(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		created, err := call[carts.CartDTO](ctx, s.c, http.MethodPost, "/carts", nil, carts.CreateCartInput{UserEmail: email, Items: lines})
		if err == nil {
			return toRemote(created), nil
		}
		if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
			return nil, err
		}
		// Another session created it between the read and the write.
		if existing, err = s.Fetch(ctx, email); err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart vanished after conflict")
		}
	}
	updated, err := call[carts.CartDTO](ctx, s.c, http.MethodPatch, "/carts/"+existing.ID.String(), nil, carts.UpdateCartInput{Items: lines})
	if err != nil {
		return nil, err
	}
	return toRemote(updated), nil
}

func toRemote(dto carts.CartDTO) *cartsync.Remote {
	return &cartsync.Remote{ID: dto.ID, Email: dto.UserEmail, Lines: dto.Items}
}
