package storefront

import (
	"github.com/mobishop/mobishop-backend/internal/cart"
	"github.com/mobishop/mobishop-backend/internal/cartsync"
	shopsvc "github.com/mobishop/mobishop-backend/internal/storefront"
	"github.com/mobishop/mobishop-backend/internal/users"
)

// CartResponse is the storefront's view of the session cart.
type CartResponse struct {
	Items []cart.Line    `json:"items"`
	Quote shopsvc.Quote  `json:"quote"`
	State cartsync.State `json:"state"`
	Email string         `json:"email,omitempty"`
}

type AuthResponse struct {
	User *users.UserDTO `json:"user"`
	Cart CartResponse   `json:"cart"`
}

func cartResponse(svc shopsvc.Service, session *cartsync.Session) CartResponse {
	c := session.Cart()
	items := c.Lines()
	if items == nil {
		items = []cart.Line{}
	}
	return CartResponse{
		Items: items,
		Quote: svc.Quote(c),
		State: session.State(),
		Email: session.Email(),
	}
}
