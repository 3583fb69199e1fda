package cartsync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/internal/cart"
)

// Remote is the shopper's server-side cart.
type Remote struct {
	ID    uuid.UUID   `json:"id"`
	Email string      `json:"userEmail"`
	Lines []cart.Line `json:"items"`
}

// RemoteStore reads and writes server-side carts keyed by email. Fetch
// returns nil, nil when the shopper has no cart yet.
type RemoteStore interface {
	Fetch(ctx context.Context, email string) (*Remote, error)
	Save(ctx context.Context, email string, lines []cart.Line) (*Remote, error)
}

// LocalStore persists the session cart on the shopper's side.
type LocalStore interface {
	Persist(c cart.Cart) error
}

// SyncMarker records that a session already merged into email's cart.
type SyncMarker struct {
	Email    string    `json:"email"`
	SyncedAt time.Time `json:"syncedAt"`
}

// StateStore keeps sync markers across requests. Load returns nil, nil for
// an unknown session.
type StateStore interface {
	Load(ctx context.Context, sessionID string) (*SyncMarker, error)
	Save(ctx context.Context, sessionID string, marker SyncMarker) error
	Clear(ctx context.Context, sessionID string) error
}

// Observer receives timing for every remote call.
type Observer interface {
	Observe(op string, duration time.Duration, err error)
}
