package cartsync

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/internal/cart"
)

// SessionParams groups the collaborators of a Session.
type SessionParams struct {
	ID       string
	Remote   RemoteStore
	Local    LocalStore
	Markers  StateStore
	Observer Observer
	Now      func() time.Time
}

// Session owns one browser session's cart. It is built per request from
// the shopper's cookies and is not safe for concurrent use.
type Session struct {
	id       string
	cart     cart.Cart
	state    State
	email    string
	remote   RemoteStore
	local    LocalStore
	markers  StateStore
	observer Observer
	now      func() time.Time
}

func NewSession(params SessionParams) (*Session, error) {
	if strings.TrimSpace(params.ID) == "" {
		return nil, errors.New("session id required")
	}
	if params.Remote == nil {
		return nil, errors.New("remote cart store required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		id:       params.ID,
		remote:   params.Remote,
		local:    params.Local,
		markers:  params.Markers,
		observer: params.Observer,
		now:      now,
	}, nil
}

func (s *Session) ID() string         { return s.id }
func (s *Session) State() State       { return s.state }
func (s *Session) Email() string      { return s.email }
func (s *Session) Cart() cart.Cart    { return cart.New(s.cart.Lines()) }
func (s *Session) Lines() []cart.Line { return s.cart.Lines() }

// Hydrate replaces the in-memory cart with the encoded local copy.
// Unreadable input leaves an empty cart.
func (s *Session) Hydrate(raw string) {
	s.cart = DecodeCart(raw)
}

// Resume marks the session synced when the marker store shows that this
// session already merged into email's cart.
func (s *Session) Resume(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" || s.markers == nil {
		return nil
	}
	marker, err := s.markers.Load(ctx, s.id)
	if err != nil {
		return &SyncError{Op: OpMarker, Email: email, Err: err}
	}
	if marker != nil && marker.Email == email {
		s.state = Synced
		s.email = email
	}
	return nil
}

func (s *Session) Add(ctx context.Context, product cart.ProductSnapshot, qty int, opts cart.Options) SyncResult {
	return s.mutate(ctx, func(c *cart.Cart) { c.Add(product, qty, opts) })
}

func (s *Session) Remove(ctx context.Context, productID uuid.UUID, opts cart.Options) SyncResult {
	return s.mutate(ctx, func(c *cart.Cart) { c.Remove(productID, opts) })
}

func (s *Session) UpdateQty(ctx context.Context, productID uuid.UUID, qty int, opts cart.Options) SyncResult {
	return s.mutate(ctx, func(c *cart.Cart) { c.UpdateQty(productID, qty, opts) })
}

func (s *Session) Clear(ctx context.Context) SyncResult {
	return s.mutate(ctx, func(c *cart.Cart) { c.Clear() })
}

// Login merges the local cart into email's server cart once per session.
// Server lines win on key collisions. On failure the local cart is left
// untouched and the session drops back to Anonymous so a later login can
// retry.
func (s *Session) Login(ctx context.Context, email string) SyncResult {
	email = normalizeEmail(email)
	if email == "" {
		return s.result(&SyncError{Op: OpFetch, Err: errors.New("email required")})
	}
	if s.state == Synced && s.email == email {
		return s.result(nil)
	}

	s.state = Syncing
	s.email = email

	remote, err := s.fetch(ctx, email)
	if err != nil {
		s.reset()
		return s.result(&SyncError{Op: OpFetch, Email: email, Err: err})
	}
	var server cart.Cart
	if remote != nil {
		server = cart.New(remote.Lines)
	}
	merged := cart.Merge(server, s.cart)

	if _, err := s.save(ctx, email, merged); err != nil {
		s.reset()
		return s.result(&SyncError{Op: OpSave, Email: email, Err: err})
	}

	s.cart = merged
	local := s.persistLocal()
	s.state = Synced

	if s.markers != nil {
		marker := SyncMarker{Email: email, SyncedAt: s.now().UTC()}
		if err := s.markers.Save(ctx, s.id, marker); err != nil {
			return s.withLocal(s.result(&SyncError{Op: OpMarker, Email: email, Err: err}), local)
		}
	}
	return s.withLocal(s.result(nil), local)
}

// Logout stops write-through. The local cart is kept.
func (s *Session) Logout(ctx context.Context) error {
	s.reset()
	if s.markers == nil {
		return nil
	}
	if err := s.markers.Clear(ctx, s.id); err != nil {
		return &SyncError{Op: OpMarker, Err: err}
	}
	return nil
}

func (s *Session) mutate(ctx context.Context, apply func(*cart.Cart)) SyncResult {
	apply(&s.cart)
	local := s.persistLocal()
	if s.state != Synced {
		return s.withLocal(s.result(nil), local)
	}
	if _, err := s.save(ctx, s.email, s.cart); err != nil {
		return s.withLocal(s.result(&SyncError{Op: OpSave, Email: s.email, Err: err}), local)
	}
	return s.withLocal(s.result(nil), local)
}

func (s *Session) fetch(ctx context.Context, email string) (*Remote, error) {
	start := time.Now()
	remote, err := s.remote.Fetch(ctx, email)
	s.observe(OpFetch, start, err)
	return remote, err
}

func (s *Session) save(ctx context.Context, email string, c cart.Cart) (*Remote, error) {
	start := time.Now()
	remote, err := s.remote.Save(ctx, email, c.Lines())
	s.observe(OpSave, start, err)
	return remote, err
}

func (s *Session) observe(op string, start time.Time, err error) {
	if s.observer != nil {
		s.observer.Observe(op, time.Since(start), err)
	}
}

// persistLocal failures are reported, never fatal; the in-memory cart stays
// authoritative for the rest of the request.
func (s *Session) persistLocal() error {
	if s.local == nil {
		return nil
	}
	return s.local.Persist(s.cart)
}

func (s *Session) reset() {
	s.state = Anonymous
	s.email = ""
}

func (s *Session) result(err *SyncError) SyncResult {
	return SyncResult{Cart: s.Cart(), Err: err}
}

func (s *Session) withLocal(r SyncResult, err error) SyncResult {
	r.LocalErr = err
	return r
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
