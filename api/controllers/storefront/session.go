package storefront

import (
	"net/http"

	"github.com/mobishop/mobishop-backend/api/middleware"
	"github.com/mobishop/mobishop-backend/internal/cartsync"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"github.com/mobishop/mobishop-backend/pkg/logger"
)

// Sessions builds the per-request cart session from the shopper's cookies.
type Sessions struct {
	remote   cartsync.RemoteStore
	markers  cartsync.StateStore
	observer cartsync.Observer
	cookies  cartsync.CookieOptions
	logg     *logger.Logger
}

type SessionsParams struct {
	Remote   cartsync.RemoteStore
	Markers  cartsync.StateStore
	Observer cartsync.Observer
	Cookies  cartsync.CookieOptions
	Logger   *logger.Logger
}

func NewSessions(params SessionsParams) (*Sessions, error) {
	if params.Remote == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "remote cart store required")
	}
	return &Sessions{
		remote:   params.Remote,
		markers:  params.Markers,
		observer: params.Observer,
		cookies:  params.Cookies,
		logg:     params.Logger,
	}, nil
}

// Open hydrates the session cart from the cart cookie. For a logged-in
// shopper it resumes the sync marker and, when this session has not merged
// yet, runs the login merge. Sync failures leave the session anonymous.
func (s *Sessions) Open(w http.ResponseWriter, r *http.Request) (*cartsync.Session, error) {
	session, err := s.OpenLocal(w, r)
	if err != nil {
		return nil, err
	}
	ctx := r.Context()
	email := middleware.UserEmailFromContext(ctx)
	if email == "" {
		return session, nil
	}
	if err := session.Resume(ctx, email); err != nil {
		s.warn(r, "cart sync marker unavailable", err)
	}
	if session.State() != cartsync.Synced {
		s.report(r, session.Login(ctx, email))
	}
	return session, nil
}

// OpenLocal builds an anonymous session holding only the cookie cart.
func (s *Sessions) OpenLocal(w http.ResponseWriter, r *http.Request) (*cartsync.Session, error) {
	ctx := r.Context()
	sid := middleware.SessionIDFromContext(ctx)
	if sid == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session id missing")
	}
	session, err := cartsync.NewSession(cartsync.SessionParams{
		ID:       sid,
		Remote:   s.remote,
		Local:    cartsync.NewCookieStore(w, s.cookies),
		Markers:  s.markers,
		Observer: s.observer,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open cart session")
	}
	if c, err := r.Cookie(cartsync.CartCookieName); err == nil {
		session.Hydrate(c.Value)
	}
	return session, nil
}

func (s *Sessions) report(r *http.Request, result cartsync.SyncResult) {
	if result.LocalErr != nil {
		s.warn(r, "cart cookie not written", result.LocalErr)
	}
	if result.OK() {
		return
	}
	s.warn(r, "cart sync failed", result.Err)
}

func (s *Sessions) warn(r *http.Request, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.WarnErr(r.Context(), msg, err)
}
