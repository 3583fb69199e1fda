package storefront

import (
	"net/http"

	"github.com/mobishop/mobishop-backend/api/responses"
	"github.com/mobishop/mobishop-backend/api/validators"
	"github.com/mobishop/mobishop-backend/internal/cartsync"
	shopsvc "github.com/mobishop/mobishop-backend/internal/storefront"
	"github.com/mobishop/mobishop-backend/internal/users"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"github.com/mobishop/mobishop-backend/pkg/logger"
)

// AuthRegister creates the account and logs the shopper in.
func AuthRegister(sessions *Sessions, svc shopsvc.Service, cookies cartsync.CookieOptions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload shopsvc.RegisterInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.Register(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		signIn(w, r, sessions, svc, cookies, logg, user, http.StatusCreated)
	}
}

func AuthLogin(sessions *Sessions, svc shopsvc.Service, cookies cartsync.CookieOptions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload shopsvc.LoginInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		signIn(w, r, sessions, svc, cookies, logg, user, http.StatusOK)
	}
}

// AuthLogout forgets the shopper. The cart cookie stays behind.
func AuthLogout(sessions *Sessions, svc shopsvc.Service, cookies cartsync.CookieOptions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessions.OpenLocal(w, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := session.Logout(r.Context()); err != nil {
			sessions.warn(r, "clear cart sync marker", err)
		}
		http.SetCookie(w, cartsync.ExpiredCookie(cartsync.UserCookieName, cookies))
		responses.WriteSuccess(w, AuthResponse{Cart: cartResponse(svc, session)})
	}
}

func signIn(w http.ResponseWriter, r *http.Request, sessions *Sessions, svc shopsvc.Service, cookies cartsync.CookieOptions, logg *logger.Logger, user *users.UserDTO, status int) {
	if user == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "empty user response"))
		return
	}
	value, err := cartsync.EncodeUser(user.Email)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode user cookie"))
		return
	}
	session, err := sessions.OpenLocal(w, r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	http.SetCookie(w, cartsync.NewCookie(cartsync.UserCookieName, value, cookies))

	ctx := r.Context()
	if err := session.Resume(ctx, user.Email); err != nil {
		sessions.warn(r, "cart sync marker unavailable", err)
	}
	sessions.report(r, session.Login(ctx, user.Email))
	responses.WriteSuccessStatus(w, status, AuthResponse{User: user, Cart: cartResponse(svc, session)})
}
