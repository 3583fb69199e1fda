package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mobishop/mobishop-backend/internal/cartsync"
	"github.com/mobishop/mobishop-backend/pkg/logger"
)

// Shopper makes sure every storefront request carries a session id cookie
// and exposes the logged-in shopper's email, if any, on the context.
func Shopper(opts cartsync.CookieOptions, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if c, err := r.Cookie(cartsync.SessionCookieName); err == nil {
				if parsed, perr := uuid.Parse(c.Value); perr == nil {
					sid = parsed.String()
				}
			}
			if sid == "" {
				sid = uuid.NewString()
				http.SetCookie(w, cartsync.NewCookie(cartsync.SessionCookieName, sid, opts))
			}

			email := ""
			if c, err := r.Cookie(cartsync.UserCookieName); err == nil {
				email = cartsync.DecodeUser(c.Value)
			}

			ctx := WithSessionID(r.Context(), sid)
			ctx = WithUserEmail(ctx, email)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sid)
				if email != "" {
					ctx = logg.WithUserEmail(ctx, email)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
