package storefront

import (
	"net/http"

	"github.com/mobishop/mobishop-backend/api/middleware"
	"github.com/mobishop/mobishop-backend/api/responses"
	"github.com/mobishop/mobishop-backend/api/validators"
	shopsvc "github.com/mobishop/mobishop-backend/internal/storefront"
	"github.com/mobishop/mobishop-backend/pkg/logger"
)

// Checkout places the order for the session cart and empties it.
func Checkout(sessions *Sessions, svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload shopsvc.CheckoutInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session, err := sessions.Open(w, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Checkout(r.Context(), session, middleware.UserEmailFromContext(r.Context()), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
