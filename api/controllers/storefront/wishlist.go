package storefront

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mobishop/mobishop-backend/api/middleware"
	"github.com/mobishop/mobishop-backend/api/responses"
	"github.com/mobishop/mobishop-backend/api/validators"
	shopsvc "github.com/mobishop/mobishop-backend/internal/storefront"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"github.com/mobishop/mobishop-backend/pkg/logger"
)

type toggleResponse struct {
	OK        bool      `json:"ok"`
	ProductID uuid.UUID `json:"productId"`
	Saved     bool      `json:"saved"`
}

// WishlistToggle saves or unsaves a product for the logged-in shopper.
// Data API failures are logged and reported as ok=false.
func WishlistToggle(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := middleware.UserEmailFromContext(r.Context())
		if email == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required"))
			return
		}
		var payload shopsvc.ToggleWishlistInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ToggleWishlist(r.Context(), email, payload)
		if err != nil {
			if logg != nil {
				logg.WarnErr(r.Context(), "wishlist toggle failed", err)
			}
			responses.WriteSuccess(w, toggleResponse{OK: false, ProductID: payload.ProductID})
			return
		}
		responses.WriteSuccess(w, toggleResponse{OK: true, ProductID: result.ProductID, Saved: result.Saved})
	}
}
