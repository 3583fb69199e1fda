package storefront

import (
	"net/http"

	"github.com/mobishop/mobishop-backend/api/responses"
	"github.com/mobishop/mobishop-backend/api/validators"
	"github.com/mobishop/mobishop-backend/internal/cartsync"
	shopsvc "github.com/mobishop/mobishop-backend/internal/storefront"
	"github.com/mobishop/mobishop-backend/pkg/logger"
)

func CartGet(sessions *Sessions, svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessions.Open(w, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartResponse(svc, session))
	}
}

// CartAddItem adds a product by id. Title, price and image come from the
// catalog, never from the request body.
func CartAddItem(sessions *Sessions, svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		snapshot, err := svc.Snapshot(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		mutateCart(w, r, sessions, svc, logg, func(session *cartsync.Session) cartsync.SyncResult {
			return session.Add(r.Context(), snapshot, payload.Qty, options(payload.Color, payload.Size))
		})
	}
}

// CartUpdateItem sets a line's quantity; anything below one becomes one.
func CartUpdateItem(sessions *Sessions, svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		qty := payload.Qty
		if qty < 1 {
			qty = 1
		}
		mutateCart(w, r, sessions, svc, logg, func(session *cartsync.Session) cartsync.SyncResult {
			return session.UpdateQty(r.Context(), payload.ProductID, qty, options(payload.Color, payload.Size))
		})
	}
}

func CartRemoveItem(sessions *Sessions, svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload removeItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		mutateCart(w, r, sessions, svc, logg, func(session *cartsync.Session) cartsync.SyncResult {
			return session.Remove(r.Context(), payload.ProductID, options(payload.Color, payload.Size))
		})
	}
}

func CartClear(sessions *Sessions, svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mutateCart(w, r, sessions, svc, logg, func(session *cartsync.Session) cartsync.SyncResult {
			return session.Clear(r.Context())
		})
	}
}

// mutateCart applies op to the request's session. Write-through failures
// are logged and the local result is returned regardless.
func mutateCart(w http.ResponseWriter, r *http.Request, sessions *Sessions, svc shopsvc.Service, logg *logger.Logger, op func(*cartsync.Session) cartsync.SyncResult) {
	session, err := sessions.Open(w, r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	sessions.report(r, op(session))
	responses.WriteSuccess(w, cartResponse(svc, session))
}
