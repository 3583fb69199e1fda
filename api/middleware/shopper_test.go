package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/mobishop/mobishop-backend/internal/cartsync"
)

func TestShopperIssuesSessionCookie(t *testing.T) {
	var seen string
	handler := Shopper(cartsync.CookieOptions{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected generated session id, got %q", seen)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != cartsync.SessionCookieName || cookies[0].Value != seen {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}
}

func TestShopperReusesSessionAndReadsUser(t *testing.T) {
	sid := uuid.NewString()
	user, _ := cartsync.EncodeUser("Ali@Example.com")

	var gotSID, gotEmail string
	handler := Shopper(cartsync.CookieOptions{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSID = SessionIDFromContext(r.Context())
		gotEmail = UserEmailFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: cartsync.SessionCookieName, Value: sid})
	req.AddCookie(&http.Cookie{Name: cartsync.UserCookieName, Value: user})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if gotSID != sid || gotEmail != "ali@example.com" {
		t.Fatalf("unexpected context sid=%q email=%q", gotSID, gotEmail)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("existing session must not be reissued")
	}
}
