package cartsync

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mobishop/mobishop-backend/internal/cart"
)

const (
	CartCookieName    = "mobishop_cart"
	SessionCookieName = "mobishop_sid"
	UserCookieName    = "mobishop_user"
)

// MaxCookieSize is the largest name plus value browsers reliably store.
const MaxCookieSize = 4096

// ErrCookieTooLarge is returned when an encoded cart would be dropped by the browser.
var ErrCookieTooLarge = errors.New("cart cookie too large")

type userCookie struct {
	Email string `json:"email"`
}

// CookieOptions controls the attributes of cookies written by the storefront.
type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

// EncodeCart renders c as URL-escaped JSON suitable for a cookie value.
func EncodeCart(c cart.Cart) (string, error) {
	body, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(string(body)), nil
}

// DecodeCart parses a cookie value. Anything unreadable decodes to an empty cart.
func DecodeCart(raw string) cart.Cart {
	if raw == "" {
		return cart.Cart{}
	}
	body, err := url.QueryUnescape(raw)
	if err != nil {
		return cart.Cart{}
	}
	var c cart.Cart
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		return cart.Cart{}
	}
	return c
}

// EncodeUser renders the logged-in shopper cookie value.
func EncodeUser(email string) (string, error) {
	body, err := json.Marshal(userCookie{Email: normalizeEmail(email)})
	if err != nil {
		return "", err
	}
	return url.QueryEscape(string(body)), nil
}

// DecodeUser returns the shopper email carried by a user cookie, or "".
func DecodeUser(raw string) string {
	body, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	var u userCookie
	if err := json.Unmarshal([]byte(body), &u); err != nil {
		return ""
	}
	return normalizeEmail(u.Email)
}

// ReadCart returns the cart carried by the request's cart cookie.
func ReadCart(r *http.Request) cart.Cart {
	cookie, err := r.Cookie(CartCookieName)
	if err != nil {
		return cart.Cart{}
	}
	return DecodeCart(cookie.Value)
}

// CookieStore writes the cart cookie on every Persist. A cart too large for
// a cookie is not written; the client keeps its previous cookie.
type CookieStore struct {
	w    http.ResponseWriter
	opts CookieOptions
}

func NewCookieStore(w http.ResponseWriter, opts CookieOptions) *CookieStore {
	return &CookieStore{w: w, opts: opts}
}

func (s *CookieStore) Persist(c cart.Cart) error {
	value, err := EncodeCart(c)
	if err != nil {
		return err
	}
	if size := len(CartCookieName) + len(value); size > MaxCookieSize {
		return fmt.Errorf("%w: %d bytes over %d lines", ErrCookieTooLarge, size, len(c.Lines()))
	}
	http.SetCookie(s.w, NewCookie(CartCookieName, value, s.opts))
	return nil
}

// NewCookie builds a root-scoped, lax cookie.
func NewCookie(name, value string, opts CookieOptions) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if opts.MaxAge > 0 {
		cookie.MaxAge = int(opts.MaxAge.Seconds())
		cookie.Expires = time.Now().Add(opts.MaxAge)
	}
	return cookie
}

// ExpiredCookie deletes name on the client.
func ExpiredCookie(name string, opts CookieOptions) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	}
}
