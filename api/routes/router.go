package routes

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mobishop/mobishop-backend/api/controllers"
	"github.com/mobishop/mobishop-backend/api/middleware"
	"github.com/mobishop/mobishop-backend/internal/carts"
	"github.com/mobishop/mobishop-backend/internal/catalog"
	"github.com/mobishop/mobishop-backend/internal/media"
	"github.com/mobishop/mobishop-backend/internal/orders"
	"github.com/mobishop/mobishop-backend/internal/payments"
	product "github.com/mobishop/mobishop-backend/internal/products"
	"github.com/mobishop/mobishop-backend/internal/reviews"
	"github.com/mobishop/mobishop-backend/internal/users"
	"github.com/mobishop/mobishop-backend/internal/wishlist"
	"github.com/mobishop/mobishop-backend/pkg/config"
	"github.com/mobishop/mobishop-backend/pkg/logger"
)

// RateLimiter is the counter store behind the auth throttles.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type httpObserver interface {
	Observe(route, method string, status int, duration time.Duration)
}

// APIServices groups everything the data API router serves. Payments is
// optional; without it POST /payments is not mounted.
type APIServices struct {
	Products product.Service
	Orders   orders.Service
	Reviews  reviews.Service
	Users    users.Service
	Wishlist wishlist.Service
	Carts    carts.Service
	Catalog  catalog.Service
	Media    media.Service
	Payments payments.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	pingers map[string]controllers.Pinger,
	limiter RateLimiter,
	httpMetrics httpObserver,
	svc APIServices,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"api_login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(svc.Products, logg))
		r.Post("/", controllers.ProductCreate(svc.Products, logg))
		r.Get("/{productId}", controllers.ProductGet(svc.Products, logg))
		r.Patch("/{productId}", controllers.ProductUpdate(svc.Products, logg))
		r.Delete("/{productId}", controllers.ProductDelete(svc.Products, logg))
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", controllers.OrderList(svc.Orders, logg))
		r.Post("/", controllers.OrderCreate(svc.Orders, logg))
		r.Get("/{orderId}", controllers.OrderGet(svc.Orders, logg))
		r.Patch("/{orderId}", controllers.OrderUpdateStatus(svc.Orders, logg))
		r.Post("/{orderId}/cancel", controllers.OrderCancel(svc.Orders, logg))
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", controllers.ReviewList(svc.Reviews, logg))
		r.Post("/", controllers.ReviewCreate(svc.Reviews, logg))
		r.Get("/summary", controllers.ReviewSummary(svc.Reviews, logg))
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", controllers.UserList(svc.Users, logg))
		r.Post("/", controllers.UserCreate(svc.Users, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/authenticate", controllers.UserAuthenticate(svc.Users, logg))
		r.Post("/update-email", controllers.UserUpdateEmail(svc.Users, logg))
		r.Get("/{userId}", controllers.UserGet(svc.Users, logg))
		r.Patch("/{userId}", controllers.UserUpdate(svc.Users, logg))
	})

	r.Route("/wishlist", func(r chi.Router) {
		r.Get("/", controllers.WishlistList(svc.Wishlist, logg))
		r.Post("/", controllers.WishlistAdd(svc.Wishlist, logg))
		r.Delete("/{itemId}", controllers.WishlistRemove(svc.Wishlist, logg))
	})

	r.Route("/carts", func(r chi.Router) {
		r.Get("/", controllers.CartList(svc.Carts, logg))
		r.Post("/", controllers.CartCreate(svc.Carts, logg))
		r.Patch("/{cartId}", controllers.CartReplace(svc.Carts, logg))
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", controllers.CatalogGet(svc.Catalog, logg))
		r.Post("/", controllers.CatalogInsert(svc.Catalog, logg))
		r.Delete("/", controllers.CatalogDelete(svc.Catalog, logg))
		r.Post("/colors", controllers.CatalogAddColor(svc.Catalog, logg))
		r.Delete("/colors", controllers.CatalogRemoveColor(svc.Catalog, logg))
		r.Post("/sizes", controllers.CatalogAddSize(svc.Catalog, logg))
		r.Delete("/sizes", controllers.CatalogRemoveSize(svc.Catalog, logg))
	})

	if svc.Media != nil {
		maxBytes := int64(cfg.Media.MaxUploadMB) << 20
		r.Post("/upload", controllers.MediaUpload(svc.Media, maxBytes, logg))
		if base := strings.TrimRight(cfg.Media.PublicBase, "/"); strings.HasPrefix(base, "/") {
			r.Handle(base+"/*", http.StripPrefix(base+"/", http.FileServer(http.Dir(cfg.Media.Dir))))
		}
	}
	if svc.Payments != nil {
		r.Post("/payments", controllers.PaymentIntentCreate(svc.Payments, logg))
	}

	r.Get("/admin/stats", controllers.AdminStats(svc.Orders, logg))

	return r
}
