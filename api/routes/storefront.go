package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mobishop/mobishop-backend/api/controllers"
	storefrontcontrollers "github.com/mobishop/mobishop-backend/api/controllers/storefront"
	"github.com/mobishop/mobishop-backend/api/middleware"
	"github.com/mobishop/mobishop-backend/internal/cartsync"
	shopsvc "github.com/mobishop/mobishop-backend/internal/storefront"
	"github.com/mobishop/mobishop-backend/pkg/config"
	"github.com/mobishop/mobishop-backend/pkg/logger"
)

// NewStorefrontRouter serves the shopper-facing cart, account and checkout
// routes. Every route except health and metrics runs behind the Shopper
// middleware so a session id is always available.
func NewStorefrontRouter(
	cfg *config.Config,
	logg *logger.Logger,
	pingers map[string]controllers.Pinger,
	limiter RateLimiter,
	httpMetrics httpObserver,
	gatherer prometheus.Gatherer,
	sessions *storefrontcontrollers.Sessions,
	svc shopsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	cookies := cartsync.CookieOptions{Secure: cfg.Storefront.CookieSecure, MaxAge: cfg.Storefront.CookieMaxAge}
	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Shopper(cookies, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", storefrontcontrollers.CartGet(sessions, svc, logg))
			r.Delete("/", storefrontcontrollers.CartClear(sessions, svc, logg))
			r.Post("/items", storefrontcontrollers.CartAddItem(sessions, svc, logg))
			r.Patch("/items", storefrontcontrollers.CartUpdateItem(sessions, svc, logg))
			r.Delete("/items", storefrontcontrollers.CartRemoveItem(sessions, svc, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, limiter, logg)).Post("/register", storefrontcontrollers.AuthRegister(sessions, svc, cookies, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", storefrontcontrollers.AuthLogin(sessions, svc, cookies, logg))
			r.Post("/logout", storefrontcontrollers.AuthLogout(sessions, svc, cookies, logg))
		})

		r.Post("/wishlist/toggle", storefrontcontrollers.WishlistToggle(svc, logg))
		r.Post("/checkout", storefrontcontrollers.Checkout(sessions, svc, logg))
	})

	return r
}
