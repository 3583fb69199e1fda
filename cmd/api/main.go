package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mobishop/mobishop-backend/api"
	"github.com/mobishop/mobishop-backend/api/controllers"
	"github.com/mobishop/mobishop-backend/api/routes"
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
	"github.com/mobishop/mobishop-backend/pkg/db"
	"github.com/mobishop/mobishop-backend/pkg/logger"
	"github.com/mobishop/mobishop-backend/pkg/metrics"
	"github.com/mobishop/mobishop-backend/pkg/migrate"
	"github.com/mobishop/mobishop-backend/pkg/redis"
	"github.com/mobishop/mobishop-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	requireResource(ctx, logg, "migrations", migrate.MaybeRunDev(ctx, cfg, logg, dbClient))

	pingers := map[string]controllers.Pinger{"db": dbClient}
	var limiter routes.RateLimiter
	var redisClient *redis.Client
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		requireResource(ctx, logg, "redis", err)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		pingers["redis"] = redisClient
		limiter = redisClient
	} else {
		logg.Warn(ctx, "redis not configured; catalog cache and auth throttling disabled")
	}

	conn := dbClient.DB()
	productRepo := product.NewRepository(conn)
	ordersRepo := orders.NewRepository(conn)
	reviewsRepo := reviews.NewRepository(conn)
	usersRepo := users.NewRepository(conn)
	wishlistRepo := wishlist.NewRepository(conn)
	cartsRepo := carts.NewRepository(conn)

	productService, err := product.NewService(productRepo)
	requireResource(ctx, logg, "product service", err)

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:     ordersRepo,
		Tx:       dbClient,
		Products: productRepo,
		Users:    usersRepo,
	})
	requireResource(ctx, logg, "orders service", err)

	reviewsService, err := reviews.NewService(reviewsRepo)
	requireResource(ctx, logg, "reviews service", err)

	usersService, err := users.NewService(users.ServiceParams{
		Repo:     usersRepo,
		Password: cfg.Password,
		Collections: []users.OwnedCollection{
			{Name: "orders", Rewriter: ordersRepo},
			{Name: "reviews", Rewriter: reviewsRepo},
			{Name: "wishlist", Rewriter: wishlistRepo},
			{Name: "carts", Rewriter: cartsRepo},
		},
	})
	requireResource(ctx, logg, "users service", err)

	wishlistService, err := wishlist.NewService(wishlistRepo)
	requireResource(ctx, logg, "wishlist service", err)

	cartsService, err := carts.NewService(cartsRepo)
	requireResource(ctx, logg, "carts service", err)

	catalogParams := catalog.ServiceParams{
		Repo:     catalog.NewRepository(conn),
		Tx:       dbClient,
		CacheTTL: cfg.Catalog.CacheTTL,
	}
	if redisClient != nil {
		catalogParams.Cache = redisClient
		catalogParams.CacheKey = redisClient.CacheKey("catalog", catalog.DefaultDocumentKey)
	}
	catalogService, err := catalog.NewService(catalogParams)
	requireResource(ctx, logg, "catalog service", err)

	mediaService, err := media.NewService(media.Params{
		Dir:        cfg.Media.Dir,
		PublicBase: cfg.Media.PublicBase,
		MaxBytes:   int64(cfg.Media.MaxUploadMB) << 20,
	})
	requireResource(ctx, logg, "media service", err)

	var paymentsService payments.Service
	if cfg.Stripe.APIKey != "" {
		stripeClient, err := stripe.NewClient(ctx, cfg.Stripe, logg)
		requireResource(ctx, logg, "stripe", err)
		paymentsService, err = payments.NewService(stripeClient)
		requireResource(ctx, logg, "payments service", err)
	} else {
		logg.Warn(ctx, "stripe api key not set; POST /payments disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler := routes.NewRouter(cfg, logg, pingers, limiter, metrics.NewHTTPMetrics(registry, "api"), routes.APIServices{
		Products: productService,
		Orders:   ordersService,
		Reviews:  reviewsService,
		Users:    usersService,
		Wishlist: wishlistService,
		Carts:    cartsService,
		Catalog:  catalogService,
		Media:    mediaService,
		Payments: paymentsService,
	})

	addr := ":" + cfg.App.Port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"addr":   addr,
		"driver": dbClient.Driver(),
	})
	logg.Info(ctx, "starting api server")

	if err := api.Serve(ctx, api.NewServer(addr, handler), logg); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
