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
	storefrontcontrollers "github.com/mobishop/mobishop-backend/api/controllers/storefront"
	"github.com/mobishop/mobishop-backend/api/routes"
	"github.com/mobishop/mobishop-backend/internal/cartsync"
	shopsvc "github.com/mobishop/mobishop-backend/internal/storefront"
	"github.com/mobishop/mobishop-backend/pkg/config"
	"github.com/mobishop/mobishop-backend/pkg/dataapi"
	"github.com/mobishop/mobishop-backend/pkg/logger"
	"github.com/mobishop/mobishop-backend/pkg/metrics"
	"github.com/mobishop/mobishop-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	threshold, fee, err := cfg.Storefront.ShippingRule()
	requireResource(ctx, logg, "shipping rule", err)

	dataAPI := dataapi.New(cfg.Storefront)
	pingers := map[string]controllers.Pinger{"data_api": dataAPI}
	var limiter routes.RateLimiter
	var markers cartsync.StateStore
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		requireResource(ctx, logg, "redis", err)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		pingers["redis"] = redisClient
		limiter = redisClient
		markers = cartsync.NewRedisStateStore(redisClient, cfg.Storefront.SyncTTL)
	} else {
		logg.Warn(ctx, "redis not configured; cart sync markers kept in process memory")
		markers = cartsync.NewMemoryStateStore()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	syncMetrics := metrics.NewCartSyncMetrics(registry)

	sessions, err := storefrontcontrollers.NewSessions(storefrontcontrollers.SessionsParams{
		Remote:   dataAPI.Carts(),
		Markers:  markers,
		Observer: syncMetrics,
		Cookies: cartsync.CookieOptions{
			Secure: cfg.Storefront.CookieSecure,
			MaxAge: cfg.Storefront.CookieMaxAge,
		},
		Logger: logg,
	})
	requireResource(ctx, logg, "cart sessions", err)

	service, err := shopsvc.NewService(shopsvc.ServiceParams{
		API:                   dataAPI,
		FreeShippingThreshold: threshold,
		ShippingFee:           fee,
		Logger:                logg,
		Observer:              syncMetrics,
	})
	requireResource(ctx, logg, "storefront service", err)

	handler := routes.NewStorefrontRouter(
		cfg,
		logg,
		pingers,
		limiter,
		metrics.NewHTTPMetrics(registry, "storefront"),
		registry,
		sessions,
		service,
	)

	addr := ":" + cfg.App.Port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"data_api": cfg.Storefront.DataAPIURL,
	})
	logg.Info(ctx, "starting storefront server")

	if err := api.Serve(ctx, api.NewServer(addr, handler), logg); err != nil {
		logg.Error(ctx, "storefront server stopped unexpectedly", err)
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
