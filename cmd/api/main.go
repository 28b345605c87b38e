package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/wildwestwallart/storefront-backend/api/controllers"
	"github.com/wildwestwallart/storefront-backend/api/routes"
	cartsvc "github.com/wildwestwallart/storefront-backend/internal/cart"
	"github.com/wildwestwallart/storefront-backend/internal/catalog"
	"github.com/wildwestwallart/storefront-backend/internal/notifications"
	"github.com/wildwestwallart/storefront-backend/internal/records"
	"github.com/wildwestwallart/storefront-backend/internal/relay"
	"github.com/wildwestwallart/storefront-backend/pkg/config"
	"github.com/wildwestwallart/storefront-backend/pkg/kvstore"
	"github.com/wildwestwallart/storefront-backend/pkg/logger"
	"github.com/wildwestwallart/storefront-backend/pkg/metrics"
	"github.com/wildwestwallart/storefront-backend/pkg/redis"
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

	// Redis backs cart persistence when configured. Without it carts live
	// in process memory, which is fine for local dev.
	var cartStore kvstore.Store = kvstore.NewMemory()
	var redisPinger controllers.Pinger
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		store, err := kvstore.NewRedis(redisClient)
		if err != nil {
			logg.Error(context.Background(), "failed to wrap redis store", err)
			os.Exit(1)
		}
		cartStore = store
		redisPinger = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, carts are in-memory only")
	}

	relayService := relay.NewService(cfg.Records, logg)

	var catalogService catalog.Service
	if cfg.Records.HasCredentials() {
		recordsClient, err := records.NewClient(cfg.Records, cfg.Catalog.PageSize)
		if err != nil {
			logg.Error(context.Background(), "failed to create records client", err)
			os.Exit(1)
		}
		catalogService, err = catalog.NewService(recordsClient, cfg.Catalog.CacheTTL, nil, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create catalog service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "records credentials missing, catalog endpoints will report not configured")
	}

	var cartService cartsvc.Service
	if catalogService != nil {
		cartService, err = cartsvc.NewService(cartStore, catalogService, cfg.Cart.StorageKeyPrefix, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create cart service", err)
			os.Exit(1)
		}
	}

	notificationService, err := notifications.NewService(
		notifications.NewSendgridSender(cfg.Email.PublicKey),
		cfg.Email,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create notification service", err)
		os.Exit(1)
	}
	if !notificationService.Ready() {
		logg.Warn(context.Background(), "email provider not configured, notifications are no-ops")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			registry,
			httpMetrics,
			redisPinger,
			relayService,
			catalogService,
			cartService,
			notificationService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
