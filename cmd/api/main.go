package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/cadefab1n/cardapio-backend/api/routes"
	"github.com/cadefab1n/cardapio-backend/internal/auth"
	"github.com/cadefab1n/cardapio-backend/internal/cart"
	"github.com/cadefab1n/cardapio-backend/internal/categories"
	"github.com/cadefab1n/cardapio-backend/internal/checkout"
	"github.com/cadefab1n/cardapio-backend/internal/combos"
	"github.com/cadefab1n/cardapio-backend/internal/products"
	"github.com/cadefab1n/cardapio-backend/internal/promotions"
	"github.com/cadefab1n/cardapio-backend/internal/restaurants"
	"github.com/cadefab1n/cardapio-backend/pkg/config"
	"github.com/cadefab1n/cardapio-backend/pkg/db"
	"github.com/cadefab1n/cardapio-backend/pkg/logger"
	"github.com/cadefab1n/cardapio-backend/pkg/metrics"
	"github.com/cadefab1n/cardapio-backend/pkg/migrate"
	"github.com/cadefab1n/cardapio-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeAll(dbClient, redisClient); err != nil {
			logg.Error(context.Background(), "error closing resources", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	cartManager := cart.NewManager(cart.ManagerOptions{
		Snapshots:   redisClient,
		SnapshotTTL: cfg.Cart.SnapshotTTL,
		Logger:      logg,
	})

	restaurantRepo := restaurants.NewRepository(dbClient.DB())
	restaurantService, err := restaurants.NewService(restaurantRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create restaurant service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categories.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	productRepo := products.NewRepository(dbClient.DB())
	productService, err := products.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	comboService, err := combos.NewService(combos.NewRepository(dbClient.DB()), productRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create combo service", err)
		os.Exit(1)
	}

	promotionService, err := promotions.NewService(promotions.NewRepository(dbClient.DB()), productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create promotion service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Repo:        auth.NewRepository(dbClient.DB()),
		JWTConfig:   cfg.JWT,
		PasswordCfg: cfg.Password,
		AdminCfg:    cfg.Admin,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	if err := authService.EnsureAdmin(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to bootstrap admin account", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Carts:       cartManager,
		Restaurants: restaurantRepo,
		Metrics:     checkoutMetrics,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		HTTPMetrics: httpMetrics,
		Registry:    registry,
		Carts:       cartManager,
		Auth:        authService,
		Restaurants: restaurantService,
		Categories:  categoryService,
		Products:    productService,
		Combos:      comboService,
		Promotions:  promotionService,
		Checkout:    checkoutService,
	})

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
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithFields(ctx, map[string]any{"signal": sig.String()}), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

func closeAll(dbClient *db.Client, redisClient *redis.Client) error {
	return multierr.Combine(
		dbClient.Close(),
		redisClient.Close(),
	)
}
