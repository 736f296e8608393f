package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Ivnfdzz/PickNPlay-sub000/api/routes"
	"github.com/Ivnfdzz/PickNPlay-sub000/internal/audit"
	"github.com/Ivnfdzz/PickNPlay-sub000/internal/auth"
	"github.com/Ivnfdzz/PickNPlay-sub000/internal/catalog"
	"github.com/Ivnfdzz/PickNPlay-sub000/internal/orders"
	"github.com/Ivnfdzz/PickNPlay-sub000/internal/paymentmethods"
	"github.com/Ivnfdzz/PickNPlay-sub000/internal/users"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/auth/session"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/config"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/db"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/logger"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/metrics"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/migrate"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/redis"
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
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

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
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	productsRepo := catalog.NewProductRepository(dbClient.DB())
	categoriesRepo := catalog.NewCategoryRepository(dbClient.DB())
	paymentsRepo := paymentmethods.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	auditRepo := audit.NewRepository(dbClient.DB())

	catalogService, err := catalog.NewService(productsRepo, categoriesRepo)
	requireService(logg, "catalog", err)

	paymentsService, err := paymentmethods.NewService(paymentsRepo)
	requireService(logg, "payment methods", err)

	usersService, err := users.NewService(usersRepo, cfg.Password)
	requireService(logg, "users", err)

	ordersService, err := orders.NewService(ordersRepo, productsRepo, paymentsRepo, dbClient, logg)
	requireService(logg, "orders", err)

	auditService, err := audit.NewService(auditRepo, usersRepo, productsRepo, cfg.Audit, logg)
	requireService(logg, "audit", err)

	authService, err := auth.NewService(usersRepo, sessionManager, cfg.JWT, logg)
	requireService(logg, "auth", err)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTP(registry)

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
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Sessions:    sessionManager,
			HTTPMetrics: httpMetrics,
			Metrics:     metrics.Handler(registry),

			Auth:           authService,
			Catalog:        catalogService,
			PaymentMethods: paymentsService,
			Users:          usersService,
			Orders:         ordersService,
			Audit:          auditService,
		}),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}
