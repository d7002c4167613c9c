package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tankstore/storefront-backend/api/controllers"
	"github.com/tankstore/storefront-backend/api/routes"
	"github.com/tankstore/storefront-backend/internal/app"
	"github.com/tankstore/storefront-backend/pkg/blob"
	"github.com/tankstore/storefront-backend/pkg/config"
	"github.com/tankstore/storefront-backend/pkg/db"
	"github.com/tankstore/storefront-backend/pkg/instance"
	"github.com/tankstore/storefront-backend/pkg/logger"
	"github.com/tankstore/storefront-backend/pkg/metrics"
	"github.com/tankstore/storefront-backend/pkg/migrate"
	"github.com/tankstore/storefront-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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
		Format:      cfg.App.LogFormat,
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

	store, err := blob.New(context.Background(), cfg.Storage)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap blob store", err)
		os.Exit(1)
	}

	ready := map[string]controllers.Pinger{"db": dbClient, "storage": store}
	deps := routes.Deps{Config: cfg, Logger: logg, Ready: ready}

	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		ready["redis"] = redisClient
		deps.Limiter = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, login rate limiting disabled")
	}

	assetMetrics := metrics.NewAssetMetrics(prometheus.DefaultRegisterer)
	deps.HTTPMetrics = metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	deps.MetricsPage = promhttp.Handler()

	services, err := app.New(app.Params{
		Config:       cfg,
		Logger:       logg,
		DB:           dbClient,
		Store:        store,
		AssetMetrics: assetMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to assemble services", err)
		os.Exit(1)
	}
	deps.Auth = services.Auth
	deps.Brands = services.Brands
	deps.Categories = services.Categories
	deps.Products = services.Products
	deps.Settings = services.Settings
	deps.Videos = services.Videos
	if !cfg.Storage.IsMinIO() {
		deps.UploadsRoot = cfg.Storage.LocalRoot
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.ID(),
		"storage":  cfg.Storage.Driver,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-sigCtx.Done():
		logg.Info(ctx, "api server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
