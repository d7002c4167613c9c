package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/tankstore/storefront-backend/internal/app"
	"github.com/tankstore/storefront-backend/internal/seed"
	"github.com/tankstore/storefront-backend/pkg/blob"
	"github.com/tankstore/storefront-backend/pkg/config"
	"github.com/tankstore/storefront-backend/pkg/db"
	"github.com/tankstore/storefront-backend/pkg/env"
	"github.com/tankstore/storefront-backend/pkg/logger"
	"github.com/tankstore/storefront-backend/pkg/migrate"
)

func main() {
	password := flag.String("admin-password", "", "password for "+seed.AdminEmail+" (default TANKSTORE_SEED_ADMIN_PASSWORD or Admin@123)")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	if *password == "" {
		*password = env.Get("TANKSTORE_SEED_ADMIN_PASSWORD", "Admin@123")
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	store, err := blob.New(ctx, cfg.Storage)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap blob store", err)
		os.Exit(1)
	}
	services, err := app.New(app.Params{Config: cfg, Logger: logg, DB: dbClient, Store: store})
	if err != nil {
		logg.Error(ctx, "failed to assemble services", err)
		os.Exit(1)
	}

	res, err := seed.Run(ctx, seed.Params{
		Services:      services,
		Password:      cfg.Password,
		AdminPassword: *password,
		Logger:        logg,
	})
	if err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"user_created":     res.UserCreated,
		"brands_created":   res.BrandsCreated,
		"categories_added": res.CategoriesAdded,
		"settings_created": res.SettingsCreated,
	}), "database seeded")
}
