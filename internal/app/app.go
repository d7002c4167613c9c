// Package app assembles the catalog repositories and services shared by the
// API server, the cron worker and the seed command.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/tankstore/storefront-backend/internal/assets"
	"github.com/tankstore/storefront-backend/internal/auth"
	"github.com/tankstore/storefront-backend/internal/brands"
	"github.com/tankstore/storefront-backend/internal/categories"
	"github.com/tankstore/storefront-backend/internal/products"
	"github.com/tankstore/storefront-backend/internal/settings"
	"github.com/tankstore/storefront-backend/internal/users"
	"github.com/tankstore/storefront-backend/internal/videos"
	"github.com/tankstore/storefront-backend/pkg/blob"
	"github.com/tankstore/storefront-backend/pkg/config"
	"github.com/tankstore/storefront-backend/pkg/db"
	"github.com/tankstore/storefront-backend/pkg/logger"
	"github.com/tankstore/storefront-backend/pkg/metrics"
)

type Params struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           *db.Client
	Store        blob.Store
	AssetMetrics *metrics.AssetMetrics
	Now          func() time.Time
}

type Repositories struct {
	Users      *users.Repository
	Brands     *brands.Repository
	Categories *categories.Repository
	Products   *products.Repository
	Settings   *settings.Repository
	Videos     *videos.Repository
}

type Services struct {
	Repos      Repositories
	Assets     *assets.Manager
	Auth       auth.Service
	Brands     brands.Service
	Categories categories.Service
	Products   products.Service
	Settings   settings.Service
	Videos     videos.Service
}

func New(p Params) (*Services, error) {
	if p.Config == nil || p.Logger == nil || p.DB == nil || p.Store == nil {
		return nil, errors.New("app: config, logger, db and store are required")
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}

	conn := p.DB.DB()
	repos := Repositories{
		Users:      users.NewRepository(conn),
		Brands:     brands.NewRepository(conn),
		Categories: categories.NewRepository(conn),
		Products:   products.NewRepository(conn),
		Settings:   settings.NewRepository(conn),
		Videos:     videos.NewRepository(conn),
	}

	manager, err := assets.NewManager(p.Store, blob.NewLocator(p.Config.Storage.PublicPrefix), p.Logger, p.AssetMetrics)
	if err != nil {
		return nil, fmt.Errorf("asset manager: %w", err)
	}

	svc := &Services{Repos: repos, Assets: manager}
	if svc.Auth, err = auth.NewService(auth.ServiceParams{
		UserRepo:       repos.Users,
		JWTConfig:      p.Config.JWT,
		PasswordConfig: p.Config.Password,
		Logger:         p.Logger,
		Now:            now,
	}); err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	if svc.Brands, err = brands.NewService(repos.Brands); err != nil {
		return nil, fmt.Errorf("brand service: %w", err)
	}
	if svc.Categories, err = categories.NewService(repos.Categories, repos.Brands, manager, p.Logger); err != nil {
		return nil, fmt.Errorf("category service: %w", err)
	}
	if svc.Products, err = products.NewService(products.ServiceParams{
		Repo:       repos.Products,
		DB:         p.DB,
		Categories: repos.Categories,
		Assets:     manager,
		Logger:     p.Logger,
		Now:        now,
	}); err != nil {
		return nil, fmt.Errorf("product service: %w", err)
	}
	if svc.Settings, err = settings.NewService(repos.Settings, manager, p.Logger); err != nil {
		return nil, fmt.Errorf("settings service: %w", err)
	}
	if svc.Videos, err = videos.NewService(repos.Videos, now); err != nil {
		return nil, fmt.Errorf("video service: %w", err)
	}
	return svc, nil
}
