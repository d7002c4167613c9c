// Package seed writes the starter catalog: the admin account, two brands with
// their categories and the settings row. Every step is idempotent.
package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/tankstore/storefront-backend/internal/app"
	"github.com/tankstore/storefront-backend/internal/brands"
	"github.com/tankstore/storefront-backend/internal/categories"
	"github.com/tankstore/storefront-backend/internal/users"
	"github.com/tankstore/storefront-backend/pkg/config"
	"github.com/tankstore/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
	"github.com/tankstore/storefront-backend/pkg/logger"
	"github.com/tankstore/storefront-backend/pkg/security"
)

const (
	AdminEmail    = "superadmin@admin.com"
	AdminName     = "Super Admin"
	SettingsEmail = "abc@admin.com"
)

// Catalog maps each seeded brand to its category names.
var Catalog = []struct {
	Brand      string
	Categories []string
}{
	{Brand: "Crown", Categories: []string{"Plastic", "Stainless Steel"}},
	{Brand: "Diamond", Categories: []string{"Plastic", "Stainless Steel"}},
}

type Params struct {
	Services      *app.Services
	Password      config.PasswordConfig
	AdminPassword string
	Logger        *logger.Logger
}

// Result counts the rows inserted by one run.
type Result struct {
	UserCreated     bool
	BrandsCreated   int
	CategoriesAdded int
	SettingsCreated bool
}

func Run(ctx context.Context, p Params) (Result, error) {
	var res Result
	if p.Services == nil || p.Logger == nil {
		return res, errors.New("seed: services and logger are required")
	}
	if strings.TrimSpace(p.AdminPassword) == "" {
		return res, errors.New("seed: admin password is required")
	}

	created, err := ensureAdmin(ctx, p)
	if err != nil {
		return res, err
	}
	res.UserCreated = created

	existing, err := p.Services.Brands.List(ctx)
	if err != nil {
		return res, err
	}
	for _, entry := range Catalog {
		brand, made, err := ensureBrand(ctx, p.Services.Brands, existing, entry.Brand)
		if err != nil {
			return res, err
		}
		if made {
			res.BrandsCreated++
		}
		for _, name := range entry.Categories {
			added, err := ensureCategory(ctx, p.Services.Categories, brand.ID, name)
			if err != nil {
				return res, err
			}
			if added {
				res.CategoriesAdded++
			}
			p.Logger.Info(p.Logger.WithFields(ctx, map[string]any{"brand": brand.Name, "category": name}), "category ready")
		}
	}

	res.SettingsCreated, err = ensureSettings(ctx, p.Services.Repos.Settings)
	if err != nil {
		return res, err
	}
	return res, nil
}

func ensureAdmin(ctx context.Context, p Params) (bool, error) {
	hash, err := security.HashPassword(p.AdminPassword, p.Password)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash admin password")
	}
	_, created, err := p.Services.Repos.Users.EnsureByEmail(ctx, users.CreateUserDTO{
		Email:        AdminEmail,
		Name:         AdminName,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	return created, err
}

func ensureBrand(ctx context.Context, svc brands.Service, existing []brands.BrandDTO, name string) (*brands.BrandDTO, bool, error) {
	for i := range existing {
		if strings.EqualFold(existing[i].Name, name) {
			return &existing[i], false, nil
		}
	}
	brand, err := svc.Create(ctx, brands.BrandInput{Name: name})
	if err != nil {
		return nil, false, err
	}
	return brand, true, nil
}

func ensureCategory(ctx context.Context, svc categories.Service, brandID uint, name string) (bool, error) {
	display := name
	_, err := svc.Create(ctx, categories.CategoryInput{Name: name, DisplayName: &display, BrandID: &brandID})
	if pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		return false, nil
	}
	return err == nil, err
}

type settingsStore interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Upsert(ctx context.Context, s *models.SiteSettings) error
}

func ensureSettings(ctx context.Context, repo settingsStore) (bool, error) {
	_, err := repo.Get(ctx)
	if err == nil {
		return false, nil
	}
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		return false, err
	}
	if err := repo.Upsert(ctx, &models.SiteSettings{Email: SettingsEmail}); err != nil {
		return false, err
	}
	return true, nil
}
