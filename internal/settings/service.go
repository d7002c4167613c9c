package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tankstore/storefront-backend/internal/assets"
	"github.com/tankstore/storefront-backend/pkg/blob"
	"github.com/tankstore/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
	"github.com/tankstore/storefront-backend/pkg/logger"
)

const invalidMetadataMessage = "Invalid banners_metadata JSON format"

// Service reads and writes the site settings singleton and its banner files.
type Service interface {
	Get(ctx context.Context) (*SettingsDTO, error)
	Update(ctx context.Context, input SettingsInput) (*SettingsDTO, error)
}

type settingsRepository interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Upsert(ctx context.Context, s *models.SiteSettings) error
}

type service struct {
	repo   settingsRepository
	assets *assets.Manager
	logg   *logger.Logger
}

func NewService(repo settingsRepository, manager *assets.Manager, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if manager == nil {
		return nil, fmt.Errorf("asset manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, assets: manager, logg: logg}, nil
}

func (s *service) Get(ctx context.Context) (*SettingsDTO, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return Empty(), nil
		}
		return nil, err
	}
	return FromModel(current), nil
}

func (s *service) Update(ctx context.Context, input SettingsInput) (*SettingsDTO, error) {
	metadata, err := parseMetadata(input.BannersMetadata)
	if err != nil {
		return nil, err
	}

	var oldBanners []models.Banner
	current, err := s.repo.Get(ctx)
	switch {
	case err == nil:
		oldBanners = current.Banners
	case isNotFound(err):
	default:
		return nil, err
	}
	oldPaths := bannerPaths(oldBanners)

	stage := s.assets.Stage(blob.FolderBanners)
	banners, err := s.pairBanners(ctx, stage, metadata, input.BannerFiles)
	if err != nil {
		stage.Discard(ctx)
		return nil, err
	}

	next := &models.SiteSettings{
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		MapURL:      input.MapURL,
		FacebookURL: input.FacebookURL,
		YoutubeURL:  input.YoutubeURL,
		Banners:     banners,
	}
	if err := s.repo.Upsert(ctx, next); err != nil {
		stage.Discard(ctx)
		return nil, err
	}

	s.assets.Remove(ctx, "settings", s.ownedBanners(assets.Orphans(oldPaths, bannerPaths(banners)))...)

	return FromModel(next), nil
}

// pairBanners walks the metadata in order. Each isNewUpload entry consumes the
// next unconsumed file; entries left without a file are dropped. Existing
// entries keep the banner_image the client sent.
func (s *service) pairBanners(ctx context.Context, stage *assets.Stage, metadata []BannerMetadata, files []assets.Upload) ([]models.Banner, error) {
	banners := make([]models.Banner, 0, len(metadata))
	next := 0
	for _, item := range metadata {
		if item.IsNewUpload {
			if next >= len(files) {
				s.logg.Warn(s.logg.WithField(ctx, "banner", item.Name), "dropping banner without a matching upload")
				continue
			}
			p, err := stage.Save(ctx, files[next])
			if err != nil {
				return nil, err
			}
			next++
			banners = append(banners, models.Banner{Name: item.Name, BannerImage: p, CategoryID: item.CategoryID})
			continue
		}

		banners = append(banners, models.Banner{Name: item.Name, BannerImage: item.BannerImage, CategoryID: item.CategoryID})
	}
	return banners, nil
}

// ownedBanners keeps only paths under the banners folder. A client may point an
// existing banner at any path, but cleanup never reaches outside the folder.
func (s *service) ownedBanners(paths []string) []string {
	locator := s.assets.Locator()
	owned := make([]string, 0, len(paths))
	for _, p := range paths {
		if locator.Owns(blob.FolderBanners, p) {
			owned = append(owned, p)
		}
	}
	return owned
}

func parseMetadata(raw string) ([]BannerMetadata, error) {
	if strings.TrimSpace(raw) == "" {
		return []BannerMetadata{}, nil
	}
	var metadata []BannerMetadata
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, invalidMetadataMessage)
	}
	return metadata, nil
}

func isNotFound(err error) bool {
	return pkgerrors.IsCode(err, pkgerrors.CodeNotFound)
}
