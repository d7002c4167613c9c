package settings

import (
	"context"

	"github.com/tankstore/storefront-backend/internal/repo"
	"github.com/tankstore/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists the singleton settings row.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Get loads the settings row; NOT_FOUND when it was never written.
func (r *Repository) Get(ctx context.Context) (*models.SiteSettings, error) {
	var s models.SiteSettings
	if err := r.DB(ctx).First(&s, "id = ?", models.SiteSettingsID).Error; err != nil {
		return nil, repo.MapError(err, "Settings", "get")
	}
	return &s, nil
}

// Upsert writes the singleton row, creating it when absent.
func (r *Repository) Upsert(ctx context.Context, s *models.SiteSettings) error {
	s.ID = models.SiteSettingsID
	err := r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"phone", "email", "address", "map_url", "facebook_url", "youtube_url", "banners", "updated_at",
			}),
		}).
		Create(s).Error
	return repo.MapError(err, "Settings", "upsert")
}

// ImagePaths returns the banner images currently referenced.
func (r *Repository) ImagePaths(ctx context.Context) ([]string, error) {
	s, err := r.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return bannerPaths(s.Banners), nil
}
