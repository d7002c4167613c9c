package videos

import (
	"context"

	"github.com/tankstore/storefront-backend/internal/repo"
	"github.com/tankstore/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists the video gallery.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns videos newest first.
func (r *Repository) List(ctx context.Context) ([]models.Video, error) {
	var list []models.Video
	if err := r.DB(ctx).Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, repo.MapError(err, "Video", "list")
	}
	return list, nil
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := r.DB(ctx).First(&video, "id = ?", id).Error; err != nil {
		return nil, repo.MapError(err, "Video", "get")
	}
	return &video, nil
}

func (r *Repository) Create(ctx context.Context, video *models.Video) error {
	return repo.MapError(r.DB(ctx).Create(video).Error, "Video", "create")
}

// Update writes the editable columns, including a cleared thumbnail.
func (r *Repository) Update(ctx context.Context, video *models.Video) error {
	err := r.DB(ctx).
		Model(&models.Video{ID: video.ID}).
		Select("title", "description", "video_url", "thumbnail", "updated_at").
		Updates(video).Error
	return repo.MapError(err, "Video", "update")
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.DB(ctx).Delete(&models.Video{}, "id = ?", id)
	if res.Error != nil {
		return repo.MapError(res.Error, "Video", "delete")
	}
	if res.RowsAffected == 0 {
		return repo.MapError(gorm.ErrRecordNotFound, "Video", "delete")
	}
	return nil
}
