package videos

import (
	"time"

	"github.com/tankstore/storefront-backend/pkg/db/models"
)

// VideoDTO is the gallery entry returned to clients.
type VideoDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"videoUrl"`
	Thumbnail   *string   `json:"thumbnail"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// VideoInput is the JSON body for create and update. Date is ignored on update.
type VideoInput struct {
	Title       string
	Description string
	VideoURL    string
	Thumbnail   *string
	Date        *time.Time
}

func FromModel(v *models.Video) *VideoDTO {
	if v == nil {
		return nil
	}
	return &VideoDTO{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		VideoURL:    v.VideoURL,
		Thumbnail:   v.Thumbnail,
		Date:        v.Date,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func FromModels(list []models.Video) []VideoDTO {
	out := make([]VideoDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
