package categories

import (
	"time"

	"github.com/tankstore/storefront-backend/internal/assets"
	"github.com/tankstore/storefront-backend/internal/brands"
	"github.com/tankstore/storefront-backend/pkg/db/models"
)

// CategoryDTO is the category payload with its brand loaded.
type CategoryDTO struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	DisplayName *string          `json:"displayName"`
	Image       *string          `json:"image"`
	BrandID     *uint            `json:"brandId"`
	Brand       *brands.BrandDTO `json:"brand"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CategoryInput carries the parsed multipart form for create and update.
type CategoryInput struct {
	Name        string
	DisplayName *string
	BrandID     *uint
	Image       *assets.Upload
	// RemoveImage clears the current image on update when no new file is sent.
	RemoveImage bool
}

func FromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		DisplayName: c.DisplayName,
		Image:       c.Image,
		BrandID:     c.BrandID,
		Brand:       brands.FromModel(c.Brand),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromModels(list []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
