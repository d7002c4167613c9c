package brands

import (
	"time"

	"github.com/tankstore/storefront-backend/pkg/db/models"
)

// BrandDTO is the brand payload returned to clients.
type BrandDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BrandInput is the JSON body accepted by create and update.
type BrandInput struct {
	Name string `json:"name" validate:"required"`
}

func FromModel(b *models.Brand) *BrandDTO {
	if b == nil {
		return nil
	}
	return &BrandDTO{
		ID:        b.ID,
		Name:      b.Name,
		Slug:      b.Slug,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func FromModels(list []models.Brand) []BrandDTO {
	out := make([]BrandDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
