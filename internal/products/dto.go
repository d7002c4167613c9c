package products

import (
	"time"

	"github.com/tankstore/storefront-backend/internal/assets"
	"github.com/tankstore/storefront-backend/internal/categories"
	"github.com/tankstore/storefront-backend/pkg/db/models"
)

// ProductDTO is the product payload with variants and category.brand loaded.
type ProductDTO struct {
	ID          uint                    `json:"id"`
	Name        string                  `json:"name"`
	Slug        string                  `json:"slug"`
	Description string                  `json:"description"`
	Price       float64                 `json:"price"`
	Brand       *string                 `json:"brand"`
	Image       []string                `json:"image"`
	CategoryID  uint                    `json:"categoryId"`
	Volume      *string                 `json:"volume"`
	Type        *string                 `json:"type"`
	Group       *string                 `json:"group"`
	Diameter    *string                 `json:"diameter"`
	Height      *string                 `json:"height"`
	Length      *string                 `json:"length"`
	Variants    []VariantDTO            `json:"variants"`
	Category    *categories.CategoryDTO `json:"category,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

// VariantDTO is a priced option of a product.
type VariantDTO struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	SKU       *string   `json:"sku"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductInput carries the raw multipart fields. Numeric and JSON fields are
// parsed by the service so that every client gets the same validation.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	CategoryID  string
	Brand       string
	Volume      string
	Type        string
	Group       string
	Diameter    string
	Height      string
	Length      string
	// Variants is a JSON array of {name, price, stock?, sku?, image?}.
	Variants string
	// ExistingGallery is the JSON list of current paths the client keeps (update).
	ExistingGallery string
	// ExistingImage reuses a stored product image when nothing is uploaded (create).
	ExistingImage string
	Images        []assets.Upload
}

// ListFilter narrows List.
type ListFilter struct {
	CategoryID *uint
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	image := append([]string{}, p.Image...)
	variants := make([]VariantDTO, 0, len(p.Variants))
	for i := range p.Variants {
		variants = append(variants, variantFromModel(&p.Variants[i]))
	}
	return &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Brand:       p.Brand,
		Image:       image,
		CategoryID:  p.CategoryID,
		Volume:      p.Volume,
		Type:        p.Type,
		Group:       p.Group,
		Diameter:    p.Diameter,
		Height:      p.Height,
		Length:      p.Length,
		Variants:    variants,
		Category:    categories.FromModel(p.Category),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromModels(list []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func variantFromModel(v *models.ProductVariant) VariantDTO {
	return VariantDTO{
		ID:        v.ID,
		ProductID: v.ProductID,
		Name:      v.Name,
		Price:     v.Price.InexactFloat64(),
		Stock:     v.Stock,
		SKU:       v.SKU,
		Image:     v.Image,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
