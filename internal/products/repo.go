package products

import (
	"context"
	"slices"

	"github.com/tankstore/storefront-backend/internal/repo"
	"github.com/tankstore/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists products and their variants.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

func (r *Repository) withRelations(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Category.Brand")
}

// List returns products, newest id first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	q := r.withRelations(ctx).Order("id DESC")
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	var list []models.Product
	if err := q.Find(&list).Error; err != nil {
		return nil, repo.MapError(err, "Product", "list")
	}
	return list, nil
}

// FindByID loads a product with its variants and category brand.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.withRelations(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, repo.MapError(err, "Product", "get")
	}
	return &product, nil
}

// Create inserts the product together with its variants.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	err := r.DB(ctx).Omit("Category").Create(product).Error
	return repo.MapError(err, "Product", "create")
}

// UpdateFields writes every mutable product column. The slug is never rewritten.
func (r *Repository) UpdateFields(ctx context.Context, product *models.Product) error {
	res := r.DB(ctx).
		Model(&models.Product{ID: product.ID}).
		Select("name", "description", "price", "brand", "image", "category_id",
			"volume", "type", "group", "diameter", "height", "length", "updated_at").
		Updates(product)
	if res.Error != nil {
		return repo.MapError(res.Error, "Product", "update")
	}
	if res.RowsAffected == 0 {
		return repo.MapError(gorm.ErrRecordNotFound, "Product", "update")
	}
	return nil
}

// ReplaceVariants deletes every variant of the product and inserts the new set.
// Callers run it inside the same transaction as UpdateFields.
func (r *Repository) ReplaceVariants(ctx context.Context, productID uint, variants []models.ProductVariant) error {
	db := r.DB(ctx)
	if err := db.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error; err != nil {
		return repo.MapError(err, "Variant", "delete")
	}
	if len(variants) == 0 {
		return nil
	}
	for i := range variants {
		variants[i].ID = 0
		variants[i].ProductID = productID
	}
	if err := db.Create(&variants).Error; err != nil {
		return repo.MapError(err, "Variant", "create")
	}
	return nil
}

// Delete removes the product and its variants.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	db := r.DB(ctx)
	if err := db.Where("product_id = ?", id).Delete(&models.ProductVariant{}).Error; err != nil {
		return repo.MapError(err, "Variant", "delete")
	}
	res := db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return repo.MapError(res.Error, "Product", "delete")
	}
	if res.RowsAffected == 0 {
		return repo.MapError(gorm.ErrRecordNotFound, "Product", "delete")
	}
	return nil
}

// CountVariants returns the number of variant rows for the product.
func (r *Repository) CountVariants(ctx context.Context, productID uint) (int64, error) {
	var n int64
	err := r.DB(ctx).Model(&models.ProductVariant{}).Where("product_id = ?", productID).Count(&n).Error
	if err != nil {
		return 0, repo.MapError(err, "Variant", "count")
	}
	return n, nil
}

// ImageInUse reports whether any product other than excludeID lists path in
// its gallery, or any variant points at it.
func (r *Repository) ImageInUse(ctx context.Context, path string, excludeID uint) (bool, error) {
	var candidates []models.Product
	q := r.DB(ctx).
		Select("id", "image").
		Where("CAST(image AS TEXT) LIKE ?", "%"+path+"%")
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&candidates).Error; err != nil {
		return false, repo.MapError(err, "Product", "lookup image")
	}
	for _, c := range candidates {
		if slices.Contains([]string(c.Image), path) {
			return true, nil
		}
	}

	var variants int64
	err := r.DB(ctx).Model(&models.ProductVariant{}).Where("image = ?", path).Count(&variants).Error
	if err != nil {
		return false, repo.MapError(err, "Variant", "lookup image")
	}
	return variants > 0, nil
}

// ImagePaths returns every gallery and variant image path.
func (r *Repository) ImagePaths(ctx context.Context) ([]string, error) {
	var galleries []models.Product
	if err := r.DB(ctx).Select("id", "image").Find(&galleries).Error; err != nil {
		return nil, repo.MapError(err, "Product", "list images")
	}
	var paths []string
	for _, g := range galleries {
		paths = append(paths, g.Image...)
	}

	var variantImages []string
	err := r.DB(ctx).
		Model(&models.ProductVariant{}).
		Where("image IS NOT NULL AND image <> ''").
		Pluck("image", &variantImages).Error
	if err != nil {
		return nil, repo.MapError(err, "Variant", "list images")
	}
	return append(paths, variantImages...), nil
}
