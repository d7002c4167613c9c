package categories

import (
	"context"
	"errors"

	"github.com/tankstore/storefront-backend/internal/repo"
	"github.com/tankstore/storefront-backend/pkg/db"
	"github.com/tankstore/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

// Repository persists categories.
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

// List returns every category, newest first, with its brand.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	err := r.DB(ctx).
		Preload("Brand").
		Order("created_at DESC").
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, repo.MapError(err, "Category", "list")
	}
	return list, nil
}

// FindByID loads a category with its brand.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB(ctx).Preload("Brand").First(&category, "id = ?", id).Error; err != nil {
		return nil, repo.MapError(err, "Category", "get")
	}
	return &category, nil
}

// NameTaken reports whether a category named name already exists in the same
// brand scope. A nil brandID is the generic scope.
func (r *Repository) NameTaken(ctx context.Context, name string, brandID *uint, excludeID uint) (bool, error) {
	q := r.DB(ctx).Model(&models.Category{}).Select("id").Where("name = ?", name)
	if brandID == nil {
		q = q.Where("brand_id IS NULL")
	} else {
		q = q.Where("brand_id = ?", *brandID)
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var found models.Category
	err := q.Take(&found).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, repo.MapError(err, "Category", "lookup")
	}
	return true, nil
}

func (r *Repository) Create(ctx context.Context, category *models.Category) error {
	err := r.DB(ctx).Omit("Brand").Create(category).Error
	return repo.MapError(err, "Category", "create")
}

// Update writes every mutable column, including nulls.
func (r *Repository) Update(ctx context.Context, category *models.Category) error {
	err := r.DB(ctx).
		Model(&models.Category{ID: category.ID}).
		Select("name", "slug", "display_name", "image", "brand_id", "updated_at").
		Updates(category).Error
	return repo.MapError(err, "Category", "update")
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.DB(ctx).Delete(&models.Category{}, "id = ?", id)
	if db.IsForeignKeyViolation(res.Error) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, res.Error, "Category has products")
	}
	if res.Error != nil {
		return repo.MapError(res.Error, "Category", "delete")
	}
	if res.RowsAffected == 0 {
		return repo.MapError(gorm.ErrRecordNotFound, "Category", "delete")
	}
	return nil
}

// ImagePaths returns every non-null category image.
func (r *Repository) ImagePaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.DB(ctx).
		Model(&models.Category{}).
		Where("image IS NOT NULL AND image <> ''").
		Pluck("image", &paths).Error
	if err != nil {
		return nil, repo.MapError(err, "Category", "list images")
	}
	return paths, nil
}
