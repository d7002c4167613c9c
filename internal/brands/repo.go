package brands

import (
	"context"
	"errors"

	"github.com/tankstore/storefront-backend/internal/repo"
	"github.com/tankstore/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists brands.
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

// List returns every brand ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Brand, error) {
	var list []models.Brand
	if err := r.DB(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, repo.MapError(err, "Brand", "list")
	}
	return list, nil
}

// FindByID loads a brand.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.DB(ctx).First(&brand, "id = ?", id).Error; err != nil {
		return nil, repo.MapError(err, "Brand", "get")
	}
	return &brand, nil
}

// NameTaken reports whether another brand already uses name. excludeID of
// zero checks every row.
func (r *Repository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	q := r.DB(ctx).Model(&models.Brand{}).Select("id").Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var found models.Brand
	err := q.Take(&found).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, repo.MapError(err, "Brand", "lookup")
	}
	return true, nil
}

func (r *Repository) Create(ctx context.Context, brand *models.Brand) error {
	return repo.MapError(r.DB(ctx).Create(brand).Error, "Brand", "create")
}

// Rename updates the name only; slugs are fixed at creation.
func (r *Repository) Rename(ctx context.Context, brand *models.Brand, name string) error {
	err := r.DB(ctx).Model(brand).Update("name", name).Error
	return repo.MapError(err, "Brand", "update")
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.DB(ctx).Delete(&models.Brand{}, "id = ?", id)
	if res.Error != nil {
		return repo.MapError(res.Error, "Brand", "delete")
	}
	if res.RowsAffected == 0 {
		return repo.MapError(gorm.ErrRecordNotFound, "Brand", "delete")
	}
	return nil
}
