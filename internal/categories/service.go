package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/tankstore/storefront-backend/internal/assets"
	"github.com/tankstore/storefront-backend/pkg/blob"
	"github.com/tankstore/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
	"github.com/tankstore/storefront-backend/pkg/logger"
	"github.com/tankstore/storefront-backend/pkg/slugs"
)

const categoryDeletedMessage = "Category deleted successfully"

// Service exposes category CRUD. Mutations keep the category image file and
// the row in step: files are written before the row and superseded files are
// removed after it.
type Service interface {
	List(ctx context.Context) ([]CategoryDTO, error)
	Get(ctx context.Context, id uint) (*CategoryDTO, error)
	Create(ctx context.Context, input CategoryInput) (*CategoryDTO, error)
	Update(ctx context.Context, id uint, input CategoryInput) (*CategoryDTO, error)
	Delete(ctx context.Context, id uint) (string, error)
}

type categoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uint) (*models.Category, error)
	NameTaken(ctx context.Context, name string, brandID *uint, excludeID uint) (bool, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}

type brandLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Brand, error)
}

type service struct {
	repo   categoryRepository
	brands brandLookup
	assets *assets.Manager
	logg   *logger.Logger
}

func NewService(repo categoryRepository, brands brandLookup, manager *assets.Manager, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if brands == nil {
		return nil, fmt.Errorf("brand repository required")
	}
	if manager == nil {
		return nil, fmt.Errorf("asset manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, brands: brands, assets: manager, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]CategoryDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return FromModels(list), nil
}

func (s *service) Get(ctx context.Context, id uint) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(category), nil
}

func (s *service) Create(ctx context.Context, input CategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	slug, err := s.resolveScope(ctx, name, input.BrandID, 0)
	if err != nil {
		return nil, err
	}

	stage := s.assets.Stage(blob.FolderCategories)
	var image *string
	if input.Image != nil {
		p, err := stage.Save(ctx, *input.Image)
		if err != nil {
			return nil, err
		}
		image = &p
	}

	category := &models.Category{
		Name:        name,
		Slug:        slug,
		DisplayName: blankToNil(input.DisplayName),
		Image:       image,
		BrandID:     input.BrandID,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		stage.Discard(ctx)
		return nil, err
	}

	return s.reload(ctx, category)
}

func (s *service) Update(ctx context.Context, id uint, input CategoryInput) (*CategoryDTO, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	slug, err := s.resolveScope(ctx, name, input.BrandID, id)
	if err != nil {
		return nil, err
	}

	stage := s.assets.Stage(blob.FolderCategories)
	image := current.Image
	switch {
	case input.Image != nil:
		p, err := stage.Save(ctx, *input.Image)
		if err != nil {
			return nil, err
		}
		image = &p
	case input.RemoveImage:
		image = nil
	}

	updated := &models.Category{
		ID:          id,
		Name:        name,
		Slug:        slug,
		DisplayName: blankToNil(input.DisplayName),
		Image:       image,
		BrandID:     input.BrandID,
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		stage.Discard(ctx)
		return nil, err
	}

	s.assets.Remove(ctx, "category", assets.Orphans(pathsOf(current.Image), pathsOf(image))...)

	return s.reload(ctx, updated)
}

func (s *service) Delete(ctx context.Context, id uint) (string, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	s.assets.Remove(ctx, "category", pathsOf(category.Image)...)
	return categoryDeletedMessage, nil
}

// resolveScope checks the brand and the (name, brand) uniqueness rule and
// returns the slug for the category.
func (s *service) resolveScope(ctx context.Context, name string, brandID *uint, excludeID uint) (string, error) {
	brandName := ""
	if brandID != nil {
		brand, err := s.brands.FindByID(ctx, *brandID)
		if err != nil {
			return "", err
		}
		brandName = brand.Name
	}

	taken, err := s.repo.NameTaken(ctx, name, brandID, excludeID)
	if err != nil {
		return "", err
	}
	if taken {
		if brandID != nil {
			return "", pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("Category name already exists for brand %s.", brandName))
		}
		return "", pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("Generic category '%s' already exists", name))
	}
	return slugs.Category(brandName, name), nil
}

// reload returns the stored row with its brand. A failed read after a
// successful write falls back to the written values.
func (s *service) reload(ctx context.Context, category *models.Category) (*CategoryDTO, error) {
	stored, err := s.repo.FindByID(ctx, category.ID)
	if err != nil {
		s.logg.WarnErr(s.logg.WithField(ctx, "category_id", category.ID), "reload category", err)
		return FromModel(category), nil
	}
	return FromModel(stored), nil
}

func pathsOf(image *string) []string {
	if image == nil || *image == "" {
		return nil
	}
	return []string{*image}
}

func blankToNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
