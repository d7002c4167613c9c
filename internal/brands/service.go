package brands

import (
	"context"
	"fmt"
	"strings"

	"github.com/tankstore/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
	"github.com/tankstore/storefront-backend/pkg/slugs"
)

const (
	brandExistsMessage  = "Brand already exists"
	brandDeletedMessage = "Brand deleted successfully"
)

// Service exposes brand CRUD to the HTTP layer.
type Service interface {
	List(ctx context.Context) ([]BrandDTO, error)
	Create(ctx context.Context, input BrandInput) (*BrandDTO, error)
	Update(ctx context.Context, id uint, input BrandInput) (*BrandDTO, error)
	// Delete removes the brand only. Categories keep their brand id.
	Delete(ctx context.Context, id uint) (string, error)
}

type brandRepository interface {
	List(ctx context.Context) ([]models.Brand, error)
	FindByID(ctx context.Context, id uint) (*models.Brand, error)
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	Create(ctx context.Context, brand *models.Brand) error
	Rename(ctx context.Context, brand *models.Brand, name string) error
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo brandRepository
}

func NewService(repo brandRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("brand repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]BrandDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return FromModels(list), nil
}

func (s *service) Create(ctx context.Context, input BrandInput) (*BrandDTO, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	brand := &models.Brand{Name: name, Slug: slugs.Brand(name)}
	if err := s.repo.Create(ctx, brand); err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, brandExistsMessage)
		}
		return nil, err
	}
	return FromModel(brand), nil
}

func (s *service) Update(ctx context.Context, id uint, input BrandInput) (*BrandDTO, error) {
	brand, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, name, id); err != nil {
		return nil, err
	}
	if err := s.repo.Rename(ctx, brand, name); err != nil {
		return nil, err
	}
	brand.Name = name
	return FromModel(brand), nil
}

func (s *service) Delete(ctx context.Context, id uint) (string, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return "", err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	return brandDeletedMessage, nil
}

func (s *service) ensureNameFree(ctx context.Context, name string, excludeID uint) error {
	taken, err := s.repo.NameTaken(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return pkgerrors.New(pkgerrors.CodeConflict, brandExistsMessage)
	}
	return nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	return name, nil
}
