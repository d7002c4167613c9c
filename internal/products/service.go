package products

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tankstore/storefront-backend/internal/assets"
	"github.com/tankstore/storefront-backend/pkg/blob"
	"github.com/tankstore/storefront-backend/pkg/db"
	"github.com/tankstore/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
	"github.com/tankstore/storefront-backend/pkg/logger"
	"github.com/tankstore/storefront-backend/pkg/slugs"
	"gorm.io/gorm"
)

const productDeletedMessage = "Product deleted"

// Service exposes the product catalog. Create and update write uploaded files
// before the row; update and delete remove superseded files afterwards.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]ProductDTO, error)
	Get(ctx context.Context, id uint) (*ProductDTO, error)
	Create(ctx context.Context, input ProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id uint, input ProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uint) (string, error)
	PriceList(ctx context.Context, filter ListFilter) (*PriceListDTO, error)
}

type categoryLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Category, error)
}

// ServiceParams bundles the dependencies of the product service.
type ServiceParams struct {
	Repo       *Repository
	DB         *db.Client
	Categories categoryLookup
	Assets     *assets.Manager
	Logger     *logger.Logger
	Now        func() time.Time
}

type service struct {
	repo       *Repository
	dbClient   *db.Client
	categories categoryLookup
	assets     *assets.Manager
	logg       *logger.Logger
	now        func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	if params.Categories == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if params.Assets == nil {
		return nil, fmt.Errorf("asset manager required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:       params.Repo,
		dbClient:   params.DB,
		categories: params.Categories,
		assets:     params.Assets,
		logg:       params.Logger,
		now:        now,
	}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ProductDTO, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return FromModels(list), nil
}

func (s *service) Get(ctx context.Context, id uint) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(product), nil
}

func (s *service) Create(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	fields, err := s.parseFields(ctx, input)
	if err != nil {
		return nil, err
	}

	var reused []string
	if len(input.Images) == 0 && strings.TrimSpace(input.ExistingImage) != "" {
		p, err := s.checkReusableImage(ctx, strings.TrimSpace(input.ExistingImage))
		if err != nil {
			return nil, err
		}
		reused = []string{p}
	}

	stage := s.assets.Stage(blob.FolderProducts)
	written, err := stage.SaveAll(ctx, input.Images)
	if err != nil {
		return nil, err
	}
	gallery := written
	if len(gallery) == 0 {
		gallery = reused
	}
	if gallery == nil {
		gallery = []string{}
	}

	product := fields.model()
	product.Slug = slugs.Product(product.Name, s.now())
	product.Image = gallery
	product.Variants = fields.variants

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, product)
	}); err != nil {
		stage.Discard(ctx)
		return nil, asAPIError(err, "create product")
	}

	return s.reload(ctx, product.ID)
}

func (s *service) Update(ctx context.Context, id uint, input ProductInput) (*ProductDTO, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := s.parseFields(ctx, input)
	if err != nil {
		return nil, err
	}
	requested, err := parseGallery(input.ExistingGallery)
	if err != nil {
		return nil, err
	}
	kept := s.keptGallery(ctx, current, requested)

	stage := s.assets.Stage(blob.FolderProducts)
	written, err := stage.SaveAll(ctx, input.Images)
	if err != nil {
		return nil, err
	}
	final := append(kept, written...)

	product := fields.model()
	product.ID = id
	product.Image = final

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.UpdateFields(ctx, product); err != nil {
			return err
		}
		return txRepo.ReplaceVariants(ctx, id, fields.variants)
	}); err != nil {
		stage.Discard(ctx)
		return nil, asAPIError(err, "update product")
	}

	s.assets.Remove(ctx, "product", assets.Orphans(current.Image, final)...)

	return s.reload(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) (string, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, id)
	}); err != nil {
		return "", asAPIError(err, "delete product")
	}

	s.assets.Remove(ctx, "product", current.Image...)
	return productDeletedMessage, nil
}

type parsedFields struct {
	input      ProductInput
	name       string
	price      decimal.Decimal
	categoryID uint
	variants   []models.ProductVariant
}

// parseFields validates everything that can fail before a file is written.
func (s *service) parseFields(ctx context.Context, input ProductInput) (*parsedFields, error) {
	name := strings.TrimSpace(input.Name)
	price, ok := parsePrice(input.Price)
	if name == "" || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, nameAndPriceRequiredMessage)
	}
	categoryID, err := parseCategoryID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	variants, err := parseVariants(input.Variants)
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return &parsedFields{
		input:      input,
		name:       name,
		price:      price,
		categoryID: categoryID,
		variants:   variants,
	}, nil
}

func (f *parsedFields) model() *models.Product {
	return &models.Product{
		Name:        f.name,
		Description: f.input.Description,
		Price:       f.price,
		Brand:       optionalString(f.input.Brand),
		CategoryID:  f.categoryID,
		Volume:      optionalString(f.input.Volume),
		Type:        optionalString(f.input.Type),
		Group:       optionalString(f.input.Group),
		Diameter:    optionalString(f.input.Diameter),
		Height:      optionalString(f.input.Height),
		Length:      optionalString(f.input.Length),
	}
}

// keptGallery filters the client's kept list down to paths the product
// currently owns, preserving client order and dropping duplicates.
func (s *service) keptGallery(ctx context.Context, current *models.Product, requested []string) []string {
	owned := make(map[string]struct{}, len(current.Image))
	for _, p := range current.Image {
		owned[p] = struct{}{}
	}
	kept := make([]string, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, p := range requested {
		if _, ok := owned[p]; !ok {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"product_id": current.ID, "path": p}), "ignoring gallery path not owned by product")
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		kept = append(kept, p)
	}
	return kept
}

// checkReusableImage accepts an existingImage only when it is a stored product
// file that no other product or variant references.
func (s *service) checkReusableImage(ctx context.Context, p string) (string, error) {
	if !s.assets.Locator().Owns(blob.FolderProducts, p) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "existingImage must be a product image path")
	}
	exists, err := s.assets.Exists(ctx, p)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "check existingImage")
	}
	if !exists {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "existingImage does not exist")
	}
	inUse, err := s.repo.ImageInUse(ctx, p, 0)
	if err != nil {
		return "", err
	}
	if inUse {
		return "", pkgerrors.New(pkgerrors.CodeConflict, "existingImage belongs to another product")
	}
	return p, nil
}

func (s *service) reload(ctx context.Context, id uint) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product detail")
	}
	return FromModel(product), nil
}

func asAPIError(err error, op string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
}
