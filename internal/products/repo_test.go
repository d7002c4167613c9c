package products

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tankstore/storefront-backend/pkg/db/dbtest"
	"github.com/tankstore/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
)

func setupProductsRepo(t *testing.T) (*Repository, *gorm.DB, uint) {
	t.Helper()
	conn := dbtest.Open(t).DB()

	category := &models.Category{Name: "Stainless Steel", Slug: "stainless_steel"}
	require.NoError(t, conn.Create(category).Error)
	return NewRepository(conn), conn, category.ID
}

func seedProduct(t *testing.T, r *Repository, categoryID uint, slug string, gallery []string, variants ...models.ProductVariant) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:       slug,
		Slug:       slug,
		Price:      decimal.RequireFromString("2500"),
		Image:      gallery,
		CategoryID: categoryID,
		Variants:   variants,
	}
	require.NoError(t, r.Create(context.Background(), p))
	return p
}

func TestRepositoryCreateAndFind(t *testing.T) {
	r, _, categoryID := setupProductsRepo(t)
	ctx := context.Background()

	created := seedProduct(t, r, categoryID, "steel_tank", []string{"/uploads/products/a.png"},
		models.ProductVariant{Name: "1000L", Price: decimal.RequireFromString("3000"), Stock: 4})

	found, err := r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "steel_tank", found.Slug)
	assert.Equal(t, []string{"/uploads/products/a.png"}, []string(found.Image))
	require.Len(t, found.Variants, 1)
	assert.Equal(t, "1000L", found.Variants[0].Name)
	require.NotNil(t, found.Category)
	assert.Equal(t, categoryID, found.Category.ID)

	_, err = r.FindByID(ctx, created.ID+100)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestRepositoryListFiltersByCategory(t *testing.T) {
	r, conn, categoryID := setupProductsRepo(t)
	ctx := context.Background()

	other := &models.Category{Name: "Plastic", Slug: "plastic"}
	require.NoError(t, conn.Create(other).Error)

	seedProduct(t, r, categoryID, "first", nil)
	seedProduct(t, r, other.ID, "second", nil)
	seedProduct(t, r, categoryID, "third", nil)

	all, err := r.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Slug)

	filtered, err := r.List(ctx, ListFilter{CategoryID: &categoryID})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, p := range filtered {
		assert.Equal(t, categoryID, p.CategoryID)
	}
}

func TestRepositoryReplaceVariants(t *testing.T) {
	r, conn, categoryID := setupProductsRepo(t)
	ctx := context.Background()

	p := seedProduct(t, r, categoryID, "tank", nil,
		models.ProductVariant{Name: "a", Price: decimal.NewFromInt(1)},
		models.ProductVariant{Name: "b", Price: decimal.NewFromInt(2)},
	)

	err := conn.Transaction(func(tx *gorm.DB) error {
		return r.WithTx(tx).ReplaceVariants(ctx, p.ID, []models.ProductVariant{
			{ID: 99, Name: "c", Price: decimal.NewFromInt(3)},
		})
	})
	require.NoError(t, err)

	count, err := r.CountVariants(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, r.ReplaceVariants(ctx, p.ID, nil))
	count, err = r.CountVariants(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepositoryImageInUse(t *testing.T) {
	r, _, categoryID := setupProductsRepo(t)
	ctx := context.Background()

	variantImage := "/uploads/products/variant.png"
	owner := seedProduct(t, r, categoryID, "owner", []string{"/uploads/products/shared.png"},
		models.ProductVariant{Name: "v", Price: decimal.NewFromInt(1), Image: &variantImage})

	inUse, err := r.ImageInUse(ctx, "/uploads/products/shared.png", 0)
	require.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = r.ImageInUse(ctx, "/uploads/products/shared.png", owner.ID)
	require.NoError(t, err)
	assert.False(t, inUse)

	inUse, err = r.ImageInUse(ctx, variantImage, owner.ID)
	require.NoError(t, err)
	assert.True(t, inUse)

	paths, err := r.ImagePaths(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/uploads/products/shared.png", variantImage}, paths)
}

func TestRepositoryDeleteRemovesVariants(t *testing.T) {
	r, _, categoryID := setupProductsRepo(t)
	ctx := context.Background()

	p := seedProduct(t, r, categoryID, "gone", nil, models.ProductVariant{Name: "v", Price: decimal.NewFromInt(1)})
	require.NoError(t, r.Delete(ctx, p.ID))

	count, err := r.CountVariants(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = r.Delete(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
