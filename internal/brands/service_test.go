package brands

import (
	"context"
	"testing"

	"github.com/tankstore/storefront-backend/pkg/db/dbtest"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(dbtest.Open(t).DB())
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestCreateBrandDerivesSlug(t *testing.T) {
	svc, _ := newTestService(t)

	brand, err := svc.Create(context.Background(), BrandInput{Name: " Blue Star "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if brand.Name != "Blue Star" || brand.Slug != "blue-star" {
		t.Fatalf("unexpected brand %+v", brand)
	}
}

func TestCreateBrandRejectsDuplicatesAndBlank(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, BrandInput{Name: "Crown"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Create(ctx, BrandInput{Name: "Crown"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict || typed.Message() != "Brand already exists" {
		t.Fatalf("expected conflict, got %v", err)
	}

	if _, err := svc.Create(ctx, BrandInput{Name: "   "}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListBrandsOrderedByName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for _, name := range []string{"Diamond", "Crown", "Aqua"} {
		if _, err := svc.Create(ctx, BrandInput{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Aqua", "Crown", "Diamond"}
	if len(list) != len(want) {
		t.Fatalf("expected %d brands, got %d", len(want), len(list))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Fatalf("position %d: expected %s got %s", i, name, list[i].Name)
		}
	}
}

func TestUpdateBrandKeepsSlug(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	crown, err := svc.Create(ctx, BrandInput{Name: "Crown"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, BrandInput{Name: "Diamond"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, crown.ID, BrandInput{Name: "Crown Tanks"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Crown Tanks" || updated.Slug != "crown" {
		t.Fatalf("unexpected brand %+v", updated)
	}

	stored, err := repo.FindByID(ctx, crown.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Name != "Crown Tanks" {
		t.Fatalf("expected rename to persist, got %q", stored.Name)
	}

	if _, err := svc.Update(ctx, crown.ID, BrandInput{Name: "Diamond"}); !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := svc.Update(ctx, 999, BrandInput{Name: "Nope"}); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Update(ctx, crown.ID, BrandInput{Name: "Crown Tanks"}); err != nil {
		t.Fatalf("renaming to own name should succeed: %v", err)
	}
}

func TestDeleteBrand(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	brand, err := svc.Create(ctx, BrandInput{Name: "Crown"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	msg, err := svc.Delete(ctx, brand.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if msg != "Brand deleted successfully" {
		t.Fatalf("unexpected message %q", msg)
	}

	_, err = svc.Delete(ctx, brand.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound || typed.Message() != "Brand not found" {
		t.Fatalf("expected not found, got %v", err)
	}
}
