package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tankstore/storefront-backend/internal/categories"
)

type stubCategoryService struct {
	categories.Service
	input *categories.CategoryInput
	id    uint
}

func (s *stubCategoryService) Create(_ context.Context, in categories.CategoryInput) (*categories.CategoryDTO, error) {
	s.input = &in
	return &categories.CategoryDTO{ID: 1, Name: in.Name, Slug: "plastic_tank"}, nil
}

func (s *stubCategoryService) Update(_ context.Context, id uint, in categories.CategoryInput) (*categories.CategoryDTO, error) {
	s.id, s.input = id, &in
	return &categories.CategoryDTO{ID: id, Name: in.Name}, nil
}

func (s *stubCategoryService) Delete(context.Context, uint) (string, error) {
	return "Category deleted successfully", nil
}

func TestCategoryCreateParsesForm(t *testing.T) {
	svc := &stubCategoryService{}
	req := formRequest(t, http.MethodPost, "/api/categories",
		map[string]string{"name": "Plastic Tank", "displayName": "Plastic", "brandId": "3", "uploadType": "category"},
		formFile{"image", "tank.png", pngBytes},
	)
	rec := httptest.NewRecorder()
	CategoryCreate(svc, testMaxUpload, testLogger).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	in := svc.input
	if in == nil || in.Name != "Plastic Tank" || in.DisplayName == nil || *in.DisplayName != "Plastic" {
		t.Fatalf("unexpected input %+v", in)
	}
	if in.BrandID == nil || *in.BrandID != 3 {
		t.Fatalf("expected brand 3, got %v", in.BrandID)
	}
	if in.Image == nil || in.Image.Filename != "tank.png" {
		t.Fatalf("expected image upload, got %+v", in.Image)
	}
}

func TestCategoryUpdateNullBrandAndRemoveImage(t *testing.T) {
	svc := &stubCategoryService{}
	req := withID(formRequest(t, http.MethodPut, "/api/categories/5",
		map[string]string{"name": "Steel", "brandId": "undefined", "removeImage": "true"}), "5")
	rec := httptest.NewRecorder()
	CategoryUpdate(svc, testMaxUpload, testLogger).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || svc.id != 5 {
		t.Fatalf("expected update of 5, got %d", rec.Code)
	}
	if svc.input.BrandID != nil || svc.input.Image != nil || !svc.input.RemoveImage {
		t.Fatalf("unexpected input %+v", svc.input)
	}
}

func TestCategoryCreateRejectsNonImageBeforeService(t *testing.T) {
	svc := &stubCategoryService{}
	req := formRequest(t, http.MethodPost, "/api/categories",
		map[string]string{"name": "Plastic"},
		formFile{"image", "evil.png", []byte("#!/bin/sh\necho nope\n")},
	)
	rec := httptest.NewRecorder()
	CategoryCreate(svc, testMaxUpload, testLogger).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.input != nil {
		t.Fatalf("service reached with a non-image upload")
	}
}

func TestCategoryDelete(t *testing.T) {
	rec := httptest.NewRecorder()
	CategoryDelete(&stubCategoryService{}, testLogger).ServeHTTP(rec, withID(httptest.NewRequest(http.MethodDelete, "/api/categories/2", nil), "2"))
	if msg := decodeMessage(t, rec); msg != "Category deleted successfully" {
		t.Fatalf("unexpected message %q", msg)
	}
}
