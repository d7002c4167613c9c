package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
)

type brandBody struct {
	Name string `json:"name" validate:"required"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/brands", strings.NewReader(`{"name":"Crown","extra":1}`))
	var body brandBody
	if err := DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Name != "Crown" {
		t.Fatalf("unexpected body %+v", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/brands", strings.NewReader(`{}`))
	err := DecodeJSONBody(req, &brandBody{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation || typed.Message() != "name is required" {
		t.Fatalf("expected name validation error, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/brands", strings.NewReader(`{"name":`))
	if err := DecodeJSONBody(req, &brandBody{}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected malformed body error, got %v", err)
	}
}

func TestPathAndQueryIDs(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/product/category?id=4", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "12")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	if id, err := PathID(req, "id"); err != nil || id != 12 {
		t.Fatalf("path id: %v %v", id, err)
	}
	if id, err := QueryID(req, "id"); err != nil || id != 4 {
		t.Fatalf("query id: %v %v", id, err)
	}
	if id, err := OptionalQueryID(req, "categoryId"); err != nil || id != nil {
		t.Fatalf("optional id: %v %v", id, err)
	}

	missing := httptest.NewRequest(http.MethodGet, "/api/product/category", nil)
	err := func() error { _, err := QueryID(missing, "id"); return err }()
	if typed := pkgerrors.As(err); typed == nil || typed.Message() != "ID is required" {
		t.Fatalf("expected ID is required, got %v", err)
	}

	for _, raw := range []string{"0", "-1", "abc"} {
		bad := httptest.NewRequest(http.MethodGet, "/?id="+raw, nil)
		if _, err := QueryID(bad, "id"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("%q: expected validation error, got %v", raw, err)
		}
	}
}
