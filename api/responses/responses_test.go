package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
	"github.com/tankstore/storefront-backend/pkg/logger"
	"github.com/tankstore/storefront-backend/pkg/types"
)

func TestWriteSuccessWritesBareBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, []map[string]any{{"id": 1, "name": "Crown"}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 1 || body[0]["name"] != "Crown" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestWriteMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteMessage(w, "Brand deleted successfully")

	var body types.MessageBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != http.StatusOK || body.Message != "Brand deleted successfully" {
		t.Fatalf("unexpected response %d %+v", w.Code, body)
	}
}

func TestWriteErrorStatusByCode(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{pkgerrors.New(pkgerrors.CodeValidation, "Name and Price are required"), http.StatusBadRequest, "Name and Price are required"},
		{pkgerrors.New(pkgerrors.CodeConflict, "Brand already exists"), http.StatusBadRequest, "Brand already exists"},
		{pkgerrors.New(pkgerrors.CodeNotFound, "Category not found"), http.StatusNotFound, "Category not found"},
		{pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{pkgerrors.New(pkgerrors.CodeStorage, "failed to store uploaded file"), http.StatusInternalServerError, "failed to store uploaded file"},
		{errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		WriteError(context.Background(), logger.Nop(), w, tc.err)
		if w.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, w.Code)
		}
		var body types.ErrorBody
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Error != tc.message {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.message, body.Error)
		}
	}
}

func TestWriteErrorDetailsOnlyWhenAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{"name": "is required"}))
	var body types.ErrorBody
	_ = json.NewDecoder(w.Body).Decode(&body)
	if body.Code != "VALIDATION_ERROR" || body.Details == nil {
		t.Fatalf("expected validation details, got %+v", body)
	}

	w = httptest.NewRecorder()
	WriteError(context.Background(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "Brand not found").
		WithDetails(map[string]any{"id": 9}))
	body = types.ErrorBody{}
	_ = json.NewDecoder(w.Body).Decode(&body)
	if body.Details != nil {
		t.Fatalf("details leaked for NOT_FOUND: %+v", body.Details)
	}
}
