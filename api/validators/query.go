package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
)

// PathID reads a positive integer route parameter.
func PathID(r *http.Request, key string) (uint, error) {
	return parseID(chi.URLParam(r, key), key)
}

// QueryID reads a required positive integer query parameter.
func QueryID(r *http.Request, key string) (uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "ID is required")
	}
	return parseID(raw, key)
}

// OptionalQueryID is QueryID that returns nil when the parameter is absent.
func OptionalQueryID(r *http.Request, key string) (*uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(raw, key)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseID(raw, key string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Invalid id").WithDetails(map[string]any{"field": key})
	}
	return uint(value), nil
}
