package products

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tankstore/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
)

const (
	nameAndPriceRequiredMessage = "Name and Price are required"
	invalidVariantsMessage      = "Invalid variants JSON format"
	invalidGalleryMessage       = "Invalid existingGallery JSON format"
)

type variantPayload struct {
	Name  string          `json:"name"`
	Price json.RawMessage `json:"price"`
	Stock json.RawMessage `json:"stock"`
	SKU   *string         `json:"sku"`
	Image *string         `json:"image"`
}

func parsePrice(raw string) (decimal.Decimal, bool) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, false
	}
	return price, true
}

func parseCategoryID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "categoryId must be a positive integer")
	}
	return uint(id), nil
}

// parseVariants decodes the variants form field. A blank field is an empty set.
func parseVariants(raw string) ([]models.ProductVariant, error) {
	if strings.TrimSpace(raw) == "" {
		return []models.ProductVariant{}, nil
	}
	var payload []variantPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, invalidVariantsMessage)
	}

	out := make([]models.ProductVariant, 0, len(payload))
	for i, v := range payload {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variant %d: name is required", i))
		}
		price, ok := numberField(v.Price)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variant %d: price must be numeric", i))
		}
		out = append(out, models.ProductVariant{
			Name:  name,
			Price: price,
			Stock: stockField(v.Stock),
			SKU:   optional(v.SKU),
			Image: optional(v.Image),
		})
	}
	return out, nil
}

// parseGallery decodes existingGallery. A blank field keeps nothing.
func parseGallery(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var paths []string
	if err := json.Unmarshal([]byte(raw), &paths); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, invalidGalleryMessage)
	}
	return paths, nil
}

// numberField accepts a JSON number or a numeric string.
func numberField(raw json.RawMessage) (decimal.Decimal, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, false
		}
		return parsePrice(s)
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// stockField truncates numeric input to an integer and falls back to zero.
func stockField(raw json.RawMessage) int {
	d, ok := numberField(raw)
	if !ok {
		return 0
	}
	f := d.Truncate(0).InexactFloat64()
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

func optional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func optionalString(v string) *string {
	return optional(&v)
}
