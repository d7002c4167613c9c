// Package slugs derives URL slugs for brands, categories and products.
package slugs

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Brand slugs use hyphens: "Blue Star" -> "blue-star".
func Brand(name string) string {
	return slug.Make(name)
}

// Category slugs use underscores and are prefixed with the lowercased brand
// name when the category is brand-scoped: ("Crown", "Plastic Tank") ->
// "crown_plastic_tank"; ("", "Plastic Tank") -> "plastic_tank".
func Category(brandName, name string) string {
	base := underscored(name)
	if strings.TrimSpace(brandName) == "" {
		return base
	}
	prefix := whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(brandName)), "_")
	return prefix + "_" + base
}

// Product slugs are the lowercased name with whitespace runs replaced by "_",
// suffixed with the creation time in unix milliseconds.
func Product(name string, now time.Time) string {
	base := whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	return base + "_" + strconv.FormatInt(now.UnixMilli(), 10)
}

func underscored(name string) string {
	return slug.Make(strings.Join(strings.Fields(name), "_"))
}
