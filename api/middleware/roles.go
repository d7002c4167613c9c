package middleware

import (
	"net/http"
	"strings"

	"github.com/tankstore/storefront-backend/api/responses"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
	"github.com/tankstore/storefront-backend/pkg/logger"
)

// RequireRole rejects authenticated requests whose role differs from role.
// Requests with no actor at all only reach here when auth is disabled.
func RequireRole(role string, required bool, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !required {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.EqualFold(RoleFromContext(r.Context()), role) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
