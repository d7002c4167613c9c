package controllers

import (
	"net/http"

	"github.com/tankstore/storefront-backend/api/responses"
	"github.com/tankstore/storefront-backend/api/validators"
	"github.com/tankstore/storefront-backend/internal/auth"
	"github.com/tankstore/storefront-backend/pkg/logger"
)

// Login exchanges credentials for an admin token.
func Login(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		resp, err := svc.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
