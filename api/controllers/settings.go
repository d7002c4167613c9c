package controllers

import (
	"net/http"

	"github.com/tankstore/storefront-backend/api/responses"
	"github.com/tankstore/storefront-backend/api/validators"
	"github.com/tankstore/storefront-backend/internal/settings"
	"github.com/tankstore/storefront-backend/pkg/logger"
)

func SettingsGet(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, current)
	}
}

func SettingsUpdate(svc settings.Service, maxUpload int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := validators.ParseForm(w, r, maxUpload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		files, err := form.Images("banner_files")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), settings.SettingsInput{
			Phone:           form.Value("phone"),
			Email:           form.Value("email"),
			Address:         form.Value("address"),
			MapURL:          form.Value("mapUrl"),
			FacebookURL:     form.Value("facebookUrl"),
			YoutubeURL:      form.Value("youtubeUrl"),
			BannersMetadata: form.Value("banners_metadata"),
			BannerFiles:     files,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}
