package controllers

import (
	"net/http"

	"github.com/tankstore/storefront-backend/api/responses"
	"github.com/tankstore/storefront-backend/api/validators"
	"github.com/tankstore/storefront-backend/internal/categories"
	"github.com/tankstore/storefront-backend/pkg/logger"
)

func CategoryList(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func CategoryCreate(svc categories.Service, maxUpload int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := categoryInput(w, r, maxUpload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

func CategoryUpdate(svc categories.Service, maxUpload int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := categoryInput(w, r, maxUpload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

func CategoryDelete(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		msg, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, msg)
	}
}

// categoryInput reads the category form. uploadType is accepted and ignored;
// category images always land in the categories folder.
func categoryInput(w http.ResponseWriter, r *http.Request, maxUpload int64) (categories.CategoryInput, error) {
	form, err := validators.ParseForm(w, r, maxUpload)
	if err != nil {
		return categories.CategoryInput{}, err
	}
	brandID, err := form.NullableID("brandId")
	if err != nil {
		return categories.CategoryInput{}, err
	}
	image, err := form.Image("image")
	if err != nil {
		return categories.CategoryInput{}, err
	}
	return categories.CategoryInput{
		Name:        form.Value("name"),
		DisplayName: form.Optional("displayName"),
		BrandID:     brandID,
		Image:       image,
		RemoveImage: form.Bool("removeImage"),
	}, nil
}
