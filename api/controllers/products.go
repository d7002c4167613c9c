package controllers

import (
	"net/http"

	"github.com/tankstore/storefront-backend/api/responses"
	"github.com/tankstore/storefront-backend/api/validators"
	"github.com/tankstore/storefront-backend/internal/products"
	"github.com/tankstore/storefront-backend/pkg/logger"
)

// productFileFields are the multipart keys that may carry product images.
var productFileFields = []string{"images", "image", "gallery"}

func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.OptionalQueryID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.List(r.Context(), products.ListFilter{CategoryID: categoryID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ProductsByCategory serves GET /product/category?id=.
func ProductsByCategory(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.QueryID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.List(r.Context(), products.ListFilter{CategoryID: &id})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func ProductGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductCreate(svc products.Service, maxUpload int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := productInput(w, r, maxUpload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductUpdate(svc products.Service, maxUpload int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := productInput(w, r, maxUpload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
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

func PriceList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.OptionalQueryID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.PriceList(r.Context(), products.ListFilter{CategoryID: categoryID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func productInput(w http.ResponseWriter, r *http.Request, maxUpload int64) (products.ProductInput, error) {
	form, err := validators.ParseForm(w, r, maxUpload)
	if err != nil {
		return products.ProductInput{}, err
	}
	images, err := form.Images(productFileFields...)
	if err != nil {
		return products.ProductInput{}, err
	}
	return products.ProductInput{
		Name:            form.Value("name"),
		Description:     form.Value("description"),
		Price:           form.Value("price"),
		CategoryID:      form.Value("categoryId"),
		Brand:           form.Value("brand"),
		Volume:          form.Value("volume"),
		Type:            form.Value("type"),
		Group:           form.Value("group"),
		Diameter:        form.Value("diameter"),
		Height:          form.Value("height"),
		Length:          form.Value("length"),
		Variants:        form.Value("variants"),
		ExistingGallery: form.Value("existingGallery"),
		ExistingImage:   form.Value("existingImage"),
		Images:          images,
	}, nil
}
