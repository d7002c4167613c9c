package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/tankstore/storefront-backend/api/responses"
	"github.com/tankstore/storefront-backend/api/validators"
	"github.com/tankstore/storefront-backend/internal/videos"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
	"github.com/tankstore/storefront-backend/pkg/logger"
)

type videoRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	VideoURL    string  `json:"videoUrl" validate:"required"`
	Thumbnail   *string `json:"thumbnail"`
	Date        string  `json:"date"`
}

func (v videoRequest) toInput() (videos.VideoInput, error) {
	input := videos.VideoInput{
		Title:       v.Title,
		Description: v.Description,
		VideoURL:    v.VideoURL,
		Thumbnail:   v.Thumbnail,
	}
	raw := strings.TrimSpace(v.Date)
	if raw == "" {
		return input, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			input.Date = &t
			return input, nil
		}
	}
	return input, pkgerrors.New(pkgerrors.CodeValidation, "date is invalid")
}

func VideoList(svc videos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func VideoCreate(svc videos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeVideo(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		video, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, video)
	}
}

func VideoUpdate(svc videos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := decodeVideo(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		video, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, video)
	}
}

func VideoDelete(svc videos.Service, logg *logger.Logger) http.HandlerFunc {
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

func decodeVideo(r *http.Request) (videos.VideoInput, error) {
	var req videoRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		return videos.VideoInput{}, err
	}
	return req.toInput()
}
