package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/tankstore/storefront-backend/internal/assets"
	"github.com/tankstore/storefront-backend/pkg/blob"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
)

const multipartMemory = 8 << 20

// Form is a parsed multipart (or urlencoded) request body.
type Form struct {
	r *http.Request
}

// ParseForm reads the request body, capped at maxBytes. Bodies that are not
// multipart fall back to urlencoded parsing so text-only updates still work.
func ParseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (*Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Upload too large").
			WithDetails(map[string]any{"limit_bytes": tooLarge.Limit})
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}
	return &Form{r: r}, nil
}

func (f *Form) Value(key string) string {
	return f.r.FormValue(key)
}

// Has reports whether the client sent the field at all, even empty.
func (f *Form) Has(key string) bool {
	if f.r.MultipartForm != nil {
		if _, ok := f.r.MultipartForm.Value[key]; ok {
			return true
		}
	}
	_, ok := f.r.PostForm[key]
	return ok
}

// Optional returns nil for an absent field.
func (f *Form) Optional(key string) *string {
	if !f.Has(key) {
		return nil
	}
	v := f.Value(key)
	return &v
}

func (f *Form) Bool(key string) bool {
	ok, _ := strconv.ParseBool(strings.TrimSpace(f.Value(key)))
	return ok || strings.EqualFold(strings.TrimSpace(f.Value(key)), "on")
}

// NullableID reads an id field where "", "null" and "undefined" all mean none.
func (f *Form) NullableID(key string) (*uint, error) {
	raw := strings.TrimSpace(f.Value(key))
	switch strings.ToLower(raw) {
	case "", "null", "undefined":
		return nil, nil
	}
	id, err := parseID(raw, key)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Images collects the files sent under any of keys, in key order. Each file
// must be an image; the check reads only the header and runs before any
// file is stored.
func (f *Form) Images(keys ...string) ([]assets.Upload, error) {
	if f.r.MultipartForm == nil {
		return nil, nil
	}
	var uploads []assets.Upload
	for _, key := range keys {
		for _, fh := range f.r.MultipartForm.File[key] {
			if err := checkImage(fh); err != nil {
				return nil, err
			}
			uploads = append(uploads, toUpload(fh))
		}
	}
	return uploads, nil
}

// Image returns the first file under key, or nil.
func (f *Form) Image(key string) (*assets.Upload, error) {
	uploads, err := f.Images(key)
	if err != nil || len(uploads) == 0 {
		return nil, err
	}
	return &uploads[0], nil
}

func checkImage(fh *multipart.FileHeader) error {
	file, err := fh.Open()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable upload")
	}
	defer file.Close()
	if _, _, err := blob.SniffImage(file); err != nil {
		if errors.Is(err, blob.ErrUnsupportedType) {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Only image files are allowed").
				WithDetails(map[string]any{"file": fh.Filename})
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable upload")
	}
	return nil
}

func toUpload(fh *multipart.FileHeader) assets.Upload {
	return assets.Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
