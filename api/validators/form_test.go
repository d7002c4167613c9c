package validators

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type part struct {
	field, filename string
	body            []byte
}

func multipartRequest(t *testing.T, fields map[string]string, files ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, p := range files {
		fw, err := mw.CreateFormFile(p.field, p.filename)
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		fw.Write(p.body)
	}
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/categories", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseFormReadsFieldsAndImages(t *testing.T) {
	req := multipartRequest(t,
		map[string]string{"name": "Plastic Tank", "brandId": "null", "removeImage": "true", "displayName": ""},
		part{"images", "a.png", pngBytes},
		part{"gallery", "b.png", pngBytes},
	)
	form, err := ParseForm(httptest.NewRecorder(), req, 1<<20)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if form.Value("name") != "Plastic Tank" || !form.Bool("removeImage") {
		t.Fatalf("unexpected values")
	}
	if got := form.Optional("displayName"); got == nil || *got != "" {
		t.Fatalf("expected present empty displayName, got %v", got)
	}
	if form.Optional("uploadType") != nil {
		t.Fatalf("absent field reported present")
	}
	if id, err := form.NullableID("brandId"); err != nil || id != nil {
		t.Fatalf("expected nil brand id, got %v %v", id, err)
	}

	uploads, err := form.Images("images", "image", "gallery")
	if err != nil {
		t.Fatalf("images: %v", err)
	}
	if len(uploads) != 2 || uploads[0].Filename != "a.png" || uploads[1].Filename != "b.png" {
		t.Fatalf("unexpected uploads %+v", uploads)
	}
	rc, err := uploads[0].Open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if !bytes.Equal(body, pngBytes) {
		t.Fatalf("upload body changed by sniffing")
	}
}

func TestParseFormRejectsNonImages(t *testing.T) {
	req := multipartRequest(t, map[string]string{"name": "x"}, part{"image", "notes.txt", []byte("plain text, not an image")})
	form, err := ParseForm(httptest.NewRecorder(), req, 1<<20)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := form.Image("image"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseFormEnforcesLimit(t *testing.T) {
	req := multipartRequest(t, nil, part{"image", "big.png", append(pngBytes, make([]byte, 4096)...)})
	if _, err := ParseForm(httptest.NewRecorder(), req, 512); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for oversized body, got %v", err)
	}
}

func TestParseFormFallsBackToURLEncoded(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/api/categories/1", strings.NewReader(url.Values{"name": {"Steel"}, "brandId": {"7"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	form, err := ParseForm(httptest.NewRecorder(), req, 1<<20)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	id, err := form.NullableID("brandId")
	if err != nil || id == nil || *id != 7 {
		t.Fatalf("expected brand 7, got %v %v", id, err)
	}
	if uploads, err := form.Images("image"); err != nil || uploads != nil {
		t.Fatalf("expected no uploads, got %v %v", uploads, err)
	}
}

func TestNullableIDRejectsGarbage(t *testing.T) {
	req := multipartRequest(t, map[string]string{"brandId": "abc"})
	form, _ := ParseForm(httptest.NewRecorder(), req, 1<<20)
	if _, err := form.NullableID("brandId"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
