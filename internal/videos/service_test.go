package videos

import (
	"context"
	"testing"
	"time"

	"github.com/tankstore/storefront-backend/pkg/db/dbtest"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
)

var fixedNow = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(dbtest.Open(t).DB()), func() time.Time { return fixedNow })
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestVideoLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, VideoInput{
		Title:    "Factory tour",
		VideoURL: "https://www.youtube.com/embed/abc",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.Date.Equal(fixedNow) {
		t.Fatalf("expected default date %v, got %v", fixedNow, created.Date)
	}

	thumb := "https://img.youtube.com/vi/abc/0.jpg"
	updated, err := svc.Update(ctx, created.ID, VideoInput{
		Title:     "Factory tour 2025",
		VideoURL:  "https://www.youtube.com/embed/xyz",
		Thumbnail: &thumb,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Factory tour 2025" || updated.Thumbnail == nil || *updated.Thumbnail != thumb {
		t.Fatalf("unexpected video %+v", updated)
	}

	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 || list[0].VideoURL != "https://www.youtube.com/embed/xyz" {
		t.Fatalf("unexpected list %+v %v", list, err)
	}

	msg, err := svc.Delete(ctx, created.ID)
	if err != nil || msg != "Video deleted" {
		t.Fatalf("unexpected delete %q %v", msg, err)
	}
	if _, err := svc.Delete(ctx, created.ID); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestVideoExplicitDateAndValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	date := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)

	created, err := svc.Create(ctx, VideoInput{Title: "Launch", VideoURL: "https://youtu.be/x", Date: &date})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.Date.Equal(date) {
		t.Fatalf("expected %v got %v", date, created.Date)
	}

	if _, err := svc.Create(ctx, VideoInput{VideoURL: "https://youtu.be/x"}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Update(ctx, 404, VideoInput{Title: "x", VideoURL: "https://youtu.be/x"}); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
