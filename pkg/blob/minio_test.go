package blob

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
)

type fakeObjectAPI struct {
	bucketExists bool
	madeBucket   string
	objects      map[string][]byte
	putOpts      minio.PutObjectOptions
	removeErr    error
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{bucketExists: true, objects: map[string][]byte{}}
}

func (f *fakeObjectAPI) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return f.bucketExists, nil
}

func (f *fakeObjectAPI) MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
	f.madeBucket = bucket
	f.bucketExists = true
	return nil
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[key] = data
	f.putOpts = opts
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: int64(len(data))}, nil
}

func (f *fakeObjectAPI) RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeObjectAPI) StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	data, ok := f.objects[key]
	if !ok {
		return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
	}
	return minio.ObjectInfo{Key: key, Size: int64(len(data))}, nil
}

func (f *fakeObjectAPI) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(f.objects))
	for key, data := range f.objects {
		if strings.HasPrefix(key, opts.Prefix) {
			ch <- minio.ObjectInfo{Key: key, Size: int64(len(data)), LastModified: time.Unix(1700000000, 0)}
		}
	}
	close(ch)
	return ch
}

func TestMinIOSaveExistsDelete(t *testing.T) {
	ctx := context.Background()
	api := newFakeObjectAPI()
	store := newMinIOWithClient(api, "tankstore", "/uploads")

	p, err := store.Save(ctx, FolderProducts, "Tank.JPG", strings.NewReader("jpeg"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(p, "/uploads/products/Tank-") {
		t.Fatalf("unexpected path %q", p)
	}
	if _, ok := api.objects[strings.TrimPrefix(p, "/")]; !ok {
		t.Fatalf("expected object key without leading slash")
	}
	if api.putOpts.ContentType != "image/jpeg" {
		t.Fatalf("unexpected content type %q", api.putOpts.ContentType)
	}

	ok, err := store.Exists(ctx, p)
	if err != nil || !ok {
		t.Fatalf("expected object to exist, ok=%v err=%v", ok, err)
	}

	objects, err := store.List(ctx, FolderProducts)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(objects) != 1 || objects[0].Path != p {
		t.Fatalf("unexpected listing %+v", objects)
	}

	if err := store.Delete(ctx, p); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	ok, err = store.Exists(ctx, p)
	if err != nil || ok {
		t.Fatalf("expected object to be gone, ok=%v err=%v", ok, err)
	}
}

func TestMinIODeleteSurfacesBackendErrors(t *testing.T) {
	api := newFakeObjectAPI()
	api.removeErr = errors.New("access denied")
	store := newMinIOWithClient(api, "tankstore", "/uploads")

	if err := store.Delete(context.Background(), "/uploads/banners/a.png"); err == nil {
		t.Fatalf("expected backend error")
	}
}

func TestMinIOEnsureBucketCreatesMissing(t *testing.T) {
	api := newFakeObjectAPI()
	api.bucketExists = false
	store := newMinIOWithClient(api, "tankstore", "/uploads")

	if err := store.ensureBucket(context.Background(), ""); err != nil {
		t.Fatalf("ensureBucket: %v", err)
	}
	if api.madeBucket != "tankstore" {
		t.Fatalf("expected bucket to be created, got %q", api.madeBucket)
	}
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
