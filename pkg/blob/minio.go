package blob

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tankstore/storefront-backend/pkg/config"
)

type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// MinIO stores files in an S3-compatible bucket. The object key is the public
// path without its leading slash.
type MinIO struct {
	client  objectAPI
	bucket  string
	locator Locator
	namer   Namer
}

// NewMinIO connects to the configured endpoint and creates the bucket when missing.
func NewMinIO(ctx context.Context, cfg config.StorageConfig) (*MinIO, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
		Region: cfg.MinIORegion,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	store := newMinIOWithClient(client, cfg.MinIOBucket, cfg.PublicPrefix)
	if err := store.ensureBucket(ctx, cfg.MinIORegion); err != nil {
		return nil, err
	}
	return store, nil
}

func newMinIOWithClient(client objectAPI, bucket, publicPrefix string) *MinIO {
	return &MinIO{client: client, bucket: bucket, locator: NewLocator(publicPrefix), namer: NewNamer()}
}

func (m *MinIO) ensureBucket(ctx context.Context, region string) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.bucket, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", m.bucket, err)
	}
	return nil
}

func (m *MinIO) Locator() Locator {
	return m.locator
}

func (m *MinIO) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if err := ValidateFolder(folder); err != nil {
		return "", err
	}
	name := m.namer.Name(filename)
	p := m.locator.PathFor(folder, name)

	opts := minio.PutObjectOptions{ContentType: mime.TypeByExtension(filepath.Ext(name))}
	if opts.ContentType == "" {
		opts.ContentType = "application/octet-stream"
	}
	if _, err := m.client.PutObject(ctx, m.bucket, objectKey(p), r, -1, opts); err != nil {
		return "", fmt.Errorf("put object %s: %w", p, err)
	}
	return p, nil
}

// Delete relies on S3 semantics: removing a missing key succeeds.
func (m *MinIO) Delete(ctx context.Context, p string) error {
	if _, _, err := m.locator.Split(p); err != nil {
		return err
	}
	if err := m.client.RemoveObject(ctx, m.bucket, objectKey(p), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", p, err)
	}
	return nil
}

func (m *MinIO) Exists(ctx context.Context, p string) (bool, error) {
	if _, _, err := m.locator.Split(p); err != nil {
		return false, err
	}
	_, err := m.client.StatObject(ctx, m.bucket, objectKey(p), minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, fmt.Errorf("stat object %s: %w", p, err)
}

func (m *MinIO) List(ctx context.Context, folder string) ([]Object, error) {
	if err := ValidateFolder(folder); err != nil {
		return nil, err
	}
	prefix := objectKey(m.locator.Prefix()+"/"+folder) + "/"

	var objects []Object
	for info := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list objects %s: %w", folder, info.Err)
		}
		objects = append(objects, Object{
			Path:    "/" + info.Key,
			Size:    info.Size,
			ModTime: info.LastModified,
		})
	}
	return objects, nil
}

func (m *MinIO) Ping(ctx context.Context) error {
	ok, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", m.bucket)
	}
	return nil
}

func objectKey(p string) string {
	return strings.TrimPrefix(p, "/")
}
