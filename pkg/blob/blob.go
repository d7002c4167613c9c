// Package blob stores uploaded image files and addresses them by a public
// path of the form /uploads/<folder>/<filename>.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"
)

// Known folders. Each entity type owns exactly one.
const (
	FolderCategories = "categories"
	FolderProducts   = "products"
	FolderBanners    = "banners"
)

// Folders lists every folder written by the catalog, in sweep order.
var Folders = []string{FolderCategories, FolderProducts, FolderBanners}

var (
	ErrInvalidFolder = errors.New("invalid blob folder")
	ErrInvalidPath   = errors.New("invalid blob path")
)

var folderRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Object describes a stored file.
type Object struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Store persists files under a folder and deletes them by path. Delete must
// not fail when the file is already gone.
type Store interface {
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	List(ctx context.Context, folder string) ([]Object, error)
	Ping(ctx context.Context) error
}

// ValidateFolder accepts a single lowercase path segment.
func ValidateFolder(folder string) error {
	if !folderRe.MatchString(folder) {
		return fmt.Errorf("%w: %q", ErrInvalidFolder, folder)
	}
	return nil
}

// Locator maps public paths to backend keys.
type Locator struct {
	prefix string
}

func NewLocator(publicPrefix string) Locator {
	prefix := "/" + strings.Trim(strings.TrimSpace(publicPrefix), "/")
	if prefix == "/" {
		prefix = "/uploads"
	}
	return Locator{prefix: prefix}
}

func (l Locator) Prefix() string {
	return l.prefix
}

// PathFor joins the public prefix, folder and filename.
func (l Locator) PathFor(folder, filename string) string {
	return l.prefix + "/" + folder + "/" + filename
}

// Split validates a public path and returns its folder and filename.
func (l Locator) Split(p string) (string, string, error) {
	if !strings.HasPrefix(p, l.prefix+"/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	if path.Clean(p) != p {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	rest := strings.TrimPrefix(p, l.prefix+"/")
	folder, filename, ok := strings.Cut(rest, "/")
	if !ok || filename == "" || strings.Contains(filename, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	if err := ValidateFolder(folder); err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return folder, filename, nil
}

// FolderOf returns the folder component of p, or "" when p is not a blob path.
func (l Locator) FolderOf(p string) string {
	folder, _, err := l.Split(p)
	if err != nil {
		return ""
	}
	return folder
}

// Owns reports whether p is a well-formed path inside folder.
func (l Locator) Owns(folder, p string) bool {
	got, _, err := l.Split(p)
	return err == nil && got == folder
}
