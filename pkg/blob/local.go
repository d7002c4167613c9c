package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Local stores files on disk under root, mirroring the public path layout so
// that root can be served directly as static content.
type Local struct {
	root    string
	locator Locator
	namer   Namer
}

func NewLocal(root, publicPrefix string) (*Local, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("local blob root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve blob root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &Local{root: abs, locator: NewLocator(publicPrefix), namer: NewNamer()}, nil
}

// Root is the directory that holds the public prefix directory.
func (l *Local) Root() string {
	return l.root
}

func (l *Local) Locator() Locator {
	return l.locator
}

func (l *Local) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if err := ValidateFolder(folder); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := l.diskPath(l.locator.Prefix() + "/" + folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := l.namer.Name(filename)
	dest := filepath.Join(dir, name)
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return l.locator.PathFor(folder, name), nil
}

func (l *Local) Delete(ctx context.Context, p string) error {
	if _, _, err := l.locator.Split(p); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(l.diskPath(p)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", p, err)
	}
	return nil
}

func (l *Local) Exists(ctx context.Context, p string) (bool, error) {
	if _, _, err := l.locator.Split(p); err != nil {
		return false, err
	}
	info, err := os.Stat(l.diskPath(p))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", p, err)
	}
	return info.Mode().IsRegular(), nil
}

func (l *Local) List(ctx context.Context, folder string) ([]Object, error) {
	if err := ValidateFolder(folder); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(l.diskPath(l.locator.Prefix() + "/" + folder))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", folder, err)
	}

	objects := make([]Object, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		objects = append(objects, Object{
			Path:    l.locator.PathFor(folder, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Path < objects[j].Path })
	return objects, nil
}

func (l *Local) Ping(ctx context.Context) error {
	info, err := os.Stat(l.root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("blob root %s is not a directory", l.root)
	}
	return nil
}

func (l *Local) diskPath(p string) string {
	return filepath.Join(l.root, filepath.FromSlash(strings.TrimPrefix(p, "/")))
}
