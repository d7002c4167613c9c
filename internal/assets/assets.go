// Package assets sequences blob writes and deletes around catalog mutations:
// new files are written before the row, superseded files are removed after it,
// and removal failures are logged rather than returned.
package assets

import (
	"context"
	"fmt"
	"io"

	"github.com/tankstore/storefront-backend/pkg/blob"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
	"github.com/tankstore/storefront-backend/pkg/logger"
	"github.com/tankstore/storefront-backend/pkg/metrics"
)

// Upload is a file received from a client, opened lazily.
type Upload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// Orphans returns the paths of old that are absent from kept, in order and
// without duplicates. Empty paths are ignored.
func Orphans(old, kept []string) []string {
	keep := make(map[string]struct{}, len(kept))
	for _, p := range kept {
		keep[p] = struct{}{}
	}
	seen := make(map[string]struct{}, len(old))
	var out []string
	for _, p := range old {
		if p == "" {
			continue
		}
		if _, ok := keep[p]; ok {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Manager owns the blob store on behalf of the catalog services.
type Manager struct {
	store   blob.Store
	locator blob.Locator
	logg    *logger.Logger
	metrics *metrics.AssetMetrics
}

func NewManager(store blob.Store, locator blob.Locator, logg *logger.Logger, m *metrics.AssetMetrics) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("blob store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Manager{store: store, locator: locator, logg: logg, metrics: m}, nil
}

func (m *Manager) Locator() blob.Locator {
	return m.locator
}

func (m *Manager) Exists(ctx context.Context, path string) (bool, error) {
	return m.store.Exists(ctx, path)
}

// Stage starts a set of writes that can be discarded if the mutation fails.
func (m *Manager) Stage(folder string) *Stage {
	return &Stage{manager: m, folder: folder}
}

// Remove deletes paths best-effort. Failures are logged at warn level and
// counted; they never reach the caller. Cancellation of ctx does not stop it:
// the rows have already changed by the time cleanup runs.
func (m *Manager) Remove(ctx context.Context, source string, paths ...string) int {
	ctx = context.WithoutCancel(ctx)
	removed := 0
	for _, p := range paths {
		if p == "" {
			continue
		}
		folder := m.locator.FolderOf(p)
		if err := m.store.Delete(ctx, p); err != nil {
			m.metrics.IncFailed(folder, source)
			m.logg.WarnErr(m.logg.WithFields(ctx, map[string]any{"path": p, "source": source}), "orphan cleanup failed", err)
			continue
		}
		m.metrics.IncDeleted(folder, source)
		removed++
	}
	return removed
}

// Stage tracks files written during a single mutation.
type Stage struct {
	manager *Manager
	folder  string
	written []string
}

// Save writes one upload and remembers its path for Discard.
func (s *Stage) Save(ctx context.Context, upload Upload) (string, error) {
	if upload.Open == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "upload has no content")
	}
	rc, err := upload.Open()
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "open upload")
	}
	defer rc.Close()

	p, err := s.manager.store.Save(ctx, s.folder, upload.Filename, rc)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "save upload")
	}
	s.written = append(s.written, p)
	return p, nil
}

// SaveAll writes uploads in order. On failure the files written so far are
// discarded before the error is returned.
func (s *Stage) SaveAll(ctx context.Context, uploads []Upload) ([]string, error) {
	paths := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		p, err := s.Save(ctx, upload)
		if err != nil {
			s.Discard(ctx)
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Written returns every path saved through this stage.
func (s *Stage) Written() []string {
	return append([]string(nil), s.written...)
}

// Discard removes every file written through this stage.
func (s *Stage) Discard(ctx context.Context) {
	if len(s.written) == 0 {
		return
	}
	s.manager.Remove(ctx, "rollback", s.written...)
	s.written = nil
}
