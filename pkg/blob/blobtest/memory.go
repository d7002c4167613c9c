// Package blobtest provides an in-memory blob.Store that records mutations.
package blobtest

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tankstore/storefront-backend/pkg/blob"
)

// ErrSaveFailed is returned by Save when the store is configured to fail.
var ErrSaveFailed = errors.New("blobtest: save failed")

// Memory keeps files in a map keyed by public path.
type Memory struct {
	mu      sync.Mutex
	locator blob.Locator
	namer   blob.Namer
	files   map[string]blob.Object
	data    map[string][]byte

	// FailSaveAfter makes the Nth and later saves fail when positive.
	FailSaveAfter int
	// DeleteErr forces Delete to fail for the given paths.
	DeleteErr map[string]error

	saves   int
	deletes []string
}

func NewMemory() *Memory {
	return &Memory{
		locator:   blob.NewLocator("/uploads"),
		namer:     blob.NewNamer(),
		files:     map[string]blob.Object{},
		data:      map[string][]byte{},
		DeleteErr: map[string]error{},
	}
}

func (m *Memory) Locator() blob.Locator {
	return m.locator
}

func (m *Memory) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if err := blob.ValidateFolder(folder); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.FailSaveAfter > 0 && m.saves >= m.FailSaveAfter {
		return "", ErrSaveFailed
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	p := m.locator.PathFor(folder, m.namer.Name(filename))
	m.files[p] = blob.Object{Path: p, Size: int64(len(body)), ModTime: time.Now()}
	m.data[p] = body
	return p, nil
}

func (m *Memory) Delete(ctx context.Context, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, p)
	if err := m.DeleteErr[p]; err != nil {
		return err
	}
	delete(m.files, p)
	delete(m.data, p)
	return nil
}

func (m *Memory) Exists(ctx context.Context, p string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[p]
	return ok, nil
}

func (m *Memory) List(ctx context.Context, folder string) ([]blob.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := m.locator.PathFor(folder, "")
	var out []blob.Object
	for p, obj := range m.files {
		if strings.HasPrefix(p, prefix) {
			out = append(out, obj)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

// Put seeds a file directly, bypassing naming.
func (m *Memory) Put(p string, body []byte, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[p] = blob.Object{Path: p, Size: int64(len(body)), ModTime: modTime}
	m.data[p] = body
}

// Paths returns every stored path, sorted.
func (m *Memory) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Saves counts Save calls, failed ones included.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Deletes returns every path passed to Delete, in call order.
func (m *Memory) Deletes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deletes...)
}
