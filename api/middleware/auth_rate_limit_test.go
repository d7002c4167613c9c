package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
	"github.com/tankstore/storefront-backend/pkg/types"
)

type fakeLimiter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newFakeLimiter() *fakeLimiter { return &fakeLimiter{counts: map[string]int64{}} }

func (f *fakeLimiter) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, 0, f.err
	}
	f.counts[scope]++
	return f.counts[scope] <= limit, f.counts[scope], nil
}

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil || !strings.Contains(string(body), "password") {
			t.Fatalf("login body not replayed: %q %v", body, err)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func loginRequest(body, addr string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.RemoteAddr = addr
	return req
}

func TestLoginRateLimitByIdentifier(t *testing.T) {
	limiter := newFakeLimiter()
	handler := LoginRateLimit(LoginRateLimitPolicy{Window: time.Minute, IdentifierLimit: 2}, limiter, nil)(okHandler(t))

	bodies := []string{
		`{"email":"Admin@Example.com","password":"x"}`,
		`{"username":"admin@example.com","password":"x"}`,
		`{"email":" admin@example.com ","password":"x"}`,
	}
	for i, body := range bodies {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest(body, "10.0.0.1:4000"))
		if i < 2 && rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i, rec.Code)
		}
		if i == 2 {
			if rec.Code != http.StatusTooManyRequests {
				t.Fatalf("expected 429, got %d", rec.Code)
			}
			var payload types.ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if payload.Code != string(pkgerrors.CodeRateLimit) {
				t.Fatalf("unexpected code %s", payload.Code)
			}
		}
	}
}

func TestLoginRateLimitByIP(t *testing.T) {
	limiter := newFakeLimiter()
	handler := LoginRateLimit(LoginRateLimitPolicy{Window: time.Minute, IPLimit: 1}, limiter, nil)(okHandler(t))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, loginRequest(`{"email":"a@b.c","password":"x"}`, "5.6.7.8:1234"))
	second := httptest.NewRecorder()
	req := loginRequest(`{"email":"other@b.c","password":"x"}`, "9.9.9.9:1")
	req.Header.Set("X-Forwarded-For", "5.6.7.8, 10.0.0.1")
	handler.ServeHTTP(second, req)

	if first.Code != http.StatusOK || second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 200 then 429, got %d then %d", first.Code, second.Code)
	}
}

func TestLoginRateLimitFailsOpen(t *testing.T) {
	limiter := newFakeLimiter()
	limiter.err = errors.New("redis down")
	handler := LoginRateLimit(LoginRateLimitPolicy{Window: time.Minute, IPLimit: 1, IdentifierLimit: 1}, limiter, nil)(okHandler(t))
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest(`{"email":"a@b.c","password":"x"}`, "1.1.1.1:1"))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected limiter outage to allow, got %d", rec.Code)
		}
	}
}

func TestLoginRateLimitDisabled(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	if got := LoginRateLimit(LoginRateLimitPolicy{Window: time.Minute, IPLimit: 1}, nil, nil)(next); got == nil {
		t.Fatalf("expected passthrough handler")
	}
	limiter := newFakeLimiter()
	handler := LoginRateLimit(LoginRateLimitPolicy{}, limiter, nil)(okHandler(t))
	handler.ServeHTTP(httptest.NewRecorder(), loginRequest(`{"password":"x"}`, "1.1.1.1:1"))
	if len(limiter.counts) != 0 {
		t.Fatalf("disabled policy still counted")
	}
}
