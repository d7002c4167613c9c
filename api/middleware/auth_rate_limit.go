package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/tankstore/storefront-backend/api/responses"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
	"github.com/tankstore/storefront-backend/pkg/logger"
)

const maxLoginBody = 64 << 10

// RateLimiter counts hits per scope in fixed windows.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// LoginRateLimitPolicy bounds login attempts per client IP and per identifier.
type LoginRateLimitPolicy struct {
	Window          time.Duration
	IPLimit         int
	IdentifierLimit int
}

func (p LoginRateLimitPolicy) enabled() bool {
	return p.Window > 0 && (p.IPLimit > 0 || p.IdentifierLimit > 0)
}

// LoginRateLimit throttles login attempts. A nil limiter disables it.
// Limiter outages fail open: the attempt is logged and allowed.
func LoginRateLimit(policy LoginRateLimitPolicy, limiter RateLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil || !policy.enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if policy.IPLimit > 0 {
				if ip := clientIP(r); ip != "" {
					if !check(ctx, limiter, logg, w, "login:ip:"+ip, policy.IPLimit, policy.Window) {
						return
					}
				}
			}

			if policy.IdentifierLimit > 0 {
				body, err := io.ReadAll(io.LimitReader(r.Body, maxLoginBody))
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
				if id := loginIdentifier(body); id != "" {
					if !check(ctx, limiter, logg, w, "login:id:"+hashValue(id), policy.IdentifierLimit, policy.Window) {
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func check(ctx context.Context, limiter RateLimiter, logg *logger.Logger, w http.ResponseWriter, scope string, limit int, window time.Duration) bool {
	allowed, count, err := limiter.FixedWindowAllow(ctx, scope, int64(limit), window)
	if err != nil {
		if logg != nil {
			logg.WarnErr(logg.WithField(ctx, "scope", scope), "login rate limiter unavailable", err)
		}
		return true
	}
	if allowed {
		return true
	}
	if logg != nil {
		logg.Warn(logg.WithFields(ctx, map[string]any{
			"scope":    scope,
			"attempts": count,
			"limit":    limit,
		}), "login.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "Too many login attempts, try again later"))
	return false
}

func clientIP(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		first, _, _ := strings.Cut(header, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func loginIdentifier(payload []byte) string {
	var body struct {
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	id := body.Email
	if strings.TrimSpace(id) == "" {
		id = body.Username
	}
	return strings.ToLower(strings.TrimSpace(id))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:16])
}
