// Package instance names the running process for logs and lock ownership.
package instance

import (
	"os"

	"github.com/tankstore/storefront-backend/pkg/env"
)

const fallbackID = "local"

// ID returns TANKSTORE_INSTANCE_ID, then DYNO, then the hostname.
func ID() string {
	if id := env.Get("TANKSTORE_INSTANCE_ID", env.Get("DYNO", "")); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return fallbackID
}
