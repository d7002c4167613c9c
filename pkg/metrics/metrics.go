// Package metrics defines the Prometheus collectors shared by the API and the
// cron worker. Every recorder is safe to call on a nil receiver.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tankstore"

// register returns the collector already registered under the same
// descriptor when there is one, so a second constructor call reuses it.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var dup prometheus.AlreadyRegisteredError
		if errors.As(err, &dup) {
			if existing, ok := dup.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func label(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
