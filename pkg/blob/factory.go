package blob

import (
	"context"

	"github.com/tankstore/storefront-backend/pkg/config"
)

// New returns the backend selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	if cfg.IsMinIO() {
		return NewMinIO(ctx, cfg)
	}
	return NewLocal(cfg.LocalRoot, cfg.PublicPrefix)
}
