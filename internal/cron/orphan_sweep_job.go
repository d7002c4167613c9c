package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/tankstore/storefront-backend/pkg/blob"
	"github.com/tankstore/storefront-backend/pkg/logger"
	"github.com/tankstore/storefront-backend/pkg/metrics"
)

const (
	orphanSweepJobName = "orphan-sweep"
	sweepSource        = "sweep"
	defaultGracePeriod = 24 * time.Hour
)

// ReferenceSource reports the blob paths a table currently points at.
type ReferenceSource interface {
	ImagePaths(ctx context.Context) ([]string, error)
}

type OrphanSweepParams struct {
	Logger      *logger.Logger
	Store       blob.Store
	References  []ReferenceSource
	Folders     []string
	GracePeriod time.Duration
	Metrics     *metrics.AssetMetrics
}

// OrphanSweepJob deletes stored files that no row references and that are
// older than the grace period. Younger files may belong to a request that
// has written its file but not yet committed its row.
type OrphanSweepJob struct {
	logg    *logger.Logger
	store   blob.Store
	refs    []ReferenceSource
	folders []string
	grace   time.Duration
	metrics *metrics.AssetMetrics
	now     func() time.Time
}

func NewOrphanSweepJob(params OrphanSweepParams) (*OrphanSweepJob, error) {
	if params.Logger == nil {
		return nil, errors.New("logger required")
	}
	if params.Store == nil {
		return nil, errors.New("blob store required")
	}
	if len(params.References) == 0 {
		return nil, errors.New("at least one reference source required")
	}
	folders := params.Folders
	if len(folders) == 0 {
		folders = blob.Folders
	}
	grace := params.GracePeriod
	if grace <= 0 {
		grace = defaultGracePeriod
	}
	return &OrphanSweepJob{
		logg:    params.Logger,
		store:   params.Store,
		refs:    params.References,
		folders: folders,
		grace:   grace,
		metrics: params.Metrics,
		now:     time.Now,
	}, nil
}

func (j *OrphanSweepJob) Name() string { return orphanSweepJobName }

// Run never deletes anything unless every reference source was read.
func (j *OrphanSweepJob) Run(ctx context.Context) error {
	referenced, err := j.referenced(ctx)
	if err != nil {
		return err
	}
	cutoff := j.now().Add(-j.grace)

	var (
		errs    error
		scanned int
		deleted int
	)
	for _, folder := range j.folders {
		objects, err := j.store.List(ctx, folder)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("list %s: %w", folder, err))
			continue
		}
		for _, obj := range objects {
			scanned++
			if _, ok := referenced[obj.Path]; ok || obj.ModTime.After(cutoff) {
				continue
			}
			if err := j.store.Delete(ctx, obj.Path); err != nil {
				j.metrics.IncFailed(folder, sweepSource)
				errs = multierr.Append(errs, fmt.Errorf("delete %s: %w", obj.Path, err))
				continue
			}
			j.metrics.IncDeleted(folder, sweepSource)
			deleted++
		}
	}

	summary := j.logg.WithFields(ctx, map[string]any{
		"scanned":    scanned,
		"referenced": len(referenced),
		"deleted":    deleted,
		"failed":     len(multierr.Errors(errs)),
	})
	j.logg.Info(summary, "orphan sweep finished")
	return errs
}

func (j *OrphanSweepJob) referenced(ctx context.Context) (map[string]struct{}, error) {
	set := map[string]struct{}{}
	for _, src := range j.refs {
		paths, err := src.ImagePaths(ctx)
		if err != nil {
			return nil, fmt.Errorf("collect referenced paths: %w", err)
		}
		for _, p := range paths {
			if p != "" {
				set[p] = struct{}{}
			}
		}
	}
	return set, nil
}
