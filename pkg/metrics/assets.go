package metrics

import "github.com/prometheus/client_golang/prometheus"

// AssetMetrics counts blob cleanup outcomes. source is the operation that
// dropped the reference ("update", "delete", "sweep", ...).
type AssetMetrics struct {
	deleted *prometheus.CounterVec
	failed  *prometheus.CounterVec
}

func NewAssetMetrics(reg prometheus.Registerer) *AssetMetrics {
	if reg == nil {
		return nil
	}
	labels := []string{"folder", "source"}
	return &AssetMetrics{
		deleted: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "asset_cleanup_deleted_total",
			Help:      "Blob files deleted after losing their last reference.",
		}, labels)),
		failed: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "asset_cleanup_failed_total",
			Help:      "Blob deletions that failed and left an orphan behind.",
		}, labels)),
	}
}

func (a *AssetMetrics) IncDeleted(folder, source string) {
	if a != nil {
		a.deleted.WithLabelValues(label(folder), label(source)).Inc()
	}
}

func (a *AssetMetrics) IncFailed(folder, source string) {
	if a != nil {
		a.failed.WithLabelValues(label(folder), label(source)).Inc()
	}
}
