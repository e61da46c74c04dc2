package stores

import (
	"github.com/stigmergic-org/simplepage-stats/internal/shared/metrics"
)

const (
	storeSnapshot = "snapshot"
	storePage     = "page"

	outcomeOK     = "ok"
	outcomeFailed = "failed"
)

var (
	metricStoreWritesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStore,
			Name:      "writes_total",
		},
		[]string{"store", metrics.FieldOutcome},
	)

	// metricStoreBytesWritten tracks the size of the last successful write per store.
	metricStoreBytesWritten = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStore,
			Name:      "last_write_bytes",
		},
		[]string{"store"},
	)
)
