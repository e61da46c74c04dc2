package sources

import (
	"github.com/stigmergic-org/simplepage-stats/internal/shared/metrics"
)

const outcomeOK = "ok"

var (
	// metricFetchTotal counts provider queries by outcome: "ok" or a FetchErrorKind.
	metricFetchTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSource,
			Name:      "fetch_total",
		},
		[]string{metrics.FieldOutcome},
	)

	metricFetchDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSource,
			Name:      "fetch_latency",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldOutcome},
	)

	// metricRowsSkippedTotal counts result rows dropped because the hostname or the
	// visitor count was missing or of the wrong type.
	metricRowsSkippedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSource,
			Name:      "rows_skipped_total",
		},
		[]string{"reason"},
	)
)
