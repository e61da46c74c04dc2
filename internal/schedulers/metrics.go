package schedulers

import (
	"github.com/stigmergic-org/simplepage-stats/internal/shared/metrics"
)

var (
	// metricRefreshTicksTotal counts refresh ticks by the error code of the publish.
	// A panicking publish is recorded with SYS_9000.
	metricRefreshTicksTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubScheduler,
			Name:      "refresh_ticks_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
