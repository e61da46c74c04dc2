package publishers

import (
	"github.com/stigmergic-org/simplepage-stats/internal/shared/metrics"
)

var (
	metricPublishTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPublisher,
			Name:      "publish_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricLastPublishTimestamp is the unix time of the last successful publish.
	metricLastPublishTimestamp = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPublisher,
			Name:      "last_publish_timestamp_seconds",
		},
		[]string{},
	)

	metricFailedPeriods = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPublisher,
			Name:      "failed_periods",
		},
		[]string{},
	)
)
