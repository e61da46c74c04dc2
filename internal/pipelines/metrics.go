package pipelines

import (
	"github.com/stigmergic-org/simplepage-stats/internal/shared/metrics"
)

const (
	windowCurrent  = "current"
	windowPrevious = "previous"

	outcomeOK       = "ok"
	outcomeFailed   = "failed"
	outcomeFallback = "fallback"
	outcomeCanceled = "canceled"
)

var (
	// metricWindowFetchTotal counts window fetches by window and outcome.
	// A previous window that could not be fetched is reported as "fallback".
	metricWindowFetchTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "window_fetch_total",
		},
		[]string{metrics.FieldPeriodKey, metrics.FieldWindow, metrics.FieldOutcome},
	)

	metricPeriodBuildsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "period_builds_total",
		},
		[]string{metrics.FieldPeriodKey, metrics.FieldErrorCode},
	)

	metricPeriodBuildDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "period_build_latency",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldPeriodKey},
	)

	metricLeaderboardEntries = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "leaderboard_entries",
		},
		[]string{metrics.FieldPeriodKey},
	)
)
