package aggregators

import (
	"github.com/stigmergic-org/simplepage-stats/internal/shared/metrics"
)

const (
	outcomeAccepted      = "accepted"
	outcomeNotApplicable = "not_applicable"
	outcomeMalformed     = "malformed"
)

// metricRowsAggregatedTotal counts raw hostname rows seen by the aggregator.
//
// The outcome label is one of:
//   - "accepted": the hostname normalized to a canonical identity and its visitors were summed
//   - "not_applicable": the hostname is not served through a recognized gateway (silently dropped)
//   - "malformed": the row carried a negative visitor count (dropped)
//
// Example: rows [("a.eth.link", 5), ("a.eth.limo", 3), ("example.com", 9)] add 2 to
// "accepted" and 1 to "not_applicable", and yield {"a.eth": 8}.
var (
	metricRowsAggregatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "rows_aggregated_total",
		},
		[]string{metrics.FieldOutcome},
	)
)
