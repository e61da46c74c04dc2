package aggregators

import (
	"github.com/stigmergic-org/simplepage-stats/internal/models"
	"github.com/stigmergic-org/simplepage-stats/internal/normalizers"
)

type MetricAggregator interface {
	// Aggregate folds rows into summed visitors per canonical identity. Rows whose
	// hostname is not applicable, or whose count is negative, are dropped.
	Aggregate(rows []models.RawRow) models.AggregateMap
}

type metricAggregator struct {
	normalizer normalizers.HostnameNormalizer
}

func NewMetricAggregator(normalizer normalizers.HostnameNormalizer) MetricAggregator {
	return &metricAggregator{normalizer: normalizer}
}

func (a *metricAggregator) Aggregate(rows []models.RawRow) models.AggregateMap {
	result := make(models.AggregateMap)
	var accepted, notApplicable, malformed int

	for _, row := range rows {
		if row.Visitors < 0 {
			malformed++
			continue
		}
		identity, ok := a.normalizer.Normalize(row.Hostname)
		if !ok {
			notApplicable++
			continue
		}
		// several hostnames collapse into one identity: sum, never overwrite
		result[identity] += row.Visitors
		accepted++
	}

	metricRowsAggregatedTotal.WithLabelValues(outcomeAccepted).Add(float64(accepted))
	metricRowsAggregatedTotal.WithLabelValues(outcomeNotApplicable).Add(float64(notApplicable))
	metricRowsAggregatedTotal.WithLabelValues(outcomeMalformed).Add(float64(malformed))

	return result
}
