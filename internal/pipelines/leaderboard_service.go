package pipelines

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stigmergic-org/simplepage-stats/internal/aggregators"
	"github.com/stigmergic-org/simplepage-stats/internal/comparators"
	"github.com/stigmergic-org/simplepage-stats/internal/models"
	"github.com/stigmergic-org/simplepage-stats/internal/rankers"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/loggers"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/metrics"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/ulid"
	"github.com/stigmergic-org/simplepage-stats/internal/sources"
)

//go:generate mockgen -source=leaderboard_service.go -destination=./mocks/leaderboard_service_mock.go -package=mocks
type LeaderboardService interface {
	// Build computes the leaderboard of every configured period for the windows ending on today.
	// It always returns a result for every period; a period whose current window cannot be
	// fetched carries an empty leaderboard and its error.
	Build(ctx context.Context, today time.Time) *BuildResult
}

var errSourcePanicked = errors.New("row source panicked")

type leaderboardService struct {
	source     sources.RowSource
	siteID     string
	periods    []models.ReportingPeriod
	aggregator aggregators.MetricAggregator
	comparator comparators.PeriodComparator
	sorter     rankers.RankingSorter
}

func NewLeaderboardService(
	source sources.RowSource,
	siteID string,
	periods []models.ReportingPeriod,
	aggregator aggregators.MetricAggregator,
	comparator comparators.PeriodComparator,
	sorter rankers.RankingSorter,
) LeaderboardService {
	return &leaderboardService{
		source:     source,
		siteID:     siteID,
		periods:    periods,
		aggregator: aggregator,
		comparator: comparator,
		sorter:     sorter,
	}
}

func (s *leaderboardService) Build(ctx context.Context, today time.Time) *BuildResult {
	runID := ulid.NewULID()
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldRunID, runID).Logger()
	ctx = logger.WithContext(ctx)

	logger.Info().Msgf("building leaderboards for %d periods", len(s.periods))

	results := make([]PeriodResult, len(s.periods))
	var wg sync.WaitGroup
	for i, period := range s.periods {
		wg.Add(1)
		go func(i int, period models.ReportingPeriod) {
			defer wg.Done()
			results[i] = s.buildPeriodSafe(ctx, period, today)
		}(i, period)
	}
	wg.Wait()

	result := &BuildResult{RunID: runID, GeneratedAt: today, Periods: results}
	if failed := result.Failed(); len(failed) > 0 {
		logger.Warn().Strs("failed_periods", failed).Msg("finished building leaderboards with failed periods")
	} else {
		logger.Info().Msg("finished building leaderboards")
	}
	return result
}

// buildPeriodSafe turns a panic inside one period into that period's failure.
func (s *leaderboardService) buildPeriodSafe(ctx context.Context, period models.ReportingPeriod, today time.Time) (result PeriodResult) {
	defer func() {
		if r := recover(); r != nil {
			svcErr := errInternalPeriodPanicked(fmt.Errorf("%v", r))
			loggers.Ctx(ctx).Error().
				Str(loggers.FieldPeriodKey, period.Key).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Err(svcErr).
				Msg("building period panicked")
			metricPeriodBuildsTotal.WithLabelValues(period.Key, svcErr.Code).Inc()
			result = PeriodResult{Key: period.Key, Leaderboard: models.Leaderboard{}, Err: svcErr}
		}
	}()
	return s.buildPeriod(ctx, period, today)
}

func (s *leaderboardService) buildPeriod(ctx context.Context, period models.ReportingPeriod, today time.Time) PeriodResult {
	start := time.Now()
	defer func() {
		metricPeriodBuildDuration.WithLabelValues(period.Key).Observe(time.Since(start).Seconds())
	}()

	logger := loggers.Ctx(ctx).With().Str(loggers.FieldPeriodKey, period.Key).Logger()
	ctx = logger.WithContext(ctx)

	currentRange, previousRange := period.Windows(today)

	var current, previous WindowRows
	var currentErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		current.Rows, currentErr = s.fetchRows(ctx, currentRange)
	}()
	go func() {
		defer wg.Done()
		previous = s.fetchPrevious(ctx, period.Key, previousRange)
	}()
	wg.Wait()

	if currentErr != nil && ctx.Err() != nil {
		svcErr := errBuildCanceled(ctx.Err())
		logger.Warn().
			Str(loggers.FieldDateRange, currentRange.String()).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Err(currentErr).
			Msg("build canceled before the current window was fetched")
		metricWindowFetchTotal.WithLabelValues(period.Key, windowCurrent, outcomeCanceled).Inc()
		metricPeriodBuildsTotal.WithLabelValues(period.Key, svcErr.Code).Inc()
		return PeriodResult{Key: period.Key, Leaderboard: models.Leaderboard{}, Previous: previous.Outcome, Err: svcErr}
	}
	if currentErr != nil {
		svcErr := errCurrentWindowUnavailable(currentErr)
		if errors.Is(currentErr, errSourcePanicked) {
			svcErr = errInternalPeriodPanicked(currentErr)
		}
		logger.Error().
			Str(loggers.FieldWindow, windowCurrent).
			Str(loggers.FieldDateRange, currentRange.String()).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Err(currentErr).
			Msg("failed to fetch current window, publishing an empty leaderboard")
		metricWindowFetchTotal.WithLabelValues(period.Key, windowCurrent, outcomeFailed).Inc()
		metricPeriodBuildsTotal.WithLabelValues(period.Key, svcErr.Code).Inc()
		metricLeaderboardEntries.WithLabelValues(period.Key).Set(0)
		return PeriodResult{Key: period.Key, Leaderboard: models.Leaderboard{}, Previous: previous.Outcome, Err: svcErr}
	}
	current.Outcome = OutcomeOK
	metricWindowFetchTotal.WithLabelValues(period.Key, windowCurrent, outcomeOK).Inc()

	currentAggregate := s.aggregator.Aggregate(current.Rows)
	previousAggregate := s.aggregator.Aggregate(previous.Rows)
	changes := s.comparator.Compare(currentAggregate, previousAggregate)
	leaderboard := s.sorter.Rank(currentAggregate, changes)

	logger.Info().
		Int(loggers.FieldRowCount, len(current.Rows)).
		Str(loggers.FieldDateRange, currentRange.String()).
		Msgf("built leaderboard with %d entries", len(leaderboard))
	metricPeriodBuildsTotal.WithLabelValues(period.Key, metrics.ValueNoError).Inc()
	metricLeaderboardEntries.WithLabelValues(period.Key).Set(float64(len(leaderboard)))

	return PeriodResult{Key: period.Key, Leaderboard: leaderboard, Previous: previous.Outcome}
}

// fetchPrevious never fails: a source error becomes an empty fallback window so that
// every change of the period is reported as not applicable.
func (s *leaderboardService) fetchPrevious(ctx context.Context, periodKey string, dateRange models.DateRange) WindowRows {
	rows, err := s.fetchRows(ctx, dateRange)
	if err != nil {
		loggers.Ctx(ctx).Warn().
			Str(loggers.FieldWindow, windowPrevious).
			Str(loggers.FieldDateRange, dateRange.String()).
			Err(err).
			Msg("failed to fetch previous window, changes will be unavailable")
		metricWindowFetchTotal.WithLabelValues(periodKey, windowPrevious, outcomeFallback).Inc()
		return WindowRows{Rows: []models.RawRow{}, Outcome: OutcomeFallback, Cause: err}
	}
	metricWindowFetchTotal.WithLabelValues(periodKey, windowPrevious, outcomeOK).Inc()
	return WindowRows{Rows: rows, Outcome: OutcomeOK}
}

// fetchRows runs on its own goroutine, out of reach of buildPeriodSafe, so a panic in the
// source is recovered here and returned as an error wrapping errSourcePanicked.
func (s *leaderboardService) fetchRows(ctx context.Context, dateRange models.DateRange) (rows []models.RawRow, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("%w: %v", errSourcePanicked, r)
		}
	}()
	return s.source.FetchRows(ctx, s.siteID, dateRange)
}
