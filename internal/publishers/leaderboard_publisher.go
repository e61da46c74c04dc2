package publishers

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/stigmergic-org/simplepage-stats/internal/models"
	"github.com/stigmergic-org/simplepage-stats/internal/pipelines"
	"github.com/stigmergic-org/simplepage-stats/internal/renderers"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/loggers"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/metrics"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/svcerrors"
	"github.com/stigmergic-org/simplepage-stats/internal/stores"
)

//go:generate mockgen -source=leaderboard_publisher.go -destination=./mocks/leaderboard_publisher_mock.go -package=mocks
type LeaderboardPublisher interface {
	// Publish builds the leaderboards for the windows ending on now, then persists the
	// snapshot and the rendered page. Failed periods do not fail the publish; only a
	// canceled ctx or a failure to render or persist does.
	Publish(ctx context.Context, now time.Time) (*pipelines.BuildResult, *svcerrors.ServiceError)
}

type leaderboardPublisher struct {
	leaderboardService pipelines.LeaderboardService
	snapshotStore      stores.SnapshotStore
	pageStore          stores.PageStore
	htmlRenderer       renderers.HTMLRenderer
	periods            []models.ReportingPeriod

	// serializes publishes so a scheduled and a manual refresh never interleave writes
	mu sync.Mutex
}

func NewLeaderboardPublisher(
	leaderboardService pipelines.LeaderboardService,
	snapshotStore stores.SnapshotStore,
	pageStore stores.PageStore,
	htmlRenderer renderers.HTMLRenderer,
	periods []models.ReportingPeriod,
) LeaderboardPublisher {
	return &leaderboardPublisher{
		leaderboardService: leaderboardService,
		snapshotStore:      snapshotStore,
		pageStore:          pageStore,
		htmlRenderer:       htmlRenderer,
		periods:            periods,
	}
}

func (p *leaderboardPublisher) Publish(ctx context.Context, now time.Time) (*pipelines.BuildResult, *svcerrors.ServiceError) {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := p.leaderboardService.Build(ctx, now)
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldRunID, result.RunID).Logger()

	// a build cut short by cancellation holds empty leaderboards, not an upstream outage,
	// so the last published files are kept
	if err := ctx.Err(); err != nil {
		svcErr := errPublishCanceled(err)
		logger.Warn().
			Err(err).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Msg("publish canceled, keeping the last published leaderboards")
		metricPublishTotal.WithLabelValues(svcErr.Code).Inc()
		return result, svcErr
	}

	svcErr := p.persist(ctx, result)
	if svcErr != nil {
		logger.Error().
			Err(svcErr.Cause).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Msg("failed to publish leaderboards")
		metricPublishTotal.WithLabelValues(svcErr.Code).Inc()
		return result, svcErr
	}

	failed := result.Failed()
	metricPublishTotal.WithLabelValues(metrics.ValueNoError).Inc()
	metricLastPublishTimestamp.WithLabelValues().Set(float64(now.Unix()))
	metricFailedPeriods.WithLabelValues().Set(float64(len(failed)))
	logger.Info().Strs("failed_periods", failed).Msg("published leaderboards")

	return result, nil
}

func (p *leaderboardPublisher) persist(ctx context.Context, result *pipelines.BuildResult) *svcerrors.ServiceError {
	snapshot := result.Snapshot()
	if err := p.snapshotStore.Put(ctx, snapshot); err != nil {
		return errInternalSnapshotStoreFailed(err)
	}

	var page bytes.Buffer
	if err := p.htmlRenderer.Render(&page, snapshot, p.periods, result.GeneratedAt); err != nil {
		return errInternalRenderFailed(err)
	}
	if err := p.pageStore.Put(ctx, page.Bytes()); err != nil {
		return errInternalPageStoreFailed(err)
	}
	return nil
}
