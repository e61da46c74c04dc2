package schedulers

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/stigmergic-org/simplepage-stats/internal/publishers"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/loggers"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/metrics"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/svcerrors"
)

const componentRefreshWorker = "refresh_worker"

type RefreshWorker interface {
	Start(ctx context.Context)
	Stop()
}

type RefreshWorkerConfig struct {
	Interval time.Duration
	// RunOnStart publishes once immediately instead of waiting for the first tick.
	RunOnStart bool
}

type refreshWorker struct {
	publisher publishers.LeaderboardPublisher
	config    RefreshWorkerConfig

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewRefreshWorker(publisher publishers.LeaderboardPublisher, config RefreshWorkerConfig, logger loggers.Logger) RefreshWorker {
	return &refreshWorker{
		publisher: publisher,
		config:    config,
		stopCh:    make(chan struct{}),
		logger:    logger.With().Str(loggers.FieldComponent, componentRefreshWorker).Logger(),
	}
}

// Start spawns the single worker goroutine. Ticks never overlap: a publish that
// outlasts the interval delays the next tick.
func (worker *refreshWorker) Start(ctx context.Context) {
	worker.wg.Add(1)
	go func() {
		defer worker.wg.Done()
		worker.run(ctx)
	}()
}

// Stop waits for the in-flight publish, if any, and the worker to return.
func (worker *refreshWorker) Stop() {
	worker.stopOnce.Do(func() { close(worker.stopCh) })
	worker.wg.Wait()
}

func (worker *refreshWorker) run(ctx context.Context) {
	worker.logger.Info().Msgf("refresh worker started, interval %s", worker.config.Interval)
	defer worker.logger.Info().Msg("refresh worker stopped")

	if worker.config.RunOnStart {
		worker.tick(ctx)
	}

	ticker := time.NewTicker(worker.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-worker.stopCh:
			return
		case <-ticker.C:
			worker.tick(ctx)
		}
	}
}

func (worker *refreshWorker) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			worker.logger.Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("refresh worker panic recovered: %v", r)

			panicErr, ok := r.(error)
			if !ok {
				panicErr = fmt.Errorf("%v", r)
			}
			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricRefreshTicksTotal.WithLabelValues(svcErr.Code).Inc()
		}
	}()

	ctx = worker.logger.WithContext(ctx)
	_, svcErr := worker.publisher.Publish(ctx, time.Now())
	if svcErr != nil {
		metricRefreshTicksTotal.WithLabelValues(svcErr.Code).Inc()
		return
	}
	metricRefreshTicksTotal.WithLabelValues(metrics.ValueNoError).Inc()
}
