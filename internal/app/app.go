package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/stigmergic-org/simplepage-stats/internal/aggregators"
	"github.com/stigmergic-org/simplepage-stats/internal/comparators"
	internalhttp "github.com/stigmergic-org/simplepage-stats/internal/http"
	"github.com/stigmergic-org/simplepage-stats/internal/models"
	"github.com/stigmergic-org/simplepage-stats/internal/normalizers"
	"github.com/stigmergic-org/simplepage-stats/internal/pipelines"
	"github.com/stigmergic-org/simplepage-stats/internal/publishers"
	"github.com/stigmergic-org/simplepage-stats/internal/rankers"
	"github.com/stigmergic-org/simplepage-stats/internal/renderers"
	"github.com/stigmergic-org/simplepage-stats/internal/schedulers"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/configs"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/filestorages"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/loggers"
	"github.com/stigmergic-org/simplepage-stats/internal/sources"
	"github.com/stigmergic-org/simplepage-stats/internal/stores"
)

const appName = "simplepage-stats"

// Option customizes App construction.
type Option func(*options)

type options struct {
	logOutput io.Writer
	colored   bool
}

// WithLogOutput sends logs to w instead of stdout.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// WithColor enables ANSI colors in the terminal table.
func WithColor(colored bool) Option {
	return func(o *options) { o.colored = colored }
}

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server
	periods   []models.ReportingPeriod

	publisher     publishers.LeaderboardPublisher
	tableRenderer renderers.TableRenderer
	refreshWorker schedulers.RefreshWorker

	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config, opts ...Option) (*App, error) {
	o := options{logOutput: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	appLogger, err := loggers.NewWithWriter(config.Log.Level, o.logOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger = appLogger.With().
		Str(loggers.FieldApp, appName).
		Logger()

	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	snapshotStore := stores.NewSnapshotStore(fileStorage, config.Output.SnapshotKey)
	pageStore := stores.NewPageStore(fileStorage, config.Output.HTMLKey)

	// Leaderboard pipeline
	periods := models.DefaultPeriods()
	normalizer := normalizers.NewHostnameNormalizer(normalizers.DefaultRules())
	rowSource := sources.NewPlausibleClient(sources.PlausibleClientConfig{
		APIURL:  config.Plausible.APIURL,
		APIKey:  config.Plausible.APIKey,
		Timeout: time.Duration(config.Plausible.TimeoutSeconds) * time.Second,
	})
	leaderboardService := pipelines.NewLeaderboardService(
		rowSource,
		config.Plausible.SiteID,
		periods,
		aggregators.NewMetricAggregator(normalizer),
		comparators.NewPeriodComparator(),
		rankers.NewRankingSorter(),
	)
	publisher := publishers.NewLeaderboardPublisher(
		leaderboardService,
		snapshotStore,
		pageStore,
		renderers.NewHTMLRenderer(normalizer),
		periods,
	)

	workerLogger := appLogger.With().Str(loggers.FieldComponent, "scheduler").Logger()
	refreshWorker := schedulers.NewRefreshWorker(publisher, schedulers.RefreshWorkerConfig{
		Interval:   time.Duration(config.Refresh.IntervalMinutes) * time.Minute,
		RunOnStart: true,
	}, workerLogger)

	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(pageStore, snapshotStore, publisher, periods, httpLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	backgroundCtx, backgroundCancel := context.WithCancel(context.Background())

	return &App{
		config:           config,
		appLogger:        appLogger,
		server:           server,
		periods:          periods,
		publisher:        publisher,
		tableRenderer:    renderers.NewTableRenderer(o.colored),
		refreshWorker:    refreshWorker,
		backgroundCtx:    backgroundCtx,
		backgroundCancel: backgroundCancel,
	}, nil
}

// RunOnce builds and publishes the leaderboards once. Periods that could not be
// fetched are reported in the result; the returned error is set only when the
// snapshot or the page could not be published.
func (app *App) RunOnce(ctx context.Context) (*pipelines.BuildResult, error) {
	ctx = app.appLogger.With().Str(loggers.FieldComponent, "run").Logger().WithContext(ctx)

	result, svcErr := app.publisher.Publish(ctx, time.Now())
	if svcErr != nil {
		return result, svcErr
	}
	return result, nil
}

// PrintTable writes the leaderboards of result as terminal tables.
func (app *App) PrintTable(w io.Writer, result *pipelines.BuildResult) error {
	return app.tableRenderer.Render(w, result.Snapshot(), app.periods)
}

// Start runs the refresh worker and the HTTP server, blocking until the server stops.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting %s on port %d (log_level=%s, file_storage_root_dir=%s, refresh_interval_minutes=%d)",
			appName,
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.FileStorage.RootDir,
			app.config.Refresh.IntervalMinutes)

	app.refreshWorker.Start(app.backgroundCtx)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) stop accepting requests
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) cancel the in-flight refresh, then wait for the worker
	app.backgroundCancel()
	app.refreshWorker.Stop()
	app.appLogger.Info().Msg("Refresh worker stopped")

	return nil
}
