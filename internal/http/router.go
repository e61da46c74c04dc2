package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stigmergic-org/simplepage-stats/internal/models"
	"github.com/stigmergic-org/simplepage-stats/internal/publishers"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/loggers"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/metrics"
	"github.com/stigmergic-org/simplepage-stats/internal/stores"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	pageStore stores.PageStore,
	snapshotStore stores.SnapshotStore,
	publisher publishers.LeaderboardPublisher,
	periods []models.ReportingPeriod,
	httpLogger loggers.Logger,
) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	router.Get("/", errorHandlingAdapter(NewPageHandler(pageStore)))
	router.Get("/leaderboards", errorHandlingAdapter(NewSnapshotHandler(snapshotStore)))
	router.Get("/leaderboards/{"+paramPeriodKey+"}", errorHandlingAdapter(NewPeriodHandler(snapshotStore, periods)))
	router.Post("/refresh", errorHandlingAdapter(NewRefreshHandler(publisher)))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
