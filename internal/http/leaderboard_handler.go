package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stigmergic-org/simplepage-stats/internal/models"
	"github.com/stigmergic-org/simplepage-stats/internal/publishers"
	"github.com/stigmergic-org/simplepage-stats/internal/stores"
)

const paramPeriodKey = "periodKey"

// PeriodResponse is the body of GET /leaderboards/{periodKey}.
//
// Example JSON:
//
//	{
//	  "period": {"key": "7d", "label": "Week", "windowLengthDays": 7},
//	  "entries": [{"rank": 1, "domain": "vitalik.eth", "visitors": 1204, "change": "12.3"}]
//	}
type PeriodResponse struct {
	Period  models.ReportingPeriod `json:"period"`
	Entries []RankedEntryResponse  `json:"entries"`
}

type RankedEntryResponse struct {
	Rank     int     `json:"rank"`
	Domain   string  `json:"domain"`
	Visitors int64   `json:"visitors"`
	Change   *string `json:"change"`
}

// RefreshResponse is the body of POST /refresh.
type RefreshResponse struct {
	RunID         string    `json:"runId"`
	GeneratedAt   time.Time `json:"generatedAt"`
	FailedPeriods []string  `json:"failedPeriods"`
}

type pageHandler struct {
	pageStore stores.PageStore
}

func NewPageHandler(pageStore stores.PageStore) AppHttpHandler {
	return &pageHandler{pageStore: pageStore}
}

// Handle serves GET / with the last published leaderboard page.
func (h *pageHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	page, err := h.pageStore.Get(r.Context())
	if err != nil {
		if errors.Is(err, stores.ErrPageNotFound) {
			return errPageNotPublished(err)
		}
		return errInternalPageStoreFailed(err)
	}

	setResponseHeaders(w, contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
	return nil
}

type snapshotHandler struct {
	snapshotStore stores.SnapshotStore
}

func NewSnapshotHandler(snapshotStore stores.SnapshotStore) AppHttpHandler {
	return &snapshotHandler{snapshotStore: snapshotStore}
}

// Handle serves GET /leaderboards with the last published snapshot, as in data.json.
func (h *snapshotHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	snapshot, err := getSnapshot(r, h.snapshotStore)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, snapshot)
	return nil
}

type periodHandler struct {
	snapshotStore stores.SnapshotStore
	periods       []models.ReportingPeriod
}

func NewPeriodHandler(snapshotStore stores.SnapshotStore, periods []models.ReportingPeriod) AppHttpHandler {
	return &periodHandler{snapshotStore: snapshotStore, periods: periods}
}

// Handle serves GET /leaderboards/{periodKey} with one ranked leaderboard.
func (h *periodHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	periodKey := chi.URLParam(r, paramPeriodKey)
	period, ok := findPeriod(h.periods, periodKey)
	if !ok {
		return errUnknownPeriod(periodKey)
	}

	snapshot, err := getSnapshot(r, h.snapshotStore)
	if err != nil {
		return err
	}

	leaderboard := snapshot[period.Key]
	entries := make([]RankedEntryResponse, 0, len(leaderboard))
	for i, entry := range leaderboard {
		entries = append(entries, RankedEntryResponse{
			Rank:     i + 1,
			Domain:   entry.Domain,
			Visitors: entry.Visitors,
			Change:   entry.Change,
		})
	}

	writeJSON(w, http.StatusOK, PeriodResponse{Period: period, Entries: entries})
	return nil
}

type refreshHandler struct {
	publisher publishers.LeaderboardPublisher
}

func NewRefreshHandler(publisher publishers.LeaderboardPublisher) AppHttpHandler {
	return &refreshHandler{publisher: publisher}
}

// Handle serves POST /refresh by building and publishing the leaderboards now.
// Periods that failed upstream are listed in the response; the request still succeeds.
func (h *refreshHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, svcErr := h.publisher.Publish(r.Context(), time.Now())
	if svcErr != nil {
		return svcErr
	}

	writeJSON(w, http.StatusOK, RefreshResponse{
		RunID:         result.RunID,
		GeneratedAt:   result.GeneratedAt.UTC(),
		FailedPeriods: result.Failed(),
	})
	return nil
}

func getSnapshot(r *http.Request, snapshotStore stores.SnapshotStore) (models.Snapshot, error) {
	snapshot, err := snapshotStore.Get(r.Context())
	if err != nil {
		if errors.Is(err, stores.ErrSnapshotNotFound) {
			return nil, errSnapshotNotPublished(err)
		}
		return nil, errInternalSnapshotStoreFailed(err)
	}
	return snapshot, nil
}

func findPeriod(periods []models.ReportingPeriod, key string) (models.ReportingPeriod, bool) {
	for _, period := range periods {
		if period.Key == key {
			return period, true
		}
	}
	return models.ReportingPeriod{}, false
}
