package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stigmergic-org/simplepage-stats/internal/models"
	"github.com/stigmergic-org/simplepage-stats/internal/pipelines"
	publishermocks "github.com/stigmergic-org/simplepage-stats/internal/publishers/mocks"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/loggers"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/svcerrors"
	"github.com/stigmergic-org/simplepage-stats/internal/stores"
	storemocks "github.com/stigmergic-org/simplepage-stats/internal/stores/mocks"
)

type routerMocks struct {
	pageStore     *storemocks.MockPageStore
	snapshotStore *storemocks.MockSnapshotStore
	publisher     *publishermocks.MockLeaderboardPublisher
}

func newTestRouter(ctrl *gomock.Controller) (http.Handler, routerMocks) {
	m := routerMocks{
		pageStore:     storemocks.NewMockPageStore(ctrl),
		snapshotStore: storemocks.NewMockSnapshotStore(ctrl),
		publisher:     publishermocks.NewMockLeaderboardPublisher(ctrl),
	}
	return NewRouter(m.pageStore, m.snapshotStore, m.publisher, models.DefaultPeriods(), loggers.Nop()), m
}

func serve(router http.Handler, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var errorResponse ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
	return errorResponse
}

func strPtr(s string) *string { return &s }

func TestRouter_GetPage(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(ctrl)
	m.pageStore.EXPECT().Get(gomock.Any()).Return([]byte("<!DOCTYPE html><title>SimplePage Leaderboard</title>"), nil)

	rr := serve(router, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, contentTypeHTML, rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rr.Header().Get("Cache-Control"))
	assert.Contains(t, rr.Body.String(), "SimplePage Leaderboard")
}

func TestRouter_GetPage_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		storeErr   error
		wantStatus int
		wantCode   string
	}{
		{name: "not published", storeErr: stores.ErrPageNotFound, wantStatus: http.StatusNotFound, wantCode: codePageNotPublished},
		{name: "store failure", storeErr: errors.New("permission denied"), wantStatus: http.StatusInternalServerError, wantCode: codeInternalPageStoreFailed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			router, m := newTestRouter(ctrl)
			m.pageStore.EXPECT().Get(gomock.Any()).Return(nil, tt.storeErr)

			rr := serve(router, http.MethodGet, "/")

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rr).ErrorCode)
		})
	}
}

func TestRouter_GetLeaderboards(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(ctrl)
	m.snapshotStore.EXPECT().Get(gomock.Any()).Return(models.Snapshot{
		"7d":   models.Leaderboard{{Domain: "vitalik.eth", Visitors: 120, Change: strPtr("-4.0")}},
		"30d":  models.Leaderboard{},
		"12mo": models.Leaderboard{},
	}, nil)

	rr := serve(router, http.MethodGet, "/leaderboards")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, contentTypeJSON, rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"7d":   [{"domain": "vitalik.eth", "visitors": 120, "change": "-4.0"}],
		"30d":  [],
		"12mo": []
	}`, rr.Body.String())
}

func TestRouter_GetLeaderboards_NotPublished(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(ctrl)
	m.snapshotStore.EXPECT().Get(gomock.Any()).Return(nil, stores.ErrSnapshotNotFound)

	rr := serve(router, http.MethodGet, "/leaderboards")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, codeSnapshotNotPublished, decodeError(t, rr).ErrorCode)
}

func TestRouter_GetPeriod(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(ctrl)
	m.snapshotStore.EXPECT().Get(gomock.Any()).Return(models.Snapshot{
		"30d": models.Leaderboard{
			{Domain: "vitalik.eth", Visitors: 500, Change: strPtr("10.0")},
			{Domain: "new.eth", Visitors: 20},
		},
	}, nil)

	rr := serve(router, http.MethodGet, "/leaderboards/30d")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"period": {"key": "30d", "label": "Month", "windowLengthDays": 30},
		"entries": [
			{"rank": 1, "domain": "vitalik.eth", "visitors": 500, "change": "10.0"},
			{"rank": 2, "domain": "new.eth", "visitors": 20, "change": null}
		]
	}`, rr.Body.String())
}

func TestRouter_GetPeriod_MissingFromSnapshot(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(ctrl)
	m.snapshotStore.EXPECT().Get(gomock.Any()).Return(models.Snapshot{}, nil)

	rr := serve(router, http.MethodGet, "/leaderboards/12mo")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"period": {"key": "12mo", "label": "Year", "windowLengthDays": 365}, "entries": []}`, rr.Body.String())
}

func TestRouter_GetPeriod_UnknownKey(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(ctrl)

	rr := serve(router, http.MethodGet, "/leaderboards/1d")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	errorResponse := decodeError(t, rr)
	assert.Equal(t, "not_found", errorResponse.ErrorCategory)
	assert.Equal(t, codeUnknownPeriod, errorResponse.ErrorCode)
}

func TestRouter_PostRefresh(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(ctrl)
	generatedAt := time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(&pipelines.BuildResult{
		RunID:       "01JAB3XKQ5M2V7Z8N9P0R1S2T3",
		GeneratedAt: generatedAt,
		Periods: []pipelines.PeriodResult{
			{Key: "7d", Leaderboard: models.Leaderboard{}},
			{Key: "30d", Leaderboard: models.Leaderboard{}, Err: svcerrors.NewUnavailableError("PIPE_5000", "current window could not be fetched", nil)},
		},
	}, nil)

	rr := serve(router, http.MethodPost, "/refresh")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"runId": "01JAB3XKQ5M2V7Z8N9P0R1S2T3",
		"generatedAt": "2026-10-18T06:00:00Z",
		"failedPeriods": ["30d"]
	}`, rr.Body.String())
}

func TestRouter_PostRefresh_PublishFails(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(ctrl)
	m.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Return(&pipelines.BuildResult{}, svcerrors.NewInternalError("PUB_9000", errors.New("disk full")))

	rr := serve(router, http.MethodPost, "/refresh")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "PUB_9000", decodeError(t, rr).ErrorCode)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(ctrl)

	rr := serve(router, http.MethodGet, "/refresh")

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(ctrl)

	// a first request so the http collectors have samples
	serve(router, http.MethodGet, "/leaderboards/unknown")
	rr := serve(router, http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "simplepage_stats_http_requests_total"))
}
