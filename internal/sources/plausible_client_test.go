package sources

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigmergic-org/simplepage-stats/internal/models"
)

func testDateRange() models.DateRange {
	return models.DateRange{
		From: time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
	}
}

func newTestClient(url string) RowSource {
	return NewPlausibleClient(PlausibleClientConfig{
		APIURL:  url,
		APIKey:  "secret-key",
		Timeout: 5 * time.Second,
	})
}

func TestPlausibleClient_FetchRows_SendsQuery(t *testing.T) {
	t.Parallel()

	type captured struct {
		method      string
		auth        string
		contentType string
		query       queryRequest
	}
	requests := make(chan captured, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := captured{
			method:      r.Method,
			auth:        r.Header.Get("Authorization"),
			contentType: r.Header.Get("Content-Type"),
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &c.query)
		requests <- c
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	rows, err := newTestClient(server.URL).FetchRows(context.Background(), "simplepage.eth.link", testDateRange())

	require.NoError(t, err)
	assert.Empty(t, rows)
	got := <-requests
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "Bearer secret-key", got.auth)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, queryRequest{
		SiteID:     "simplepage.eth.link",
		Metrics:    []string{"visitors"},
		Dimensions: []string{"event:hostname"},
		DateRange:  [2]string{"2026-10-11", "2026-10-18"},
	}, got.query)
}

func TestPlausibleClient_FetchRows_DecodesRows(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"results": [
				{"dimensions": ["vitalik.eth.limo"], "metrics": [120]},
				{"dimensions": ["nick.eth.link"], "metrics": [0]},
				{"dimensions": ["example.com"], "metrics": [7]}
			],
			"meta": {},
			"query": {}
		}`))
	}))
	defer server.Close()

	rows, err := newTestClient(server.URL).FetchRows(context.Background(), "site", testDateRange())

	require.NoError(t, err)
	assert.Equal(t, []models.RawRow{
		{Hostname: "vitalik.eth.limo", Visitors: 120},
		{Hostname: "nick.eth.link", Visitors: 0},
		{Hostname: "example.com", Visitors: 7},
	}, rows)
}

func TestPlausibleClient_FetchRows_SkipsMalformedRows(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"results": [
				{"dimensions": [], "metrics": [3]},
				{"dimensions": [42], "metrics": [3]},
				{"dimensions": [""], "metrics": [3]},
				{"dimensions": ["a.eth.link"], "metrics": []},
				{"dimensions": ["b.eth.link"], "metrics": ["3"]},
				{"dimensions": ["c.eth.link"], "metrics": [-1]},
				{"dimensions": ["d.eth.link"], "metrics": [1.5]},
				{"dimensions": ["e.eth.link"], "metrics": [null]},
				"not an object",
				{"dimensions": ["ok.eth.link"], "metrics": [9]}
			]
		}`))
	}))
	defer server.Close()

	rows, err := newTestClient(server.URL).FetchRows(context.Background(), "site", testDateRange())

	require.NoError(t, err)
	assert.Equal(t, []models.RawRow{{Hostname: "ok.eth.link", Visitors: 9}}, rows)
}

func TestPlausibleClient_FetchRows_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   FetchErrorKind
		wantStatus int
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"invalid api key"}`, wantKind: FetchErrorAuth, wantStatus: 401},
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, wantKind: FetchErrorAuth, wantStatus: 403},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{}`, wantKind: FetchErrorStatus, wantStatus: 429},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantKind: FetchErrorStatus, wantStatus: 500},
		{name: "invalid json", status: http.StatusOK, body: `<html>`, wantKind: FetchErrorParse},
		{name: "results of wrong type", status: http.StatusOK, body: `{"results": {"a": 1}}`, wantKind: FetchErrorParse},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			rows, err := newTestClient(server.URL).FetchRows(context.Background(), "site", testDateRange())

			assert.Nil(t, rows)
			var fetchErr *FetchError
			require.True(t, errors.As(err, &fetchErr))
			assert.Equal(t, tt.wantKind, fetchErr.Kind)
			assert.Equal(t, tt.wantStatus, fetchErr.StatusCode)
		})
	}
}

func TestPlausibleClient_FetchRows_TransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).FetchRows(context.Background(), "site", testDateRange())

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, FetchErrorTransport, fetchErr.Kind)
}

func TestPlausibleClient_FetchRows_CanceledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).FetchRows(ctx, "site", testDateRange())

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, FetchErrorTransport, fetchErr.Kind)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchError_Error(t *testing.T) {
	t.Parallel()

	withStatus := &FetchError{Kind: FetchErrorAuth, StatusCode: 401, Cause: errors.New("denied")}
	assert.Equal(t, "fetch rows failed (auth, http 401): denied", withStatus.Error())

	withoutStatus := &FetchError{Kind: FetchErrorParse, Cause: errors.New("bad json")}
	assert.Equal(t, "fetch rows failed (parse): bad json", withoutStatus.Error())
}
