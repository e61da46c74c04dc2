package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stigmergic-org/simplepage-stats/internal/models"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/loggers"
)

const (
	maxResponseBytes  = 32 * 1024 * 1024
	maxErrorBodyBytes = 1024
	userAgent         = "simplepage-stats"

	metricVisitors     = "visitors"
	dimensionHostname  = "event:hostname"
	skipReasonHostname = "hostname"
	skipReasonVisitors = "visitors"
)

//go:generate mockgen -source=plausible_client.go -destination=./mocks/row_source_mock.go -package=mocks
type RowSource interface {
	// FetchRows returns per-hostname visitor counts of siteID for dateRange.
	// It fails with *FetchError when the window cannot be retrieved at all.
	FetchRows(ctx context.Context, siteID string, dateRange models.DateRange) ([]models.RawRow, error)
}

// PlausibleClientConfig configures the Plausible Stats API v2 client.
type PlausibleClientConfig struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

type plausibleClient struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
}

func NewPlausibleClient(cfg PlausibleClientConfig) RowSource {
	return &plausibleClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
	}
}

// queryRequest is the body of POST /api/v2/query.
//
// Example JSON:
//
//	{
//	  "site_id": "simplepage.eth.link",
//	  "metrics": ["visitors"],
//	  "dimensions": ["event:hostname"],
//	  "date_range": ["2026-10-11", "2026-10-18"]
//	}
type queryRequest struct {
	SiteID     string    `json:"site_id"`
	Metrics    []string  `json:"metrics"`
	Dimensions []string  `json:"dimensions"`
	DateRange  [2]string `json:"date_range"`
}

// queryResponse keeps results raw so one bad row cannot fail the whole window.
//
// Example JSON:
//
//	{"results": [{"dimensions": ["vitalik.eth.limo"], "metrics": [120]}]}
type queryResponse struct {
	Results []json.RawMessage `json:"results"`
}

type queryResult struct {
	Dimensions []json.RawMessage `json:"dimensions"`
	Metrics    []json.RawMessage `json:"metrics"`
}

func (c *plausibleClient) FetchRows(ctx context.Context, siteID string, dateRange models.DateRange) ([]models.RawRow, error) {
	start := time.Now()
	rows, err := c.fetchRows(ctx, siteID, dateRange)

	outcome := outcomeOK
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		outcome = string(fetchErr.Kind)
	}
	metricFetchTotal.WithLabelValues(outcome).Inc()
	metricFetchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return rows, err
}

func (c *plausibleClient) fetchRows(ctx context.Context, siteID string, dateRange models.DateRange) ([]models.RawRow, error) {
	logger := loggers.Ctx(ctx)

	body, err := json.Marshal(queryRequest{
		SiteID:     siteID,
		Metrics:    []string{metricVisitors},
		Dimensions: []string{dimensionHostname},
		DateRange:  [2]string{dateRange.FromDate(), dateRange.ToDate()},
	})
	if err != nil {
		return nil, &FetchError{Kind: FetchErrorTransport, Cause: fmt.Errorf("failed to encode query: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{Kind: FetchErrorTransport, Cause: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	logger.Debug().Msgf("querying plausible for site %s, date range %s", siteID, dateRange)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: FetchErrorTransport, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		kind := FetchErrorStatus
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = FetchErrorAuth
		}
		return nil, &FetchError{
			Kind:       kind,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(snippet))),
		}
	}

	var decoded queryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return nil, &FetchError{Kind: FetchErrorParse, Cause: fmt.Errorf("failed to decode response: %w", err)}
	}

	rows := make([]models.RawRow, 0, len(decoded.Results))
	for i, raw := range decoded.Results {
		row, reason := decodeRow(raw)
		if reason != "" {
			metricRowsSkippedTotal.WithLabelValues(reason).Inc()
			logger.Debug().Msgf("skipping malformed result at index %d: invalid %s", i, reason)
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// decodeRow extracts the hostname dimension and the visitors metric from one result.
// It returns a non-empty skip reason when the row is malformed.
func decodeRow(raw json.RawMessage) (models.RawRow, string) {
	var result queryResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return models.RawRow{}, skipReasonHostname
	}

	if len(result.Dimensions) == 0 {
		return models.RawRow{}, skipReasonHostname
	}
	var hostname string
	if err := json.Unmarshal(result.Dimensions[0], &hostname); err != nil || strings.TrimSpace(hostname) == "" {
		return models.RawRow{}, skipReasonHostname
	}

	if len(result.Metrics) == 0 {
		return models.RawRow{}, skipReasonVisitors
	}
	visitors, ok := decodeCount(result.Metrics[0])
	if !ok {
		return models.RawRow{}, skipReasonVisitors
	}

	return models.RawRow{Hostname: hostname, Visitors: visitors}, ""
}

// decodeCount accepts a JSON number holding a non-negative integer.
func decodeCount(raw json.RawMessage) (int64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] == '"' {
		return 0, false
	}
	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return 0, false
	}
	count, err := number.Int64()
	if err != nil || count < 0 {
		return 0, false
	}
	return count, true
}
