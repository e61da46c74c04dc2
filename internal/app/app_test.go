package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigmergic-org/simplepage-stats/internal/shared/configs"
)

// fakePlausible answers the current window of every period from rows, fails the
// current window of failingSpan days, and returns an empty previous window.
func fakePlausible(t *testing.T, rows string, failingSpan int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var query struct {
			DateRange [2]string `json:"date_range"`
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &query); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		from, _ := time.Parse("2006-01-02", query.DateRange[0])
		to, _ := time.Parse("2006-01-02", query.DateRange[1])
		span := int(to.Sub(from).Hours() / 24)
		isCurrent := query.DateRange[1] == time.Now().UTC().Format("2006-01-02")

		switch {
		case isCurrent && span == failingSpan:
			w.WriteHeader(http.StatusServiceUnavailable)
		case isCurrent:
			_, _ = w.Write([]byte(rows))
		default:
			_, _ = w.Write([]byte(`{"results": []}`))
		}
	}))
}

func testConfig(apiURL, rootDir string) *configs.Config {
	return &configs.Config{
		Server: configs.ServerConfig{
			Port:              8080,
			ReadHeaderTimeout: 5,
			ReadTimeout:       15,
			WriteTimeout:      60,
			IdleTimeout:       60,
		},
		Log: configs.LogConfig{Level: "info"},
		Plausible: configs.PlausibleConfig{
			APIURL:         apiURL,
			SiteID:         "simplepage.eth.link",
			APIKey:         "test-key",
			TimeoutSeconds: 5,
		},
		FileStorage: configs.FileStorageConfig{RootDir: rootDir},
		Output:      configs.OutputConfig{SnapshotKey: "data.json", HTMLKey: "index.html"},
		Refresh:     configs.RefreshConfig{IntervalMinutes: 1440},
	}
}

func TestNew_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	cfg := testConfig("http://localhost", t.TempDir())
	cfg.Log.Level = "loud"

	_, err := New(cfg, WithLogOutput(io.Discard))
	assert.ErrorContains(t, err, "failed to initialize logger")
}

func TestNew_InvalidRootDir(t *testing.T) {
	t.Parallel()

	cfg := testConfig("http://localhost", " ")

	_, err := New(cfg, WithLogOutput(io.Discard))
	assert.ErrorContains(t, err, "failed to initialize storage")
}

func TestApp_RunOnce_PublishesEveryPeriod(t *testing.T) {
	t.Parallel()

	server := fakePlausible(t, `{"results": [
		{"dimensions": ["vitalik.eth.link"], "metrics": [1200]},
		{"dimensions": ["vitalik.eth.limo"], "metrics": [34]},
		{"dimensions": ["demo.s.raffy.eth.limo"], "metrics": [7]},
		{"dimensions": ["simplepage.app"], "metrics": [9999]}
	]}`, 30)
	defer server.Close()

	rootDir := t.TempDir()
	var logs bytes.Buffer
	application, err := New(testConfig(server.URL, rootDir), WithLogOutput(&logs))
	require.NoError(t, err)

	result, err := application.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"30d"}, result.Failed())

	data, err := os.ReadFile(filepath.Join(rootDir, "data.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"7d": [
			{"domain": "vitalik.eth", "visitors": 1234, "change": null},
			{"domain": "demo.sepoliaens.eth", "visitors": 7, "change": null}
		],
		"30d": [],
		"12mo": [
			{"domain": "vitalik.eth", "visitors": 1234, "change": null},
			{"domain": "demo.sepoliaens.eth", "visitors": 7, "change": null}
		]
	}`, string(data))

	page, err := os.ReadFile(filepath.Join(rootDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>SimplePage Leaderboard</title>")
	assert.Contains(t, string(page), `<a href="https://vitalik.eth.link" target="_blank" rel="noopener">vitalik.eth</a>`)
	assert.Contains(t, string(page), `<tr data-net="testnet">`)

	assert.Contains(t, logs.String(), `"period_key":"30d"`)
	assert.Contains(t, logs.String(), "failed to fetch current window")

	var table bytes.Buffer
	require.NoError(t, application.PrintTable(&table, result))
	assert.Contains(t, table.String(), "1,234")
	assert.Contains(t, table.String(), "N/A")
}

func TestApp_RunOnce_PersistenceFailure(t *testing.T) {
	t.Parallel()

	server := fakePlausible(t, `{"results": []}`, 0)
	defer server.Close()

	rootDir := t.TempDir()
	cfg := testConfig(server.URL, rootDir)
	cfg.Output.SnapshotKey = "../outside.json"

	application, err := New(cfg, WithLogOutput(io.Discard))
	require.NoError(t, err)

	result, err := application.RunOnce(context.Background())
	require.Error(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result.Failed())
}

func TestApp_Shutdown_WithoutStart(t *testing.T) {
	t.Parallel()

	application, err := New(testConfig("http://localhost", t.TempDir()), WithLogOutput(io.Discard))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, application.Shutdown(ctx))
}
