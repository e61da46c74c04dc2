package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// The fake provider serves the same rows for every period so the expected leaderboard
// is identical for 7d, 30d and 12mo.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
var (
	currentRows = map[string]int64{
		"vitalik.eth.limo":       300,
		"vitalik.eth.link":       200,
		"nick.eth.link":          350,
		"bob.eth.limo":           120,
		"alice.s.raffy.eth.limo": 90,
		"example.com":            999,
	}
	previousRows = map[string]int64{
		"vitalik.eth.link": 400,
		"nick.eth.limo":    350,
		"bob.eth.link":     160,
	}
	expectedEntries = []expectedEntry{
		{Rank: 1, Domain: "vitalik.eth", Visitors: 500, Change: strPtr("25.0")},
		{Rank: 2, Domain: "nick.eth", Visitors: 350, Change: strPtr("0.0")},
		{Rank: 3, Domain: "bob.eth", Visitors: 120, Change: strPtr("-25.0")},
		{Rank: 4, Domain: "alice.sepoliaens.eth", Visitors: 90, Change: nil},
	}
	periodKeys = []string{"7d", "30d", "12mo"}
)

// ### End - fixed configs

type expectedEntry struct {
	Rank     int     `json:"rank"`
	Domain   string  `json:"domain"`
	Visitors int64   `json:"visitors"`
	Change   *string `json:"change"`
}

type periodResponse struct {
	Entries []expectedEntry `json:"entries"`
}

type refreshResponse struct {
	RunID         string   `json:"runId"`
	FailedPeriods []string `json:"failedPeriods"`
}

type queryRequest struct {
	SiteID    string    `json:"site_id"`
	DateRange [2]string `json:"date_range"`
}

// main runs the e2e scenario: 001_basic_leaderboard_refresh
//
// This scenario starts a fake Plausible query API and drives a running service
// against it. Start the service first with the provider pointed at the fake:
//
//	SIMPLEPAGE_PLAUSIBLE_API_URL=http://localhost:8090/api/v2/query \
//	SIMPLEPAGE_FILE_STORAGE_ROOT_DIR=.tmp/file-storage \
//	go run ./cmd/simplepage-stats serve
//
// What it tests:
//   - Concurrent POST /refresh requests are serialized and all succeed
//   - Gateway hostnames collapse into ENS names, foreign hostnames are dropped
//   - Delegated testnet names are rewritten to their own suffix
//   - Percentage change is computed against the previous window, null without a baseline
//   - GET /leaderboards/{periodKey} returns the ranked entries
//   - data.json and index.html are published into the file storage directory
//
// Expected results:
//   - Every period ranks vitalik.eth (500), nick.eth (350), bob.eth (120), alice.sepoliaens.eth (90)
//   - No refresh reports a failed period
//   - data.json holds the same entries as the HTTP API for every period
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080"    // Base URL of the simplepage-stats server
	fakeProviderAddr := "localhost:8090"  // Address the fake Plausible API listens on
	refreshes := 8                        // Number of POST /refresh requests to send
	parallel := 4                         // Number of concurrent refresh requests
	fileStorageDir := ".tmp/file-storage" // File storage directory path relative to project root

	projectRoot, err := findProjectRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	storagePath := filepath.Join(projectRoot, fileStorageDir)

	fmt.Println("Starting e2e scenario: 001_basic_leaderboard_refresh")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("FAKE_PROVIDER_ADDR: %s\n", fakeProviderAddr)
	fmt.Printf("REFRESHES: %d\n", refreshes)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("FILE_STORAGE_PATH: %s\n", storagePath)
	fmt.Println()

	var queries int64
	provider := &http.Server{
		Addr:              fakeProviderAddr,
		Handler:           fakeProvider(&queries),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := provider.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "ERROR: fake provider failed: %v\n", err)
			os.Exit(1)
		}
	}()
	defer provider.Close()
	time.Sleep(200 * time.Millisecond)

	client := &http.Client{Timeout: 60 * time.Second}

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errors []error
	runIDs := make(map[string]struct{})

	for i := 1; i <= refreshes; i++ {
		wg.Add(1)
		workerChan <- struct{}{}

		go func(index int) {
			defer wg.Done()
			defer func() { <-workerChan }()

			var resp refreshResponse
			if err := doJSON(client, http.MethodPost, baseURL+"/refresh", &resp); err != nil {
				mu.Lock()
				errors = append(errors, fmt.Errorf("refresh %d: %w", index, err))
				mu.Unlock()
				return
			}
			if len(resp.FailedPeriods) > 0 {
				mu.Lock()
				errors = append(errors, fmt.Errorf("refresh %d: failed periods %v", index, resp.FailedPeriods))
				mu.Unlock()
				return
			}

			mu.Lock()
			runIDs[resp.RunID] = struct{}{}
			mu.Unlock()
			fmt.Printf("Refresh %d completed (run %s)\n", index, resp.RunID)
		}(i)
	}
	wg.Wait()

	fmt.Println()
	if len(errors) > 0 {
		for _, err := range errors {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(1)
	}
	if len(runIDs) != refreshes {
		fmt.Fprintf(os.Stderr, "ERROR: expected %d distinct run ids, got %d\n", refreshes, len(runIDs))
		os.Exit(1)
	}

	for _, key := range periodKeys {
		var resp periodResponse
		if err := doJSON(client, http.MethodGet, baseURL+"/leaderboards/"+key, &resp); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: period %s: %v\n", key, err)
			os.Exit(1)
		}
		if !reflect.DeepEqual(resp.Entries, expectedEntries) {
			fmt.Fprintf(os.Stderr, "ERROR: period %s: unexpected entries %s\n", key, mustJSON(resp.Entries))
			os.Exit(1)
		}
		fmt.Printf("Period %s matches expected leaderboard\n", key)
	}

	if err := verifyPublishedFiles(storagePath); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("=== Statistics ===")
	fmt.Printf("Refreshes sent: %d\n", refreshes)
	fmt.Printf("Provider queries served: %d\n", atomic.LoadInt64(&queries))
	fmt.Println("Scenario completed successfully")
}

// fakeProvider answers Plausible v2 queries. The window ending today is the current one.
func fakeProvider(queries *int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(queries, 1)

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rows := previousRows
		if req.DateRange[1] == time.Now().UTC().Format(time.DateOnly) {
			rows = currentRows
		}

		results := make([]map[string]any, 0, len(rows))
		for hostname, visitors := range rows {
			results = append(results, map[string]any{
				"dimensions": []string{hostname},
				"metrics":    []int64{visitors},
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"results": results})
	})
}

func verifyPublishedFiles(storagePath string) error {
	data, err := os.ReadFile(filepath.Join(storagePath, "data.json"))
	if err != nil {
		return fmt.Errorf("failed to read data.json: %w", err)
	}

	var snapshot map[string][]expectedEntry
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to decode data.json: %w", err)
	}
	for _, key := range periodKeys {
		entries := snapshot[key]
		if len(entries) != len(expectedEntries) {
			return fmt.Errorf("data.json period %s: expected %d entries, got %d", key, len(expectedEntries), len(entries))
		}
		for i, entry := range entries {
			want := expectedEntries[i]
			if entry.Domain != want.Domain || entry.Visitors != want.Visitors || !reflect.DeepEqual(entry.Change, want.Change) {
				return fmt.Errorf("data.json period %s: unexpected entry %d: %s", key, i, mustJSON(entry))
			}
		}
	}
	fmt.Println("data.json matches expected leaderboards")

	if _, err := os.Stat(filepath.Join(storagePath, "index.html")); err != nil {
		return fmt.Errorf("index.html not published: %w", err)
	}
	fmt.Println("index.html published")
	return nil
}

func doJSON(client *http.Client, method, url string, out any) error {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}
	return json.Unmarshal(body, out)
}

// findProjectRoot walks up from the working directory until it finds go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find go.mod, run from the project root")
		}
		dir = parent
	}
}

func mustJSON(v any) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func strPtr(s string) *string {
	return &s
}
