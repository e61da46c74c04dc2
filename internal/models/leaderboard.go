package models

import (
	"encoding/json"
	"sort"
)

// RawRow is one per-hostname visitor count as reported by the analytics provider
// for a single window.
type RawRow struct {
	Hostname string `json:"hostname"`
	Visitors int64  `json:"visitors"`
}

// AggregateMap maps a canonical site identity to its summed visitors for one window.
// It is built once per window and treated as read-only afterwards.
type AggregateMap map[string]int64

// Identities returns the keys in ascending order.
func (m AggregateMap) Identities() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ChangeMap maps a canonical identity to its percentage change against the previous
// window, formatted with one decimal digit. A nil value means no usable baseline.
type ChangeMap map[string]*string

// RankedEntry is one leaderboard row. Change is nil when there is no previous-window
// baseline for the domain, which is different from a "0.0" change.
//
// Example JSON:
//
//	{"domain": "vitalik.eth", "visitors": 1204, "change": "12.3"}
//	{"domain": "new-site.eth", "visitors": 15, "change": null}
type RankedEntry struct {
	Domain   string  `json:"domain"`
	Visitors int64   `json:"visitors"`
	Change   *string `json:"change"`
}

// Leaderboard is ordered; the rank of an entry is its index + 1.
type Leaderboard []RankedEntry

// MarshalJSON encodes a nil leaderboard as an empty array so consumers never see null.
func (l Leaderboard) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]RankedEntry(l))
}

// Snapshot holds one leaderboard per reporting period key. It is the unit that is
// persisted as data.json and rendered.
//
// Example JSON:
//
//	{
//	  "7d":   [{"domain": "vitalik.eth", "visitors": 120, "change": "-4.0"}],
//	  "30d":  [],
//	  "12mo": [{"domain": "vitalik.eth", "visitors": 9012, "change": null}]
//	}
type Snapshot map[string]Leaderboard
