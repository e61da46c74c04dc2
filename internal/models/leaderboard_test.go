package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateMap_Identities_Sorted(t *testing.T) {
	t.Parallel()

	m := AggregateMap{"b.eth": 1, "a.eth": 5, "c.eth": 0}
	assert.Equal(t, []string{"a.eth", "b.eth", "c.eth"}, m.Identities())
	assert.Empty(t, AggregateMap{}.Identities())
}

func TestSnapshot_MarshalJSON(t *testing.T) {
	t.Parallel()

	change := "12.3"
	snapshot := Snapshot{
		"7d": Leaderboard{
			{Domain: "vitalik.eth", Visitors: 120, Change: &change},
			{Domain: "new.eth", Visitors: 3, Change: nil},
		},
		"30d":  nil,
		"12mo": Leaderboard{},
	}

	data, err := json.Marshal(snapshot)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"7d": [
			{"domain": "vitalik.eth", "visitors": 120, "change": "12.3"},
			{"domain": "new.eth", "visitors": 3, "change": null}
		],
		"30d": [],
		"12mo": []
	}`, string(data))
}
