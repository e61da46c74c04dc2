package comparators

import (
	"math"
	"testing"

	"github.com/stigmergic-org/simplepage-stats/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodComparator_Compare_ChangeFormula(t *testing.T) {
	t.Parallel()

	comparator := NewPeriodComparator()

	tests := []struct {
		name     string
		current  int64
		previous int64
		want     string
	}{
		{name: "growth", current: 110, previous: 100, want: "10.0"},
		{name: "decline", current: 90, previous: 100, want: "-10.0"},
		{name: "unchanged", current: 100, previous: 100, want: "0.0"},
		{name: "one decimal", current: 1123, previous: 1000, want: "12.3"},
		{name: "exact eighth", current: 1, previous: 8, want: "-87.5"},
		{name: "rounds to nearest tenth", current: 2, previous: 3, want: "-33.3"},
		{name: "one third growth", current: 4, previous: 3, want: "33.3"},
		{name: "two thirds", current: 5, previous: 3, want: "66.7"},
		{name: "drop to zero", current: 0, previous: 25, want: "-100.0"},
		{name: "large growth", current: 5000, previous: 1, want: "499900.0"},
		{name: "tiny decline rounds to zero without sign", current: 9999, previous: 10000, want: "0.0"},
		{name: "small decline", current: 999, previous: 1000, want: "-0.1"},
		{name: "half tenth rounds away from zero", current: 2001, previous: 2000, want: "0.1"},
		{name: "negative half tenth rounds away from zero", current: 1999, previous: 2000, want: "-0.1"},
		{name: "counts past the int64 tenths range", current: 20_000_000_000_000_000, previous: 10_000_000_000_000_000, want: "100.0"},
		{name: "max count against one", current: math.MaxInt64, previous: 1, want: "922337203685477580600.0"},
		{name: "one against max count", current: 1, previous: math.MaxInt64, want: "-100.0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			changes := comparator.Compare(models.AggregateMap{"x": tt.current}, models.AggregateMap{"x": tt.previous})
			require.NotNil(t, changes["x"])
			assert.Equal(t, tt.want, *changes["x"])
		})
	}
}

func TestPeriodComparator_Compare_ZeroBaselineIsNil(t *testing.T) {
	t.Parallel()

	comparator := NewPeriodComparator()

	withZero := comparator.Compare(models.AggregateMap{"x": 10}, models.AggregateMap{"x": 0})
	withoutEntry := comparator.Compare(models.AggregateMap{"x": 10}, models.AggregateMap{})
	withNilMap := comparator.Compare(models.AggregateMap{"x": 10}, nil)

	for _, changes := range []models.ChangeMap{withZero, withoutEntry, withNilMap} {
		change, present := changes["x"]
		assert.True(t, present, "current identities always have an entry")
		assert.Nil(t, change)
	}
}

func TestPeriodComparator_Compare_OnlyCurrentIdentities(t *testing.T) {
	t.Parallel()

	comparator := NewPeriodComparator()

	changes := comparator.Compare(
		models.AggregateMap{"kept.eth": 20},
		models.AggregateMap{"kept.eth": 10, "gone.eth": 99},
	)

	assert.Len(t, changes, 1)
	assert.NotContains(t, changes, "gone.eth")
	require.NotNil(t, changes["kept.eth"])
	assert.Equal(t, "100.0", *changes["kept.eth"])
}

func TestPeriodComparator_Compare_EmptyCurrent(t *testing.T) {
	t.Parallel()

	changes := NewPeriodComparator().Compare(models.AggregateMap{}, models.AggregateMap{"x": 3})
	assert.NotNil(t, changes)
	assert.Empty(t, changes)
}
