package rankers

import (
	"sort"

	"github.com/samber/lo"

	"github.com/stigmergic-org/simplepage-stats/internal/models"
)

type RankingSorter interface {
	// Rank builds one entry per identity in current, ordered by visitors descending and
	// then by identity ascending.
	Rank(current models.AggregateMap, changes models.ChangeMap) models.Leaderboard
}

type rankingSorter struct{}

func NewRankingSorter() RankingSorter {
	return &rankingSorter{}
}

func (s *rankingSorter) Rank(current models.AggregateMap, changes models.ChangeMap) models.Leaderboard {
	entries := lo.MapToSlice(current, func(identity string, visitors int64) models.RankedEntry {
		return models.RankedEntry{
			Domain:   identity,
			Visitors: visitors,
			Change:   changes[identity],
		}
	})

	// Identities are unique map keys, so this is a total order and map iteration
	// order never leaks into the output.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Visitors != entries[j].Visitors {
			return entries[i].Visitors > entries[j].Visitors
		}
		return entries[i].Domain < entries[j].Domain
	})

	return models.Leaderboard(entries)
}
