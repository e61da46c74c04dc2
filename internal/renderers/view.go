package renderers

import (
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/stigmergic-org/simplepage-stats/internal/models"
	"github.com/stigmergic-org/simplepage-stats/internal/normalizers"
)

const (
	notApplicable = "N/A"

	changePositive = "positive"
	changeNegative = "negative"
	changeNeutral  = "neutral"

	netTestnet = "testnet"
	netMainnet = "mainnet"
)

type periodView struct {
	Key    string
	Label  string
	Active bool
	Rows   []rowView
}

type rowView struct {
	Rank        int
	Domain      string
	URL         string
	Net         string
	Visitors    string
	Change      string
	ChangeClass string
}

// buildPeriodViews lays out the snapshot in period order. A period missing from the
// snapshot is shown with no rows. Rank is the 1-based position in the leaderboard.
func buildPeriodViews(snapshot models.Snapshot, periods []models.ReportingPeriod, normalizer normalizers.HostnameNormalizer) []periodView {
	views := make([]periodView, 0, len(periods))
	for i, period := range periods {
		leaderboard := snapshot[period.Key]
		rows := make([]rowView, 0, len(leaderboard))
		for j, entry := range leaderboard {
			change, changeClass := formatChange(entry.Change)
			net := netMainnet
			if normalizer.IsTestnet(entry.Domain) {
				net = netTestnet
			}
			rows = append(rows, rowView{
				Rank:        j + 1,
				Domain:      entry.Domain,
				URL:         normalizer.GatewayURL(entry.Domain),
				Net:         net,
				Visitors:    humanize.Comma(entry.Visitors),
				Change:      change,
				ChangeClass: changeClass,
			})
		}
		views = append(views, periodView{Key: period.Key, Label: period.Label, Active: i == 0, Rows: rows})
	}
	return views
}

// formatChange returns the display text and css class of a change. A nil change has
// no baseline and renders as N/A with no class.
func formatChange(change *string) (string, string) {
	if change == nil {
		return notApplicable, ""
	}
	value, err := strconv.ParseFloat(*change, 64)
	switch {
	case err != nil:
		return *change + "%", changeNeutral
	case value > 0:
		return *change + "%", changePositive
	case value < 0:
		return *change + "%", changeNegative
	default:
		return *change + "%", changeNeutral
	}
}
