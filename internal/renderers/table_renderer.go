package renderers

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/stigmergic-org/simplepage-stats/internal/models"
)

const noEntries = "no entries"

type TableRenderer interface {
	// Render writes one terminal table per period, in period order.
	Render(w io.Writer, snapshot models.Snapshot, periods []models.ReportingPeriod) error
}

type tableRenderer struct {
	positive *color.Color
	negative *color.Color
}

// NewTableRenderer returns a terminal renderer. When colored is false no escape
// sequences are written, whatever the terminal supports.
func NewTableRenderer(colored bool) TableRenderer {
	positive := color.New(color.FgGreen)
	negative := color.New(color.FgRed)
	if colored {
		positive.EnableColor()
		negative.EnableColor()
	} else {
		positive.DisableColor()
		negative.DisableColor()
	}
	return &tableRenderer{positive: positive, negative: negative}
}

func (r *tableRenderer) Render(w io.Writer, snapshot models.Snapshot, periods []models.ReportingPeriod) error {
	for _, period := range periods {
		leaderboard := snapshot[period.Key]

		tbl := table.NewWriter()
		tbl.SetStyle(table.StyleLight)
		tbl.SetTitle(fmt.Sprintf("%s (%s)", period.Label, period.Key))
		tbl.AppendHeader(table.Row{"Rank", "Domain", "Visitors", "Change"})
		tbl.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, Align: text.AlignRight},
			{Number: 3, Align: text.AlignRight},
			{Number: 4, Align: text.AlignRight},
		})

		for i, entry := range leaderboard {
			change, changeClass := formatChange(entry.Change)
			tbl.AppendRow(table.Row{i + 1, entry.Domain, humanize.Comma(entry.Visitors), r.paint(change, changeClass)})
		}
		if len(leaderboard) == 0 {
			tbl.AppendRow(table.Row{"", noEntries, "", ""})
		}
		tbl.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d domains", len(leaderboard)), "", ""})

		if _, err := fmt.Fprintf(w, "%s\n\n", tbl.Render()); err != nil {
			return fmt.Errorf("failed to write %s table: %w", period.Key, err)
		}
	}
	return nil
}

func (r *tableRenderer) paint(change, changeClass string) string {
	switch changeClass {
	case changePositive:
		return r.positive.Sprint(change)
	case changeNegative:
		return r.negative.Sprint(change)
	default:
		return change
	}
}
