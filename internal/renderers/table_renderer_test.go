package renderers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigmergic-org/simplepage-stats/internal/models"
)

func TestTableRenderer_Render(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := NewTableRenderer(false).Render(&buf, testSnapshot(), models.DefaultPeriods())
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "Week (7d)")
	assert.Contains(t, out, "Month (30d)")
	assert.Contains(t, out, "Year (12mo)")
	assert.Contains(t, out, "vitalik.eth")
	assert.Contains(t, out, "1,234,567")
	assert.Contains(t, out, "12.3%")
	assert.Contains(t, out, "-4.0%")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, noEntries)
	assert.NotContains(t, out, "\x1b[")

	// periods are written in the given order
	assert.Less(t, strings.Index(out, "Week (7d)"), strings.Index(out, "Month (30d)"))
	assert.Less(t, strings.Index(out, "Month (30d)"), strings.Index(out, "Year (12mo)"))
	// rows keep leaderboard order
	assert.Less(t, strings.Index(out, "vitalik.eth"), strings.Index(out, "nick.eth"))
}

func TestTableRenderer_Render_Colored(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	snapshot := models.Snapshot{"7d": models.Leaderboard{{Domain: "a.eth", Visitors: 1, Change: strPtr("5.0")}}}
	err := NewTableRenderer(true).Render(&buf, snapshot, models.DefaultPeriods()[:1])
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "\x1b[32m")
}
