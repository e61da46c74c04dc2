package renderers

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/stigmergic-org/simplepage-stats/internal/models"
	"github.com/stigmergic-org/simplepage-stats/internal/normalizers"
)

const (
	pageTitle       = "SimplePage Leaderboard"
	timestampLayout = "2006-01-02 15:04:05"
)

//go:embed templates/leaderboard.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/leaderboard.html.tmpl"))

type pageView struct {
	Title       string
	Periods     []periodView
	GeneratedAt string
}

//go:generate mockgen -source=html_renderer.go -destination=./mocks/html_renderer_mock.go -package=mocks
type HTMLRenderer interface {
	// Render writes the leaderboard page with one tab per period, the first one active.
	Render(w io.Writer, snapshot models.Snapshot, periods []models.ReportingPeriod, generatedAt time.Time) error
}

type htmlRenderer struct {
	normalizer normalizers.HostnameNormalizer
}

func NewHTMLRenderer(normalizer normalizers.HostnameNormalizer) HTMLRenderer {
	return &htmlRenderer{normalizer: normalizer}
}

func (r *htmlRenderer) Render(w io.Writer, snapshot models.Snapshot, periods []models.ReportingPeriod, generatedAt time.Time) error {
	view := pageView{
		Title:       pageTitle,
		Periods:     buildPeriodViews(snapshot, periods, r.normalizer),
		GeneratedAt: generatedAt.UTC().Format(timestampLayout),
	}
	if err := pageTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render leaderboard page: %w", err)
	}
	return nil
}
