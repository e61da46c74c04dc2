package pipelines

import (
	"time"

	"github.com/stigmergic-org/simplepage-stats/internal/models"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/svcerrors"
)

// WindowOutcome tells whether a window's rows came from the source or from the fallback.
type WindowOutcome string

const (
	OutcomeOK       WindowOutcome = "ok"
	OutcomeFallback WindowOutcome = "fallback"
)

// WindowRows are the rows of one window. With OutcomeFallback, Rows is empty and
// Cause holds the fetch error that triggered the fallback.
type WindowRows struct {
	Rows    []models.RawRow
	Outcome WindowOutcome
	Cause   error
}

// PeriodResult is the outcome of building one period. Leaderboard is never nil;
// it is empty when Err is set.
type PeriodResult struct {
	Key         string
	Leaderboard models.Leaderboard
	Previous    WindowOutcome
	Err         *svcerrors.ServiceError
}

// BuildResult collects every configured period of one run, in configured order.
type BuildResult struct {
	RunID       string
	GeneratedAt time.Time
	Periods     []PeriodResult
}

// Snapshot returns the leaderboard of every period keyed by period key.
// Failed periods are present with an empty leaderboard.
func (r *BuildResult) Snapshot() models.Snapshot {
	snapshot := make(models.Snapshot, len(r.Periods))
	for _, period := range r.Periods {
		if period.Leaderboard == nil {
			snapshot[period.Key] = models.Leaderboard{}
			continue
		}
		snapshot[period.Key] = period.Leaderboard
	}
	return snapshot
}

// Failed returns the keys of the periods whose current window could not be built.
func (r *BuildResult) Failed() []string {
	failed := make([]string, 0)
	for _, period := range r.Periods {
		if period.Err != nil {
			failed = append(failed, period.Key)
		}
	}
	return failed
}
