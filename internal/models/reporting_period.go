package models

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

const (
	PeriodKeyWeek  = "7d"
	PeriodKeyMonth = "30d"
	PeriodKeyYear  = "12mo"
)

// ReportingPeriod names one current/previous window pair of WindowLengthDays each.
type ReportingPeriod struct {
	Key              string `json:"key"`
	Label            string `json:"label"`
	WindowLengthDays int    `json:"windowLengthDays"`
}

// DefaultPeriods returns the fixed list of periods the leaderboard is published for,
// in display order.
func DefaultPeriods() []ReportingPeriod {
	return []ReportingPeriod{
		{Key: PeriodKeyWeek, Label: "Week", WindowLengthDays: 7},
		{Key: PeriodKeyMonth, Label: "Month", WindowLengthDays: 30},
		{Key: PeriodKeyYear, Label: "Year", WindowLengthDays: 365},
	}
}

// DateRange is an inclusive range of UTC calendar dates.
type DateRange struct {
	From time.Time
	To   time.Time
}

// FromDate returns the start date formatted as YYYY-MM-DD.
func (r DateRange) FromDate() string { return r.From.Format(dateLayout) }

// ToDate returns the end date formatted as YYYY-MM-DD.
func (r DateRange) ToDate() string { return r.To.Format(dateLayout) }

func (r DateRange) String() string {
	return r.FromDate() + ".." + r.ToDate()
}

// Windows computes the current and previous windows ending on today's UTC date:
//
//	current  = [today - N, today]
//	previous = [today - 2N, today - N]
//
// For example with N=7 and today=2026-10-18, current is 2026-10-11..2026-10-18 and
// previous is 2026-10-04..2026-10-11.
func (p ReportingPeriod) Windows(today time.Time) (current DateRange, previous DateRange) {
	if p.WindowLengthDays <= 0 {
		panic(fmt.Sprintf("invalid ReportingPeriod %q: window length must be positive, got %d", p.Key, p.WindowLengthDays))
	}

	utc := today.UTC()
	day := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	currentStart := day.AddDate(0, 0, -p.WindowLengthDays)
	previousStart := day.AddDate(0, 0, -2*p.WindowLengthDays)

	current = DateRange{From: currentStart, To: day}
	previous = DateRange{From: previousStart, To: currentStart}
	return current, previous
}
