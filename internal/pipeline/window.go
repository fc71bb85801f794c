package pipeline

import (
	"fmt"
	"time"
)

// Window selects which scheduled games a batch run processes: either one
// exact date, or a league week running Thursday through the following Monday.
type Window struct {
	date time.Time
	week int
}

func DateWindow(date time.Time) Window { return Window{date: date} }

func WeekWindow(week int) Window { return Window{week: week} }

func (w Window) IsWeek() bool { return w.week > 0 }

// Label names the window for run bookkeeping and output files.
func (w Window) Label() string {
	if w.IsWeek() {
		return fmt.Sprintf("week-%d", w.week)
	}
	return w.date.Format("2006-01-02")
}

// WeekStart is the Thursday opening league week `week`, counted from the
// season's week-1 anchor.
func WeekStart(seasonStart time.Time, week int) time.Time {
	return seasonStart.AddDate(0, 0, 7*(week-1))
}

// Bounds returns the inclusive [start, end] range of the window. A week runs
// from its Thursday start through the Monday four days later.
func (w Window) Bounds(seasonStart time.Time) (time.Time, time.Time) {
	if w.IsWeek() {
		start := WeekStart(seasonStart, w.week)
		return start, start.AddDate(0, 0, 4)
	}
	return w.date, w.date
}

// Contains reports whether the event date falls inside the window.
func (w Window) Contains(seasonStart, eventDate time.Time) bool {
	start, end := w.Bounds(seasonStart)
	d := truncateDay(eventDate)
	return !d.Before(truncateDay(start)) && !d.After(truncateDay(end))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
