package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Period is the length of a reporting window.
type Period string

// Supported periods.
const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// DefaultPeriod is used when a caller does not pick one.
const DefaultPeriod = PeriodMonth

// ErrUnknownPeriod is returned by ParsePeriod for anything but week, month or year.
var ErrUnknownPeriod = errors.New("unknown period")

// ParsePeriod converts user input into a Period. An empty string yields
// DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultPeriod, nil
	case PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
	}
}

// Labels returns the display names of the current and previous window.
func (p Period) Labels() (current, previous string) {
	switch p {
	case PeriodWeek:
		return "This Week", "Last Week"
	case PeriodYear:
		return "This Year", "Last Year"
	default:
		return "This Month", "Last Month"
	}
}

// Window is a closed range of calendar days. Start is midnight of the first
// day and End is the last nanosecond of the last day, both in the location
// the window was computed in.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the calendar date of t lies inside the window.
// The year, month and day of t are taken as written; its clock and location
// are ignored, so a date stored as UTC midnight matches the same day in any
// window location.
func (w Window) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, w.Start.Location())
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days returns the number of calendar days covered by the window.
func (w Window) Days() int {
	start := civil(w.Start)
	end := civil(w.End)
	return int(end.Sub(start).Hours()/24) + 1
}

// Windows holds the current window and the one immediately before it.
type Windows struct {
	Current  Window `json:"current"`
	Previous Window `json:"previous"`
}

// ComputeWindows returns the current and previous windows for p relative to now.
//
// Weeks run Monday through Sunday. Months and years are calendar aligned.
// The previous window always ends the day before the current one starts.
// An unrecognised period is treated as a month.
func ComputeWindows(p Period, now time.Time) Windows {
	day := startOfDay(now)

	switch p {
	case PeriodWeek:
		// Sunday is 0, so shift to make Monday the first day.
		offset := (int(now.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return Windows{
			Current:  Window{Start: start, End: endOfDay(start.AddDate(0, 0, 6))},
			Previous: Window{Start: start.AddDate(0, 0, -7), End: endOfDay(start.AddDate(0, 0, -1))},
		}

	case PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		prev := start.AddDate(-1, 0, 0)
		return Windows{
			Current:  Window{Start: start, End: endOfDay(time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location()))},
			Previous: Window{Start: prev, End: endOfDay(start.AddDate(0, 0, -1))},
		}

	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Windows{
			// Day 0 of the following month is the last day of this one.
			Current:  Window{Start: start, End: endOfDay(start.AddDate(0, 1, -1))},
			Previous: Window{Start: start.AddDate(0, -1, 0), End: endOfDay(start.AddDate(0, 0, -1))},
		}
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// civil drops clock and location so day arithmetic is immune to DST shifts.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
