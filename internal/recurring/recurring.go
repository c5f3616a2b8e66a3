// Package recurring expands recurring transaction templates into the dates
// they fall on.
//
// Each frequency has its own Stepper. Steppers compute the k-th occurrence
// directly from the anchor date instead of advancing from the previous one,
// so month-end clamping in February never drags later months back to the 28th.
package recurring

import (
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Money-Manager-Backend/internal/model"
)

// ErrUnsupportedFrequency is returned for frequencies without a Stepper.
var ErrUnsupportedFrequency = errors.New("unsupported recurrence frequency")

// maxOccurrences bounds a single expansion.
const maxOccurrences = 10000

// Schedule describes when a template repeats.
type Schedule struct {
	Frequency string
	// Start is the first day the schedule may produce.
	Start time.Time
	// Day pins monthly schedules to a day of the month. Zero uses Start's day.
	Day int
	// End is the last day the schedule may produce, if any.
	End *time.Time
	// Skip is a date never produced, typically the template's own date.
	Skip *time.Time
}

// Stepper returns the k-th candidate date of a schedule, counting from zero.
// Seek returns a k whose date is not after from, so long-running schedules
// need not be replayed from their start.
type Stepper interface {
	Step(s Schedule, k int) time.Time
	Seek(s Schedule, from time.Time) int
}

// DailyStepper repeats every day.
type DailyStepper struct{}

// Step returns Start plus k days.
func (DailyStepper) Step(s Schedule, k int) time.Time {
	return s.Start.AddDate(0, 0, k)
}

// Seek returns the day offset of from.
func (DailyStepper) Seek(s Schedule, from time.Time) int {
	return max(0, daysBetween(s.Start, from))
}

// WeeklyStepper repeats on the weekday of Start.
type WeeklyStepper struct{}

// Step returns Start plus k weeks.
func (WeeklyStepper) Step(s Schedule, k int) time.Time {
	return s.Start.AddDate(0, 0, 7*k)
}

// Seek returns the whole weeks between Start and from.
func (WeeklyStepper) Seek(s Schedule, from time.Time) int {
	return max(0, daysBetween(s.Start, from)/7)
}

// MonthlyStepper repeats on a fixed day of the month, clamped to the
// month's last day.
type MonthlyStepper struct{}

// Step returns the target day in the k-th month after Start's month.
func (MonthlyStepper) Step(s Schedule, k int) time.Time {
	day := s.Day
	if day <= 0 {
		day = s.Start.Day()
	}
	return clampedDate(s.Start.Year(), s.Start.Month()+time.Month(k), day)
}

// Seek returns the month before from's month.
func (MonthlyStepper) Seek(s Schedule, from time.Time) int {
	months := (from.Year()-s.Start.Year())*12 + int(from.Month()) - int(s.Start.Month())
	return max(0, months-1)
}

// YearlyStepper repeats on Start's month and day. February 29 falls back to
// February 28 outside leap years.
type YearlyStepper struct{}

// Step returns the anniversary k years after Start.
func (YearlyStepper) Step(s Schedule, k int) time.Time {
	return clampedDate(s.Start.Year()+k, s.Start.Month(), s.Start.Day())
}

// Seek returns the year before from's year.
func (YearlyStepper) Seek(s Schedule, from time.Time) int {
	return max(0, from.Year()-s.Start.Year()-1)
}

var steppers = map[string]Stepper{
	model.FrequencyDaily:   DailyStepper{},
	model.FrequencyWeekly:  WeeklyStepper{},
	model.FrequencyMonthly: MonthlyStepper{},
	model.FrequencyYearly:  YearlyStepper{},
}

// GetStepper returns the Stepper for frequency.
func GetStepper(frequency string) (Stepper, error) {
	s, ok := steppers[frequency]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFrequency, frequency)
	}
	return s, nil
}

// IsValidFrequency reports whether frequency has a Stepper.
func IsValidFrequency(frequency string) bool {
	_, ok := steppers[frequency]
	return ok
}

// Occurrences lists the dates s produces between from and to inclusive.
// Dates are calendar days at UTC midnight. An unsupported frequency yields
// no dates.
func Occurrences(s Schedule, from, to time.Time) []time.Time {
	stepper, err := GetStepper(s.Frequency)
	if err != nil {
		return nil
	}

	s.Start = Day(s.Start)
	from, to = Day(from), Day(to)
	if s.End != nil {
		end := Day(*s.End)
		if end.Before(to) {
			to = end
		}
	}

	var dates []time.Time
	k0 := stepper.Seek(s, from)
	for k := k0; k < k0+maxOccurrences; k++ {
		d := stepper.Step(s, k)
		if d.After(to) {
			break
		}
		if d.Before(from) || d.Before(s.Start) {
			continue
		}
		if s.Skip != nil && d.Equal(Day(*s.Skip)) {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

// ScheduleFor builds the schedule of a recurring template. The second
// result is false when tx is not a recurring template.
func ScheduleFor(tx model.SpendingTransaction) (Schedule, bool) {
	if !tx.IsRecurring || tx.ParentTransactionID != "" {
		return Schedule{}, false
	}

	start := tx.Date
	if tx.RecurrenceStartDate != nil {
		start = *tx.RecurrenceStartDate
	}
	day := 0
	if tx.RecurrenceDay != nil {
		day = *tx.RecurrenceDay
	}
	skip := tx.Date

	return Schedule{
		Frequency: tx.RecurrenceFrequency,
		Start:     start,
		Day:       day,
		End:       tx.RecurrenceEndDate,
		Skip:      &skip,
	}, true
}

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

func clampedDate(year int, month time.Month, day int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	return time.Date(first.Year(), first.Month(), min(day, last), 0, 0, 0, 0, time.UTC)
}
