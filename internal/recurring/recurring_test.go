package recurring_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Money-Manager-Backend/internal/model"
	"github.com/ndewijer/Money-Manager-Backend/internal/recurring"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func assertDates(t *testing.T, got []time.Time, want ...time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d dates, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("Date %d: expected %s, got %s", i, want[i].Format(time.DateOnly), got[i].Format(time.DateOnly))
		}
	}
}

func TestOccurrences(t *testing.T) {
	t.Run("daily", func(t *testing.T) {
		s := recurring.Schedule{Frequency: model.FrequencyDaily, Start: day(2026, time.March, 1)}

		got := recurring.Occurrences(s, day(2026, time.March, 10), day(2026, time.March, 12))

		assertDates(t, got, day(2026, time.March, 10), day(2026, time.March, 11), day(2026, time.March, 12))
	})

	t.Run("weekly keeps the start weekday", func(t *testing.T) {
		// Wednesday
		s := recurring.Schedule{Frequency: model.FrequencyWeekly, Start: day(2026, time.January, 7)}

		got := recurring.Occurrences(s, day(2026, time.January, 10), day(2026, time.January, 31))

		assertDates(t, got, day(2026, time.January, 14), day(2026, time.January, 21), day(2026, time.January, 28))
	})

	t.Run("monthly clamps to month end without drifting", func(t *testing.T) {
		s := recurring.Schedule{Frequency: model.FrequencyMonthly, Start: day(2026, time.January, 31)}

		got := recurring.Occurrences(s, day(2026, time.January, 1), day(2026, time.April, 30))

		assertDates(t, got,
			day(2026, time.January, 31),
			day(2026, time.February, 28),
			day(2026, time.March, 31),
			day(2026, time.April, 30),
		)
	})

	t.Run("monthly honours the recurrence day", func(t *testing.T) {
		s := recurring.Schedule{Frequency: model.FrequencyMonthly, Start: day(2026, time.January, 20), Day: 5}

		got := recurring.Occurrences(s, day(2026, time.January, 1), day(2026, time.March, 31))

		// January 5 precedes the start and is not produced.
		assertDates(t, got, day(2026, time.February, 5), day(2026, time.March, 5))
	})

	t.Run("yearly on leap day", func(t *testing.T) {
		s := recurring.Schedule{Frequency: model.FrequencyYearly, Start: day(2024, time.February, 29)}

		got := recurring.Occurrences(s, day(2025, time.January, 1), day(2028, time.December, 31))

		assertDates(t, got,
			day(2025, time.February, 28),
			day(2026, time.February, 28),
			day(2027, time.February, 28),
			day(2028, time.February, 29),
		)
	})

	t.Run("stops at the end date", func(t *testing.T) {
		end := day(2026, time.March, 3)
		s := recurring.Schedule{Frequency: model.FrequencyDaily, Start: day(2026, time.March, 1), End: &end}

		got := recurring.Occurrences(s, day(2026, time.March, 1), day(2026, time.March, 31))

		if len(got) != 3 {
			t.Errorf("Expected 3 dates, got %d", len(got))
		}
	})

	t.Run("skips the template date", func(t *testing.T) {
		skip := day(2026, time.March, 1)
		s := recurring.Schedule{Frequency: model.FrequencyWeekly, Start: skip, Skip: &skip}

		got := recurring.Occurrences(s, day(2026, time.March, 1), day(2026, time.March, 8))

		assertDates(t, got, day(2026, time.March, 8))
	})

	t.Run("old schedules are not replayed from the start", func(t *testing.T) {
		s := recurring.Schedule{Frequency: model.FrequencyDaily, Start: day(1990, time.January, 1)}

		got := recurring.Occurrences(s, day(2026, time.January, 1), day(2026, time.January, 2))

		assertDates(t, got, day(2026, time.January, 1), day(2026, time.January, 2))
	})

	t.Run("unknown frequency yields nothing", func(t *testing.T) {
		s := recurring.Schedule{Frequency: "hourly", Start: day(2026, time.January, 1)}

		if got := recurring.Occurrences(s, day(2026, time.January, 1), day(2026, time.February, 1)); len(got) != 0 {
			t.Errorf("Expected no dates, got %v", got)
		}
	})
}

func TestGetStepper(t *testing.T) {
	if _, err := recurring.GetStepper("fortnightly"); !errors.Is(err, recurring.ErrUnsupportedFrequency) {
		t.Errorf("Expected ErrUnsupportedFrequency, got %v", err)
	}
	for _, f := range []string{model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyMonthly, model.FrequencyYearly} {
		if !recurring.IsValidFrequency(f) {
			t.Errorf("Expected %s to be valid", f)
		}
	}
}

func TestScheduleFor(t *testing.T) {
	t.Run("non recurring transactions have no schedule", func(t *testing.T) {
		if _, ok := recurring.ScheduleFor(model.SpendingTransaction{}); ok {
			t.Error("Expected no schedule")
		}
	})

	t.Run("generated children have no schedule", func(t *testing.T) {
		tx := model.SpendingTransaction{IsRecurring: true, ParentTransactionID: "abc"}
		if _, ok := recurring.ScheduleFor(tx); ok {
			t.Error("Expected no schedule")
		}
	})

	t.Run("uses the explicit start date", func(t *testing.T) {
		start := day(2026, time.February, 1)
		dom := 15
		tx := model.SpendingTransaction{
			Date:                day(2026, time.January, 15),
			IsRecurring:         true,
			RecurrenceFrequency: model.FrequencyMonthly,
			RecurrenceStartDate: &start,
			RecurrenceDay:       &dom,
		}

		s, ok := recurring.ScheduleFor(tx)
		if !ok {
			t.Fatal("Expected a schedule")
		}

		got := recurring.Occurrences(s, day(2026, time.January, 1), day(2026, time.March, 31))
		assertDates(t, got, day(2026, time.February, 15), day(2026, time.March, 15))
	})
}
