package request

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ndewijer/Money-Manager-Backend/internal/analytics"
)

// TransactionSort is a validated sort order for the transaction list.
type TransactionSort struct {
	Key  string
	Desc bool
}

// ValidSortKeys are the columns the transaction list can be ordered by.
var ValidSortKeys = map[string]bool{
	"date": true, "amount": true, "category": true, "description": true,
}

// ParseTransactionSort validates the sort and dir query parameters.
// Defaults to date, newest first.
func ParseTransactionSort(sortParam, dirParam string) (TransactionSort, error) {
	s := TransactionSort{Key: "date", Desc: true}

	if sortParam != "" {
		key := strings.TrimSpace(sortParam)
		if !ValidSortKeys[key] {
			return s, fmt.Errorf("invalid sort key: %s", key)
		}
		s.Key = key
	}

	switch strings.ToLower(strings.TrimSpace(dirParam)) {
	case "":
	case "asc":
		s.Desc = false
	case "desc":
		s.Desc = true
	default:
		return s, fmt.Errorf("invalid sort direction: %s", dirParam)
	}

	return s, nil
}

// ParseSummaryParams validates the period and now query parameters of the
// dashboard summary. An empty now means the current time.
func ParseSummaryParams(periodParam, nowParam string, clock func() time.Time) (analytics.Period, time.Time, error) {
	period, err := analytics.ParsePeriod(periodParam)
	if err != nil {
		return "", time.Time{}, err
	}

	now := clock()
	if nowParam != "" {
		now, err = parseReferenceTime(nowParam)
		if err != nil {
			return "", time.Time{}, fmt.Errorf("invalid now: %w", err)
		}
	}
	return period, now, nil
}

// ParseYears validates an optional positive year count.
func ParseYears(param string, defaultValue int) (int, error) {
	if param == "" {
		return defaultValue, nil
	}
	years, err := strconv.Atoi(param)
	if err != nil || years < 1 || years > 20 {
		return 0, fmt.Errorf("years must be between 1 and 20")
	}
	return years, nil
}

// ParseSymbols splits a comma-separated symbol list, dropping blanks and
// upper-casing each symbol.
func ParseSymbols(param string) []string {
	var symbols []string
	for _, s := range strings.Split(param, ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}

// ParseDate parses a date in "2006-01-02" or RFC3339 format.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date %q", s)
		}
	}
	return t.UTC(), nil
}

// parseReferenceTime parses now like ParseDate but keeps an RFC3339 offset,
// so the caller's calendar day decides which windows apply.
func parseReferenceTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q", s)
	}
	return t, nil
}
