package analytics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single spending record as seen by the aggregator.
type Transaction struct {
	ID          string          `json:"id,omitempty"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// CategoryAggregate is the summed amount of one category.
type CategoryAggregate struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Color    string          `json:"color"`
}

// CategoryComparison puts one category's current and previous totals side by side.
type CategoryComparison struct {
	Category string          `json:"category"`
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
	Color    string          `json:"color"`
}

// Split partitions transactions into the current and previous window.
// Transactions outside both windows are dropped.
type Split struct {
	Current  []Transaction
	Previous []Transaction
}

// SplitByWindow assigns each transaction to the window containing its date.
func SplitByWindow(transactions []Transaction, windows Windows) Split {
	split := Split{
		Current:  []Transaction{},
		Previous: []Transaction{},
	}
	for _, tx := range transactions {
		switch {
		case windows.Current.Contains(tx.Date):
			split.Current = append(split.Current, tx)
		case windows.Previous.Contains(tx.Date):
			split.Previous = append(split.Previous, tx)
		}
	}
	return split
}

// AggregateByCategory sums amounts per category, keeping the order in which
// categories first appear.
func AggregateByCategory(transactions []Transaction) []CategoryAggregate {
	result := []CategoryAggregate{}
	index := make(map[string]int)

	for _, tx := range transactions {
		i, ok := index[tx.Category]
		if !ok {
			i = len(result)
			index[tx.Category] = i
			result = append(result, CategoryAggregate{
				Category: tx.Category,
				Amount:   decimal.Zero,
				Color:    ColorFor(tx.Category),
			})
		}
		result[i].Amount = result[i].Amount.Add(tx.Amount)
	}

	return result
}

// ComparePeriods aggregates the current and previous window of p and joins
// them per category. Every category seen in either window appears once, with
// zero for the window it is absent from. Current categories come first.
func ComparePeriods(transactions []Transaction, p Period, now time.Time) []CategoryComparison {
	split := SplitByWindow(transactions, ComputeWindows(p, now))
	return compare(AggregateByCategory(split.Current), AggregateByCategory(split.Previous))
}

func compare(current, previous []CategoryAggregate) []CategoryComparison {
	result := make([]CategoryComparison, 0, len(current)+len(previous))
	index := make(map[string]int, len(current)+len(previous))

	for _, agg := range current {
		index[agg.Category] = len(result)
		result = append(result, CategoryComparison{
			Category: agg.Category,
			Current:  agg.Amount,
			Previous: decimal.Zero,
			Color:    agg.Color,
		})
	}
	for _, agg := range previous {
		if i, ok := index[agg.Category]; ok {
			result[i].Previous = agg.Amount
			continue
		}
		result = append(result, CategoryComparison{
			Category: agg.Category,
			Current:  decimal.Zero,
			Previous: agg.Amount,
			Color:    agg.Color,
		})
	}

	return result
}

// Total sums the amounts of transactions.
func Total(transactions []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount)
	}
	return total
}

// SpendingSummary is the short-term spending block of the dashboard.
type SpendingSummary struct {
	Period        Period               `json:"period"`
	CurrentLabel  string               `json:"currentLabel"`
	PreviousLabel string               `json:"previousLabel"`
	Windows       Windows              `json:"windows"`
	CurrentTotal  decimal.Decimal      `json:"currentTotal"`
	PreviousTotal decimal.Decimal      `json:"previousTotal"`
	Change        decimal.Decimal      `json:"change"`
	PercentChange decimal.Decimal      `json:"percentChange"`
	ByCategory    []CategoryAggregate  `json:"byCategory"`
	Comparison    []CategoryComparison `json:"comparison"`
	Transactions  []Transaction        `json:"transactions"`
	// Skipped counts posted records left out because their date did not parse.
	Skipped int `json:"skipped"`
}

var hundred = decimal.NewFromInt(100)

// SummarizeSpending computes every spending figure the dashboard shows for p.
//
// PercentChange is rounded to one decimal and stays zero when the previous
// window had no spending. Transactions holds the current window, newest first.
func SummarizeSpending(transactions []Transaction, p Period, now time.Time) SpendingSummary {
	windows := ComputeWindows(p, now)
	split := SplitByWindow(transactions, windows)
	current := AggregateByCategory(split.Current)
	previous := AggregateByCategory(split.Previous)

	currentTotal := Total(split.Current)
	previousTotal := Total(split.Previous)
	change := currentTotal.Sub(previousTotal)

	percent := decimal.Zero
	if previousTotal.IsPositive() {
		percent = change.Div(previousTotal).Mul(hundred).Round(1)
	}

	recent := slices.Clone(split.Current)
	slices.SortStableFunc(recent, func(a, b Transaction) int {
		return b.Date.Compare(a.Date)
	})

	curLabel, prevLabel := p.Labels()

	return SpendingSummary{
		Period:        p,
		CurrentLabel:  curLabel,
		PreviousLabel: prevLabel,
		Windows:       windows,
		CurrentTotal:  currentTotal,
		PreviousTotal: previousTotal,
		Change:        change,
		PercentChange: percent,
		ByCategory:    current,
		Comparison:    compare(current, previous),
		Transactions:  recent,
	}
}
