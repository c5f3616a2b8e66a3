// Package report renders dashboard data as markdown for the terminal.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/ndewijer/Money-Manager-Backend/internal/analytics"
	"github.com/ndewijer/Money-Manager-Backend/internal/format"
	"github.com/ndewijer/Money-Manager-Backend/internal/model"
)

// maxRecent caps the transaction table of the spending report.
const maxRecent = 10

// Spending renders a spending summary.
func Spending(s analytics.SpendingSummary, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Spending: %s\n\n", s.CurrentLabel)
	fmt.Fprintf(&b, "%s to %s\n\n",
		s.Windows.Current.Start.Format("Jan 2, 2006"),
		s.Windows.Current.End.Format("Jan 2, 2006"))

	fmt.Fprintf(&b, "| | Amount |\n|---|---:|\n")
	fmt.Fprintf(&b, "| %s | %s |\n", s.CurrentLabel, format.MoneyDecimal(s.CurrentTotal, currency))
	fmt.Fprintf(&b, "| %s | %s |\n", s.PreviousLabel, format.MoneyDecimal(s.PreviousTotal, currency))
	fmt.Fprintf(&b, "| Change | %s (%s) |\n\n", format.MoneyDecimal(s.Change, currency), format.Percent(s.PercentChange))

	if len(s.Comparison) > 0 {
		fmt.Fprintf(&b, "## By category\n\n")
		fmt.Fprintf(&b, "| Category | %s | %s |\n|---|---:|---:|\n", s.CurrentLabel, s.PreviousLabel)
		for _, c := range s.Comparison {
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				escape(c.Category),
				format.Money(c.Current, currency),
				format.Money(c.Previous, currency))
		}
		b.WriteString("\n")
	}

	if len(s.Transactions) > 0 {
		fmt.Fprintf(&b, "## Recent transactions\n\n")
		fmt.Fprintf(&b, "| Date | Category | Description | Amount |\n|---|---|---|---:|\n")
		for _, tx := range s.Transactions[:min(maxRecent, len(s.Transactions))] {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				tx.Date.Format("2006-01-02"),
				escape(tx.Category),
				escape(tx.Description),
				format.MoneyDecimal(tx.Amount, currency))
		}
	}

	return b.String()
}

// Breakdown renders a portfolio breakdown.
func Breakdown(bd analytics.Breakdown, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio by %s\n\n", bd.Label)
	fmt.Fprintf(&b, "%s Total %s.\n\n", bd.Description, format.Money(bd.Total, currency))

	if len(bd.Slices) == 0 {
		b.WriteString("_No holdings._\n")
		return b.String()
	}

	fmt.Fprintf(&b, "| %s | Value | Share |\n|---|---:|---:|\n", bd.Label)
	for _, s := range bd.Slices {
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			escape(s.Label),
			format.Money(s.Value, currency),
			format.Percent(s.Percent))
	}
	return b.String()
}

// Prices renders the outcome of a snapshot or backfill run.
func Prices(title string, r model.SnapshotResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Updated **%d** assets.\n", r.Updated)

	if len(r.Failed) > 0 {
		fmt.Fprintf(&b, "\n## Failed\n\n| Ticker | Reason |\n|---|---|\n")
		tickers := make([]string, 0, len(r.Failed))
		for t := range r.Failed {
			tickers = append(tickers, t)
		}
		slices.Sort(tickers)
		for _, t := range tickers {
			fmt.Fprintf(&b, "| %s | %s |\n", escape(t), escape(r.Failed[t]))
		}
	}
	return b.String()
}

// Recurring renders the outcome of a recurring generation run.
func Recurring(r model.RecurringGenerationResult, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Recurring transactions\n\n")
	fmt.Fprintf(&b, "Generated **%d** transactions.\n", r.Generated)

	if len(r.Transactions) > 0 {
		fmt.Fprintf(&b, "\n| Date | Category | Description | Amount |\n|---|---|---|---:|\n")
		for _, tx := range r.Transactions {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				tx.Date.Format("2006-01-02"),
				escape(tx.Category),
				escape(tx.Description),
				format.MoneyDecimal(tx.Amount, currency))
		}
	}
	return b.String()
}

// Print renders markdown for the terminal and writes it to w. If the
// terminal renderer fails the raw markdown is written instead.
func Print(w io.Writer, markdown string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		var out string
		if out, err = r.Render(markdown); err == nil {
			_, err = io.WriteString(w, out)
			return err
		}
	}
	_, err = io.WriteString(w, markdown)
	return err
}

// escape keeps user text from breaking table cells.
func escape(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
