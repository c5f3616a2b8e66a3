package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/ndewijer/Money-Manager-Backend/internal/analytics"
	"github.com/ndewijer/Money-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Money-Manager-Backend/internal/app"
	"github.com/ndewijer/Money-Manager-Backend/internal/database"
	"github.com/ndewijer/Money-Manager-Backend/internal/report"
)

type migrateCmd struct {
	env *Env
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending database migrations" }
func (*migrateCmd) Usage() string {
	return `migrate

  Applies every pending migration to the database at DB_PATH and prints the
  resulting schema version.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	// app.New migrates on open.
	return c.env.withApp(ctx, func(a *app.App) error {
		status, err := database.Status(ctx, a.DB)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.Stdout, "database at version %d\n", status.Current)
		return nil
	})
}

type snapshotCmd struct {
	env *Env
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "record the latest price of every asset" }
func (*snapshotCmd) Usage() string {
	return `snapshot

  Fetches the latest close of every asset with a ticker, stores it and
  revalues the asset.
`
}

func (*snapshotCmd) SetFlags(*flag.FlagSet) {}

func (c *snapshotCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return c.env.withApp(ctx, func(a *app.App) error {
		result, err := a.Services.Price.Snapshot(ctx)
		if err != nil {
			return err
		}
		return c.env.print(report.Prices("Price snapshot", result))
	})
}

type backfillCmd struct {
	env   *Env
	years int
}

func (*backfillCmd) Name() string     { return "backfill" }
func (*backfillCmd) Synopsis() string { return "load daily price history" }
func (*backfillCmd) Usage() string {
	return `backfill [-years <n>]

  Loads the daily price history of every asset with a ticker.
`
}

func (c *backfillCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.years, "years", 0, "Number of years of history to load (1-20, default BACKFILL_YEARS)")
}

func (c *backfillCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.years < 0 || c.years > 20 {
		fmt.Fprintln(c.env.Stderr, "Error: -years must be between 1 and 20")
		return subcommands.ExitUsageError
	}
	return c.env.withApp(ctx, func(a *app.App) error {
		result, err := a.Services.Price.Backfill(ctx, c.years)
		if err != nil {
			return err
		}
		return c.env.print(report.Prices("Price backfill", result))
	})
}

type recurringCmd struct {
	env  *Env
	from string
	to   string
}

func (*recurringCmd) Name() string     { return "recurring" }
func (*recurringCmd) Synopsis() string { return "generate transactions from recurring templates" }
func (*recurringCmd) Usage() string {
	return `recurring [-from <date>] [-to <date>]

  Creates the transactions recurring templates produce in the range.
  Defaults to today through the configured horizon. Safe to rerun.
`
}

func (c *recurringCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First date, YYYY-MM-DD (default today)")
	f.StringVar(&c.to, "to", "", "Last date, YYYY-MM-DD (default today plus horizon)")
}

func (c *recurringCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	var from, to time.Time
	var err error
	if c.from != "" {
		if from, err = request.ParseDate(c.from); err != nil {
			fmt.Fprintf(c.env.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if c.to != "" {
		if to, err = request.ParseDate(c.to); err != nil {
			fmt.Fprintf(c.env.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	return c.env.withApp(ctx, func(a *app.App) error {
		result, err := a.Services.Recurring.Generate(ctx, from, to)
		if err != nil {
			return err
		}
		return c.env.print(report.Recurring(result, c.env.Currency))
	})
}

type spendingCmd struct {
	env    *Env
	period string
	now    string
}

func (*spendingCmd) Name() string     { return "spending" }
func (*spendingCmd) Synopsis() string { return "compare spending with the previous period" }
func (*spendingCmd) Usage() string {
	return `spending [-period week|month|year] [-now <date>]

  Prints spending per category for the current and previous period.
`
}

func (c *spendingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", string(analytics.DefaultPeriod), "Period: week, month or year")
	f.StringVar(&c.now, "now", "", "Reference date, YYYY-MM-DD (default today)")
}

func (c *spendingCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	period, now, err := request.ParseSummaryParams(c.period, c.now, time.Now)
	if err != nil {
		fmt.Fprintf(c.env.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return c.env.withApp(ctx, func(a *app.App) error {
		dashboard, err := a.Services.ShortTerm.Dashboard(ctx, period, now)
		if err != nil {
			return err
		}
		return c.env.print(report.Spending(dashboard.Spending, c.env.Currency))
	})
}

type breakdownCmd struct {
	env       *Env
	dimension string
	limit     int
	file      string
}

func (*breakdownCmd) Name() string     { return "breakdown" }
func (*breakdownCmd) Synopsis() string { return "show portfolio allocation" }
func (*breakdownCmd) Usage() string {
	return `breakdown [-dimension <d>] [-limit <n>] [-file holdings.json]

  Groups holdings by assetType, broker, sector, currency, country or
  topAssets. With -file the holdings are read from a JSON array instead of
  the database.
`
}

func (c *breakdownCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dimension, "dimension", string(analytics.DimensionAssetType), "Grouping dimension")
	f.IntVar(&c.limit, "limit", analytics.DefaultTopAssets, "Positions shown by topAssets")
	f.StringVar(&c.file, "file", "", "JSON file with an array of holdings")
}

func (c *breakdownCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	d, err := analytics.ParseDimension(c.dimension)
	if err != nil {
		fmt.Fprintf(c.env.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.file != "" {
		holdings, err := readHoldings(c.file)
		if err != nil {
			fmt.Fprintf(c.env.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		bd, err := analytics.BuildBreakdown(holdings, d, c.limit)
		if err != nil {
			fmt.Fprintf(c.env.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := c.env.print(report.Breakdown(bd, c.env.Currency)); err != nil {
			fmt.Fprintf(c.env.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	return c.env.withApp(ctx, func(a *app.App) error {
		bd, err := a.Services.Asset.Breakdown(ctx, d, c.limit)
		if err != nil {
			return err
		}
		return c.env.print(report.Breakdown(bd, c.env.Currency))
	})
}

func readHoldings(path string) ([]analytics.Holding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holdings: %w", err)
	}
	var holdings []analytics.Holding
	if err := json.Unmarshal(data, &holdings); err != nil {
		return nil, fmt.Errorf("failed to parse holdings: %w", err)
	}
	return holdings, nil
}
