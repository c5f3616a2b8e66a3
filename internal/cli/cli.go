// Package cli implements the moneyctl subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/subcommands"

	"github.com/ndewijer/Money-Manager-Backend/internal/app"
	"github.com/ndewijer/Money-Manager-Backend/internal/config"
	"github.com/ndewijer/Money-Manager-Backend/internal/report"
)

// Env carries what every subcommand needs.
type Env struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Currency string

	// Open builds the application. Commands that do not touch storage
	// never call it.
	Open func(ctx context.Context) (*app.App, error)
}

// OpenFromConfig returns an Open function backed by environment configuration.
func OpenFromConfig(logger *slog.Logger) func(ctx context.Context) (*app.App, error) {
	return func(ctx context.Context) (*app.App, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		return app.New(ctx, cfg, logger)
	}
}

// Register adds every subcommand to c.
func Register(c *subcommands.Commander, env *Env) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&migrateCmd{env: env}, "database")

	c.Register(&snapshotCmd{env: env}, "prices")
	c.Register(&backfillCmd{env: env}, "prices")

	c.Register(&recurringCmd{env: env}, "spending")
	c.Register(&spendingCmd{env: env}, "spending")

	c.Register(&breakdownCmd{env: env}, "portfolio")
}

// withApp opens the application, runs fn and closes it again.
func (e *Env) withApp(ctx context.Context, fn func(a *app.App) error) subcommands.ExitStatus {
	a, err := e.Open(ctx)
	if err != nil {
		fmt.Fprintf(e.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := fn(a); err != nil {
		fmt.Fprintf(e.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (e *Env) print(markdown string) error {
	return report.Print(e.Stdout, markdown)
}
