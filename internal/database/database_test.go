package database_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/ndewijer/Money-Manager-Backend/internal/database"
)

func TestMigrate(t *testing.T) {
	t.Run("applies every migration to a fresh database", func(t *testing.T) {
		db, err := database.Open(":memory:")
		if err != nil {
			t.Fatalf("Open() returned unexpected error: %v", err)
		}
		defer db.Close()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := context.Background()

		if err := database.Migrate(ctx, db, logger); err != nil {
			t.Fatalf("Migrate() returned unexpected error: %v", err)
		}

		status, err := database.Status(ctx, db)
		if err != nil {
			t.Fatalf("Status() returned unexpected error: %v", err)
		}
		if status.Pending {
			t.Error("Expected no pending migrations")
		}
		if status.Current != status.Latest || status.Latest < 2 {
			t.Errorf("Expected current == latest >= 2, got %+v", status)
		}

		for _, table := range []string{"spending_transaction", "subscription", "account_balance", "credit_card", "portfolio_asset", "portfolio_asset_price"} {
			var name string
			err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
			if err != nil {
				t.Errorf("Expected table %s to exist: %v", table, err)
			}
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		db, err := database.Open(filepath.Join(t.TempDir(), "nested", "money.db"))
		if err != nil {
			t.Fatalf("Open() returned unexpected error: %v", err)
		}
		defer db.Close()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		for i := 0; i < 2; i++ {
			if err := database.Migrate(context.Background(), db, logger); err != nil {
				t.Fatalf("Migrate() run %d returned unexpected error: %v", i+1, err)
			}
		}
	})

	t.Run("status reports pending on an empty database", func(t *testing.T) {
		db, err := database.Open(":memory:")
		if err != nil {
			t.Fatalf("Open() returned unexpected error: %v", err)
		}
		defer db.Close()

		status, err := database.Status(context.Background(), db)
		if err != nil {
			t.Fatalf("Status() returned unexpected error: %v", err)
		}
		if !status.Pending || status.Current != 0 {
			t.Errorf("Expected pending migrations at version 0, got %+v", status)
		}
	})
}
