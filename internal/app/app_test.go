package app_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ndewijer/Money-Manager-Backend/internal/app"
	"github.com/ndewijer/Money-Manager-Backend/internal/config"
	"github.com/ndewijer/Money-Manager-Backend/internal/logging"
)

func TestNew(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "money.db")},
		Scheduler: config.SchedulerConfig{
			SnapshotSchedule:    "0 22 * * 1-5",
			RecurringSchedule:   "@daily",
			RecurringHorizon:    30,
			SnapshotConcurrency: 2,
		},
	}

	a, err := app.New(context.Background(), cfg, logging.Discard())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := a.Services.System.CheckHealth(); err != nil {
		t.Errorf("Expected healthy database, got %v", err)
	}

	jobs := a.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("Expected 2 jobs, got %d", len(jobs))
	}
	for _, job := range jobs {
		if err := job.Run(context.Background()); err != nil {
			t.Errorf("Expected job %s to succeed on an empty database, got %v", job.Name, err)
		}
	}

	if err := a.Close(); err != nil {
		t.Errorf("Expected clean close, got %v", err)
	}
}
