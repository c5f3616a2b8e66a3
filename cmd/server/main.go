package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Money-Manager-Backend/internal/api"
	"github.com/ndewijer/Money-Manager-Backend/internal/app"
	"github.com/ndewijer/Money-Manager-Backend/internal/config"
	"github.com/ndewijer/Money-Manager-Backend/internal/logging"
	"github.com/ndewijer/Money-Manager-Backend/internal/scheduler"
	"github.com/ndewijer/Money-Manager-Backend/internal/version"
)

func main() {
	// Amounts are JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.New(logging.Config{}).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logger.Info("starting money manager", "version", version.Version)

	ctx := context.Background()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialise application", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	// Background jobs
	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs = scheduler.New(logging.Component(logger, "scheduler"))
		for _, job := range application.Jobs() {
			if err := jobs.Add(job); err != nil {
				logger.Error("failed to schedule job", "error", err)
				os.Exit(1)
			}
		}
		jobs.Start()
	}

	router := api.NewRouter(application.Services, cfg, logging.Component(logger, "http"))

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("starting server", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	if jobs != nil {
		if err := jobs.Stop(shutdownCtx); err != nil {
			logger.Error("scheduler did not stop cleanly", "error", err)
		}
	}

	logger.Info("server exited")
}
