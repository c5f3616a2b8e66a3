package testutil

import (
	"context"
	"database/sql"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/ndewijer/Money-Manager-Backend/internal/events"
	"github.com/ndewijer/Money-Manager-Backend/internal/logging"
	"github.com/ndewijer/Money-Manager-Backend/internal/repository"
	"github.com/ndewijer/Money-Manager-Backend/internal/service"
	"github.com/ndewijer/Money-Manager-Backend/internal/yahoo"
)

func NewTestTransactionService(t *testing.T, db *sql.DB, publisher events.Publisher) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		orNoop(publisher),
		logging.Discard(),
	)
}

func NewTestRecurringService(t *testing.T, db *sql.DB, publisher events.Publisher) *service.RecurringService {
	t.Helper()

	return service.NewRecurringService(
		repository.NewTransactionRepository(db),
		orNoop(publisher),
		logging.Discard(),
		service.DefaultRecurringHorizon,
	)
}

func NewTestShortTermService(t *testing.T, db *sql.DB, publisher events.Publisher) *service.ShortTermService {
	t.Helper()

	return service.NewShortTermService(
		repository.NewTransactionRepository(db),
		repository.NewSubscriptionRepository(db),
		repository.NewAccountRepository(db),
		repository.NewCreditCardRepository(db),
		orNoop(publisher),
		logging.Discard(),
	)
}

func NewTestAssetService(t *testing.T, db *sql.DB, publisher events.Publisher) *service.AssetService {
	t.Helper()

	return service.NewAssetService(
		repository.NewAssetRepository(db),
		orNoop(publisher),
		logging.Discard(),
	)
}

// NewTestPriceServiceWithMockYahoo creates a PriceService backed by a mock
// Yahoo client so snapshot and backfill run without network access.
func NewTestPriceServiceWithMockYahoo(t *testing.T, db *sql.DB, mockYahoo yahoo.Client, publisher events.Publisher) *service.PriceService {
	t.Helper()

	return service.NewPriceService(
		repository.NewAssetRepository(db),
		repository.NewPriceRepository(db),
		mockYahoo,
		orNoop(publisher),
		logging.Discard(),
		service.DefaultSnapshotConcurrency,
	)
}

func NewTestMarketService(t *testing.T, mockYahoo yahoo.Client) *service.MarketService {
	t.Helper()

	return service.NewMarketService(mockYahoo, logging.Discard())
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func orNoop(p events.Publisher) events.Publisher {
	if p == nil {
		return events.Noop{}
	}
	return p
}

// RecordingPublisher keeps every published event in memory.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

// Publish records ev.
func (p *RecordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

// Close is a no-op.
func (p *RecordingPublisher) Close() error { return nil }

// Events returns a copy of the recorded events.
func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// Types returns the type of every recorded event in publish order.
func (p *RecordingPublisher) Types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]events.Type, len(p.events))
	for i, ev := range p.events {
		types[i] = ev.Type
	}
	return types
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a stock ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("AAPL")
//	// Returns: "AAPL1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakeAssetName generates a unique name for testing.
//
// Example usage:
//
//	name := testutil.MakeAssetName("Tech Fund")
//	// Returns: "Tech Fund XYZ789"
func MakeAssetName(base string) string {
	if base == "" {
		base = "Asset"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
