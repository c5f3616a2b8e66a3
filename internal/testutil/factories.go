package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Money-Manager-Backend/internal/model"
	"github.com/ndewijer/Money-Manager-Backend/internal/repository"
)

// TransactionBuilder provides a fluent interface for creating spending
// transactions.
//
// Example usage:
//
//	// Simple creation with defaults
//	tx := testutil.NewTransaction().Build(t, db)
//
//	// Monthly template on the 15th
//	tpl := testutil.NewTransaction().
//	    WithCategory("Rent").
//	    WithAmount("1200").
//	    Recurring(model.FrequencyMonthly, 15).
//	    Build(t, db)
type TransactionBuilder struct {
	tx model.SpendingTransaction
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{tx: model.SpendingTransaction{
		ID:          MakeID(),
		Date:        Date(2026, time.January, 10),
		Category:    "Groceries",
		Amount:      decimal.RequireFromString("42.50"),
		Description: "Test transaction",
		CreatedAt:   time.Now().UTC(),
	}}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.tx.ID = id
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(d time.Time) *TransactionBuilder {
	b.tx.Date = d
	return b
}

// WithCategory sets the category.
func (b *TransactionBuilder) WithCategory(category string) *TransactionBuilder {
	b.tx.Category = category
	return b
}

// WithAmount sets the amount from a decimal string.
func (b *TransactionBuilder) WithAmount(amount string) *TransactionBuilder {
	b.tx.Amount = decimal.RequireFromString(amount)
	return b
}

// WithDescription sets the description.
func (b *TransactionBuilder) WithDescription(desc string) *TransactionBuilder {
	b.tx.Description = desc
	return b
}

// Recurring marks the transaction as a template. A day of 0 leaves the
// recurrence day unset.
func (b *TransactionBuilder) Recurring(frequency string, day int) *TransactionBuilder {
	b.tx.IsRecurring = true
	b.tx.RecurrenceFrequency = frequency
	if day > 0 {
		b.tx.RecurrenceDay = &day
	}
	return b
}

// Between bounds the recurrence. A zero end leaves it open.
func (b *TransactionBuilder) Between(start, end time.Time) *TransactionBuilder {
	b.tx.RecurrenceStartDate = &start
	if !end.IsZero() {
		b.tx.RecurrenceEndDate = &end
	}
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.SpendingTransaction {
	t.Helper()

	tx := b.tx
	if err := repository.NewTransactionRepository(db).InsertTransaction(context.Background(), &tx); err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}
	return tx
}

// AssetBuilder provides a fluent interface for creating portfolio assets.
//
// Example usage:
//
//	asset := testutil.NewAsset().
//	    WithTicker("VTI").
//	    WithShares("10").
//	    WithValue("2500").
//	    Build(t, db)
type AssetBuilder struct {
	asset model.Asset
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{asset: model.Asset{
		ID:          MakeID(),
		Ticker:      MakeSymbol("TST"),
		Name:        MakeAssetName("Test Asset"),
		Type:        "stock",
		BoughtPrice: decimal.RequireFromString("100"),
		Shares:      decimal.RequireFromString("10"),
		Value:       decimal.RequireFromString("1000"),
		Broker:      "Test Broker",
		Sector:      "Technology",
		Industry:    "Software",
		Countries:   "US",
		Currency:    "USD",
		CreatedAt:   time.Now().UTC(),
	}}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.asset.ID = id
	return b
}

// WithTicker sets the ticker. An empty ticker makes the asset manual.
func (b *AssetBuilder) WithTicker(ticker string) *AssetBuilder {
	b.asset.Ticker = ticker
	return b
}

// WithName sets the name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.asset.Name = name
	return b
}

// WithType sets the asset type.
func (b *AssetBuilder) WithType(assetType string) *AssetBuilder {
	b.asset.Type = assetType
	return b
}

// WithShares sets the share count.
func (b *AssetBuilder) WithShares(shares string) *AssetBuilder {
	b.asset.Shares = decimal.RequireFromString(shares)
	return b
}

// WithValue sets the current value.
func (b *AssetBuilder) WithValue(value string) *AssetBuilder {
	b.asset.Value = decimal.RequireFromString(value)
	return b
}

// WithSector sets the sector.
func (b *AssetBuilder) WithSector(sector string) *AssetBuilder {
	b.asset.Sector = sector
	return b
}

// WithCountries sets the comma separated country list.
func (b *AssetBuilder) WithCountries(countries string) *AssetBuilder {
	b.asset.Countries = countries
	return b
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	asset := b.asset
	if err := repository.NewAssetRepository(db).InsertAsset(context.Background(), &asset); err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}
	return asset
}

// CreateAsset creates an asset with the given ticker and value.
func CreateAsset(t *testing.T, db *sql.DB, ticker, value string) model.Asset {
	t.Helper()
	return NewAsset().WithTicker(ticker).WithValue(value).Build(t, db)
}

// CreatePrice stores one day of price history for asset.
func CreatePrice(t *testing.T, db *sql.DB, asset model.Asset, date time.Time, closePrice string) model.AssetPrice {
	t.Helper()

	c := decimal.RequireFromString(closePrice)
	price := model.AssetPrice{
		AssetID:  asset.ID,
		Date:     date,
		Ticker:   asset.Ticker,
		Open:     c,
		High:     c,
		Low:      c,
		Close:    c,
		Currency: asset.Currency,
		Shares:   asset.Shares,
		Value:    c.Mul(asset.Shares).Round(2),
	}
	if err := repository.NewPriceRepository(db).UpsertPrices(context.Background(), []model.AssetPrice{price}); err != nil {
		t.Fatalf("Failed to create test price: %v", err)
	}
	return price
}

// CreateSubscription stores an active monthly subscription.
func CreateSubscription(t *testing.T, db *sql.DB, name, amount string) model.Subscription {
	t.Helper()

	sub := model.Subscription{
		ID:           MakeID(),
		Name:         name,
		Category:     "Entertainment",
		Amount:       decimal.RequireFromString(amount),
		BillingCycle: model.BillingMonthly,
		Status:       "active",
	}
	if err := repository.NewSubscriptionRepository(db).InsertSubscription(context.Background(), &sub); err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}
	return sub
}

// CreateAccount stores an account with the given type and balance.
func CreateAccount(t *testing.T, db *sql.DB, accountType, balance string) model.AccountBalance {
	t.Helper()

	account := model.AccountBalance{
		ID:          MakeID(),
		Name:        MakeAssetName("Account"),
		Institution: "Test Bank",
		Type:        accountType,
		Balance:     decimal.RequireFromString(balance),
	}
	if err := repository.NewAccountRepository(db).InsertAccount(context.Background(), &account); err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}
	return account
}

// CreateCreditCard stores a card with the given balance and limit.
func CreateCreditCard(t *testing.T, db *sql.DB, balance, limit string) model.CreditCard {
	t.Helper()

	card := model.CreditCard{
		ID:             MakeID(),
		Name:           MakeAssetName("Card"),
		Institution:    "Test Bank",
		LastFour:       "4242",
		CurrentBalance: decimal.RequireFromString(balance),
		CreditLimit:    decimal.NewNullDecimal(decimal.RequireFromString(limit)),
	}
	if err := repository.NewCreditCardRepository(db).InsertCreditCard(context.Background(), &card); err != nil {
		t.Fatalf("Failed to create test credit card: %v", err)
	}
	return card
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
