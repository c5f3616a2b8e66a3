package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a spending transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAssetNotFound indicates that a portfolio asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrSymbolNotFound indicates that a symbol lookup returned no results
	ErrSymbolNotFound = errors.New("symbol not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidPeriod indicates an unsupported reporting period.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidDimension indicates an unsupported breakdown dimension.
	ErrInvalidDimension = errors.New("invalid breakdown dimension")

	ErrInvalidSymbol = errors.New("symbol is required")
	ErrInvalidQuery  = errors.New("query is required")
)

// Upstream errors represent failures of external services. They are
// retryable: the caller may repeat the request later.
var (
	// ErrMarketDataUnavailable indicates the market data provider could not be reached
	// or returned an unusable response.
	ErrMarketDataUnavailable = errors.New("market data unavailable")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveTransactions  = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction   = errors.New("failed to retrieve transaction")
	ErrFailedToRetrieveSubscriptions = errors.New("failed to retrieve subscriptions")
	ErrFailedToRetrieveAccounts      = errors.New("failed to retrieve accounts")
	ErrFailedToRetrieveCreditCards   = errors.New("failed to retrieve credit cards")
	ErrFailedToGetSummary            = errors.New("failed to get dashboard summary")
	ErrFailedToGenerateRecurring     = errors.New("failed to generate recurring transactions")

	ErrFailedToRetrieveAssets       = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveAsset        = errors.New("failed to retrieve asset")
	ErrFailedToGetBreakdown         = errors.New("failed to get portfolio breakdown")
	ErrFailedToRetrievePriceHistory = errors.New("failed to retrieve price history")
	ErrFailedToSnapshotPrices       = errors.New("failed to snapshot prices")
	ErrFailedToBackfillPrices       = errors.New("failed to backfill prices")

	ErrFailedToRetrieveQuote = errors.New("failed to retrieve quote")
	ErrFailedToSearchSymbols = errors.New("failed to search symbols")

	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
