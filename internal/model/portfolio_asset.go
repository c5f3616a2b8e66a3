package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is a stored portfolio position.
type Asset struct {
	ID          string          `json:"id"`
	Ticker      string          `json:"ticker"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	BoughtPrice decimal.Decimal `json:"boughtPrice"`
	Shares      decimal.Decimal `json:"shares"`
	Value       decimal.Decimal `json:"value"`
	Broker      string          `json:"broker"`
	Sector      string          `json:"sector"`
	Industry    string          `json:"industry"`
	Countries   string          `json:"countries"`
	Currency    string          `json:"currency"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// AssetPrice is one day of price history for an asset, valued at the
// share count held when it was recorded.
type AssetPrice struct {
	AssetID  string          `json:"assetId"`
	Date     time.Time       `json:"date"`
	Ticker   string          `json:"ticker"`
	Open     decimal.Decimal `json:"open"`
	High     decimal.Decimal `json:"high"`
	Low      decimal.Decimal `json:"low"`
	Close    decimal.Decimal `json:"close"`
	Volume   int64           `json:"volume"`
	Currency string          `json:"currency"`
	Shares   decimal.Decimal `json:"shares"`
	Value    decimal.Decimal `json:"value"`
}

// AssetPricePoint is the chart representation of an asset's history.
type AssetPricePoint struct {
	Date  time.Time       `json:"date"`
	Price decimal.Decimal `json:"price"`
	Value decimal.Decimal `json:"value"`
}

// PortfolioValuePoint is the summed value of every asset on one day.
type PortfolioValuePoint struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// SnapshotResult reports the outcome of a price snapshot or backfill run.
type SnapshotResult struct {
	Updated int               `json:"updated"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// MarketQuote is the market data the asset form pre-fills from.
type MarketQuote struct {
	Symbol    string          `json:"symbol"`
	ShortName string          `json:"shortName"`
	LongName  string          `json:"longName"`
	QuoteType string          `json:"quoteType"`
	AssetType string          `json:"assetType"`
	Price     decimal.Decimal `json:"regularMarketPrice"`
	Currency  string          `json:"currency"`
	Exchange  string          `json:"exchange"`
	Sector    string          `json:"sector"`
	Industry  string          `json:"industry"`
}

// QuoteResult holds the quotes of a multi-symbol lookup. Symbols that
// could not be quoted are listed in Failed with the reason.
type QuoteResult struct {
	Quotes []MarketQuote     `json:"quotes"`
	Failed map[string]string `json:"failed,omitempty"`
}

// SymbolMatch is one hit of a symbol search.
type SymbolMatch struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	QuoteType string `json:"quoteType"`
	AssetType string `json:"assetType"`
	Exchange  string `json:"exchange"`
	Sector    string `json:"sector,omitempty"`
	Industry  string `json:"industry,omitempty"`
}
