package yahoo

import (
	"time"

	"github.com/shopspring/decimal"
)

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API. Chart.Result typically holds a single element.
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart is the top-level chart object of a Response.
type Chart struct {
	Result []Result    `json:"result"`
	Error  *ChartError `json:"error"`
}

// ChartError is the error object Yahoo returns in place of results.
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Result is one symbol's chart data.
type Result struct {
	Meta       Meta       `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

// Meta carries symbol metadata and the latest market price.
type Meta struct {
	Currency           string  `json:"currency"`
	Symbol             string  `json:"symbol"`
	ExchangeName       string  `json:"exchangeName"`
	FullExchangeName   string  `json:"fullExchangeName"`
	InstrumentType     string  `json:"instrumentType"`
	LongName           string  `json:"longName"`
	ShortName          string  `json:"shortName"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	ChartPreviousClose float64 `json:"chartPreviousClose"`
}

// Indicators holds the OHLCV series of a Result.
type Indicators struct {
	Quote []Quote `json:"quote"`
}

// Quote is a set of parallel OHLCV arrays indexed like Result.Timestamp.
// Yahoo reports missing values as null, which decode to zero.
type Quote struct {
	Open   []float64 `json:"open"`
	Close  []float64 `json:"close"`
	Volume []int64   `json:"volume"`
	High   []float64 `json:"high"`
	Low    []float64 `json:"low"`
}

// PriceChart is the parsed form of a Response.
type PriceChart struct {
	Symbol             string
	Currency           string
	ExchangeName       string
	FullExchangeName   string
	InstrumentType     string
	LongName           string
	ShortName          string
	RegularMarketPrice decimal.Decimal
	Bars               []Bar
}

// Bar is a single trading day. Date is midnight UTC of the trading day.
type Bar struct {
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

// SearchResponse is the raw JSON of the symbol search API.
type SearchResponse struct {
	Quotes []SearchQuote `json:"quotes"`
}

// SearchQuote is one search hit.
type SearchQuote struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortname"`
	LongName  string `json:"longname"`
	QuoteType string `json:"quoteType"`
	Exchange  string `json:"exchange"`
	ExchDisp  string `json:"exchDisp"`
	Sector    string `json:"sector"`
	Industry  string `json:"industry"`
}

// Name returns the long name, falling back to the short name.
func (q SearchQuote) Name() string {
	if q.LongName != "" {
		return q.LongName
	}
	return q.ShortName
}
