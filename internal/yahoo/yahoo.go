// Package yahoo is a small client for the Yahoo Finance chart and search APIs.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Default API hosts.
const (
	DefaultChartURL  = "https://query1.finance.yahoo.com/v8/finance/chart"
	DefaultSearchURL = "https://query2.finance.yahoo.com/v1/finance/search"
)

var (
	// ErrUnavailable wraps transport failures, non-2xx statuses and
	// undecodable bodies. Callers may retry.
	ErrUnavailable = errors.New("yahoo finance unavailable")

	// ErrNoResults indicates Yahoo answered but knows nothing about the symbol.
	ErrNoResults = errors.New("no results returned")
)

// Client is the subset of Yahoo Finance the services depend on.
type Client interface {
	QueryYahooFiveDaySymbol(ctx context.Context, symbol string) (Response, error)
	QueryYahooSymbolByDateRange(ctx context.Context, symbol string, startDate, endDate time.Time) (Response, error)
	SearchYahoo(ctx context.Context, query string) (SearchResponse, error)
}

// FinanceClient talks to Yahoo Finance over HTTP.
type FinanceClient struct {
	httpClient *http.Client
	chartURL   string
	searchURL  string
}

// Option configures a FinanceClient.
type Option func(*FinanceClient)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *FinanceClient) { f.httpClient = c }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *FinanceClient) { f.httpClient.Timeout = d }
}

// WithBaseURLs points the client at different chart and search endpoints.
func WithBaseURLs(chartURL, searchURL string) Option {
	return func(f *FinanceClient) {
		f.chartURL = strings.TrimRight(chartURL, "/")
		f.searchURL = strings.TrimRight(searchURL, "/")
	}
}

// NewFinanceClient creates a client with a 10 second timeout.
func NewFinanceClient(opts ...Option) *FinanceClient {
	c := &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		chartURL:   DefaultChartURL,
		searchURL:  DefaultSearchURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryYahooFiveDaySymbol fetches the last 5 days of daily price data for a symbol.
// The chart metadata carries the latest regular market price.
func (c *FinanceClient) QueryYahooFiveDaySymbol(ctx context.Context, symbol string) (Response, error) {
	u := fmt.Sprintf("%s/%s?interval=1d&range=5d", c.chartURL, url.PathEscape(symbol))
	return c.queryChart(ctx, symbol, u)
}

// QueryYahooSymbolByDateRange fetches daily price data between two dates.
// Used for backfilling history.
func (c *FinanceClient) QueryYahooSymbolByDateRange(ctx context.Context, symbol string, startDate, endDate time.Time) (Response, error) {
	u := fmt.Sprintf(
		"%s/%s?interval=1d&period1=%d&period2=%d",
		c.chartURL,
		url.PathEscape(symbol),
		startDate.Unix(),
		endDate.Unix(),
	)
	return c.queryChart(ctx, symbol, u)
}

// SearchYahoo looks up symbols matching a free-text query.
func (c *FinanceClient) SearchYahoo(ctx context.Context, query string) (SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("quotesCount", "10")
	params.Set("newsCount", "0")

	var result SearchResponse
	if err := c.get(ctx, c.searchURL+"?"+params.Encode(), &result); err != nil {
		return SearchResponse{}, err
	}
	return result, nil
}

func (c *FinanceClient) queryChart(ctx context.Context, symbol, u string) (Response, error) {
	var result Response
	if err := c.get(ctx, u, &result); err != nil {
		// Yahoo answers unknown symbols with 404 and a chart error body.
		if result.Chart.Error != nil {
			return Response{}, fmt.Errorf("%w for symbol %s: %s", ErrNoResults, symbol, result.Chart.Error.Description)
		}
		return Response{}, err
	}
	if result.Chart.Error != nil {
		return Response{}, fmt.Errorf("%w for symbol %s: %s", ErrNoResults, symbol, result.Chart.Error.Description)
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("%w for symbol %s", ErrNoResults, symbol)
	}
	return result, nil
}

// get performs a GET and decodes the JSON body into out. The body is decoded
// even on non-2xx responses so callers can inspect error payloads.
func (c *FinanceClient) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	decodeErr := json.Unmarshal(data, out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if decodeErr != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, decodeErr)
	}
	return nil
}

// ParseChart converts a raw chart response into a PriceChart.
//
// Days without a close price are dropped. It fails when the response holds
// no results, no timestamps, or close data that does not line up with the
// timestamps.
func ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, ErrNoResults
	}
	result := yahooResult.Chart.Result[0]

	chart := PriceChart{
		Symbol:             result.Meta.Symbol,
		Currency:           result.Meta.Currency,
		ExchangeName:       result.Meta.ExchangeName,
		FullExchangeName:   result.Meta.FullExchangeName,
		InstrumentType:     result.Meta.InstrumentType,
		LongName:           result.Meta.LongName,
		ShortName:          result.Meta.ShortName,
		RegularMarketPrice: decimal.NewFromFloat(result.Meta.RegularMarketPrice),
	}

	if len(result.Timestamp) == 0 {
		return chart, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return chart, fmt.Errorf("no close prices returned")
	}
	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return chart, fmt.Errorf("mismatched data lengths")
	}

	chart.Bars = make([]Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if quote.Close[i] == 0 {
			continue
		}
		t := time.Unix(ts, 0).UTC()
		chart.Bars = append(chart.Bars, Bar{
			Date:   time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
			Open:   price(quote.Open, i),
			High:   price(quote.High, i),
			Low:    price(quote.Low, i),
			Close:  decimal.NewFromFloat(quote.Close[i]),
			Volume: at(quote.Volume, i),
		})
	}

	if len(chart.Bars) == 0 {
		return chart, fmt.Errorf("no close prices returned")
	}
	return chart, nil
}

// LatestBar returns the most recent trading day of the chart.
func (c PriceChart) LatestBar() (Bar, bool) {
	if len(c.Bars) == 0 {
		return Bar{}, false
	}
	return c.Bars[len(c.Bars)-1], true
}

// GetBarForDate returns the bar of the given calendar day.
func (c PriceChart) GetBarForDate(target time.Time) (Bar, bool) {
	targetDay := target.UTC().Truncate(24 * time.Hour)
	for _, bar := range c.Bars {
		if bar.Date.Equal(targetDay) {
			return bar, true
		}
	}
	return Bar{}, false
}

func price(series []float64, i int) decimal.Decimal {
	return decimal.NewFromFloat(at(series, i))
}

func at[T int64 | float64](series []T, i int) T {
	if i < len(series) {
		return series[i]
	}
	var zero T
	return zero
}
