package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ndewijer/Money-Manager-Backend/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined test data instead of making actual API calls and
// is safe for concurrent use.
type MockYahooClient struct {
	mu sync.Mutex

	// MockResponse is the chart returned for symbols without an entry in
	// Responses.
	MockResponse yahoo.Response
	// Responses overrides the chart per symbol.
	Responses map[string]yahoo.Response
	// MockError is returned from every chart query.
	MockError error
	// Errors overrides the chart error per symbol.
	Errors map[string]error
	// Search is the response returned from SearchYahoo.
	Search yahoo.SearchResponse
	// SearchError is returned from SearchYahoo.
	SearchError error

	queryCount int
	lastStart  time.Time
	lastEnd    time.Time
}

// NewMockYahooClient creates a new mock Yahoo client with default test data.
// The default data includes 5 days of historical prices suitable for testing.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		MockResponse: CreateMockYahooResponse(5),
		Responses:    map[string]yahoo.Response{},
		Errors:       map[string]error{},
	}
}

// QueryYahooFiveDaySymbol mocks the 5-day symbol query with predefined test data.
func (m *MockYahooClient) QueryYahooFiveDaySymbol(_ context.Context, symbol string) (yahoo.Response, error) {
	return m.chart(symbol)
}

// QueryYahooSymbolByDateRange mocks the date range query with predefined
// test data and remembers the requested range.
func (m *MockYahooClient) QueryYahooSymbolByDateRange(_ context.Context, symbol string, start, end time.Time) (yahoo.Response, error) {
	m.mu.Lock()
	m.lastStart, m.lastEnd = start, end
	m.mu.Unlock()
	return m.chart(symbol)
}

// SearchYahoo returns the configured search response.
func (m *MockYahooClient) SearchYahoo(_ context.Context, _ string) (yahoo.SearchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryCount++
	if m.SearchError != nil {
		return yahoo.SearchResponse{}, m.SearchError
	}
	return m.Search, nil
}

func (m *MockYahooClient) chart(symbol string) (yahoo.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryCount++

	if err, ok := m.Errors[symbol]; ok {
		return yahoo.Response{}, err
	}
	if m.MockError != nil {
		return yahoo.Response{}, m.MockError
	}
	if resp, ok := m.Responses[symbol]; ok {
		return resp, nil
	}
	return m.MockResponse, nil
}

// QueryCount reports how many queries were made.
func (m *MockYahooClient) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queryCount
}

// LastRange returns the range of the most recent date range query.
func (m *MockYahooClient) LastRange() (time.Time, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastStart, m.lastEnd
}

// WithError configures the mock to return the specified error.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.MockError = err
	return m
}

// WithSymbolError configures the error returned for one symbol.
func (m *MockYahooClient) WithSymbolError(symbol string, err error) *MockYahooClient {
	m.Errors[symbol] = err
	return m
}

// WithResponse configures the mock to return the specified response.
func (m *MockYahooClient) WithResponse(resp yahoo.Response) *MockYahooClient {
	m.MockResponse = resp
	return m
}

// WithSymbolResponse configures the chart returned for one symbol.
func (m *MockYahooClient) WithSymbolResponse(symbol string, resp yahoo.Response) *MockYahooClient {
	m.Responses[symbol] = resp
	return m
}

// WithSearch configures the search response.
func (m *MockYahooClient) WithSearch(quotes ...yahoo.SearchQuote) *MockYahooClient {
	m.Search = yahoo.SearchResponse{Quotes: quotes}
	return m
}

// WithEmptyResponse configures the mock to return an empty response (no data).
func (m *MockYahooClient) WithEmptyResponse() *MockYahooClient {
	m.MockResponse = yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{},
		},
	}
	return m
}

// CreateMockYahooResponse creates a mock Yahoo Finance API response with test data.
// The response includes `days` number of days of price data, ending yesterday.
// Closes rise by 0.5 a day from 100.25.
func CreateMockYahooResponse(days int) yahoo.Response {
	now := time.Now().UTC()
	yesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, time.UTC)

	timestamps := make([]int64, days)
	quote := yahoo.Quote{
		Open:   make([]float64, days),
		High:   make([]float64, days),
		Low:    make([]float64, days),
		Close:  make([]float64, days),
		Volume: make([]int64, days),
	}

	basePrice := 100.0
	for i := range days {
		date := yesterday.AddDate(0, 0, -days+i+1)
		timestamps[i] = date.Unix()

		dayPrice := basePrice + float64(i)*0.5
		quote.Open[i] = dayPrice
		quote.High[i] = dayPrice + 1.0
		quote.Low[i] = dayPrice - 0.5
		quote.Close[i] = dayPrice + 0.25
		quote.Volume[i] = int64(1000000 + i*10000)
	}

	return chartResponse("TEST", timestamps, quote, quote.Close[days-1])
}

// CreateMockYahooResponseForDate creates a mock Yahoo response with a single day's data.
// Useful for testing specific date scenarios.
func CreateMockYahooResponseForDate(date time.Time, price float64) yahoo.Response {
	quote := yahoo.Quote{
		Open:   []float64{price},
		High:   []float64{price},
		Low:    []float64{price},
		Close:  []float64{price},
		Volume: []int64{1000000},
	}
	return chartResponse("TEST", []int64{date.Unix()}, quote, price)
}

func chartResponse(symbol string, timestamps []int64, quote yahoo.Quote, marketPrice float64) yahoo.Response {
	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:             symbol,
						Currency:           "USD",
						ExchangeName:       "NMS",
						FullExchangeName:   "NASDAQ",
						InstrumentType:     "EQUITY",
						LongName:           "Test Fund Inc.",
						ShortName:          "TEST",
						RegularMarketPrice: marketPrice,
					},
					Timestamp:  timestamps,
					Indicators: yahoo.Indicators{Quote: []yahoo.Quote{quote}},
				},
			},
		},
	}
}
