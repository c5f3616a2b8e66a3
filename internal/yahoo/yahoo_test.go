package yahoo_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ndewijer/Money-Manager-Backend/internal/yahoo"
)

const chartBody = `{
  "chart": {
    "result": [{
      "meta": {"currency": "USD", "symbol": "AAPL", "instrumentType": "EQUITY", "longName": "Apple Inc.", "regularMarketPrice": 187.25},
      "timestamp": [1768742400, 1768828800, 1768915200],
      "indicators": {"quote": [{
        "open":   [180.0, null, 185.5],
        "high":   [182.0, null, 188.0],
        "low":    [179.0, null, 184.0],
        "close":  [181.5, null, 187.25],
        "volume": [1000, null, 3000]
      }]}
    }],
    "error": null
  }
}`

func newServer(t *testing.T, handler http.HandlerFunc) *yahoo.FinanceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return yahoo.NewFinanceClient(yahoo.WithBaseURLs(srv.URL+"/chart", srv.URL+"/search"))
}

func TestFinanceClient_QueryYahooFiveDaySymbol(t *testing.T) {
	t.Run("parses chart response", func(t *testing.T) {
		var gotPath, gotQuery string
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(chartBody))
		})

		resp, err := client.QueryYahooFiveDaySymbol(context.Background(), "AAPL")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if gotPath != "/chart/AAPL" {
			t.Errorf("Expected path /chart/AAPL, got %s", gotPath)
		}
		if !strings.Contains(gotQuery, "range=5d") {
			t.Errorf("Expected range=5d in query, got %s", gotQuery)
		}

		chart, err := yahoo.ParseChart(resp)
		if err != nil {
			t.Fatalf("Unexpected parse error: %v", err)
		}
		if len(chart.Bars) != 2 {
			t.Fatalf("Expected 2 bars (null close dropped), got %d", len(chart.Bars))
		}
		if chart.RegularMarketPrice.String() != "187.25" {
			t.Errorf("Expected market price 187.25, got %s", chart.RegularMarketPrice)
		}
		latest, ok := chart.LatestBar()
		if !ok || latest.Close.String() != "187.25" {
			t.Errorf("Expected latest close 187.25, got %s", latest.Close)
		}
		if latest.Volume != 3000 {
			t.Errorf("Expected volume 3000, got %d", latest.Volume)
		}
	})

	t.Run("unknown symbol returns ErrNoResults", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
		})

		_, err := client.QueryYahooFiveDaySymbol(context.Background(), "NOPE")
		if !errors.Is(err, yahoo.ErrNoResults) {
			t.Errorf("Expected ErrNoResults, got %v", err)
		}
	})

	t.Run("server error returns ErrUnavailable", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.QueryYahooFiveDaySymbol(context.Background(), "AAPL")
		if !errors.Is(err, yahoo.ErrUnavailable) {
			t.Errorf("Expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("cancelled context returns ErrUnavailable", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(chartBody))
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.QueryYahooFiveDaySymbol(ctx, "AAPL")
		if !errors.Is(err, yahoo.ErrUnavailable) {
			t.Errorf("Expected ErrUnavailable, got %v", err)
		}
	})
}

func TestFinanceClient_QueryYahooSymbolByDateRange(t *testing.T) {
	var gotQuery string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(chartBody))
	})

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	if _, err := client.QueryYahooSymbolByDateRange(context.Background(), "AAPL", start, end); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(gotQuery, "period1=1767225600") || !strings.Contains(gotQuery, "period2=1769817600") {
		t.Errorf("Expected unix period bounds in query, got %s", gotQuery)
	}
}

func TestFinanceClient_SearchYahoo(t *testing.T) {
	var gotQ string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"quotes":[{"symbol":"VWRL.AS","shortname":"VANGUARD FTSE","quoteType":"ETF","exchDisp":"Amsterdam"}]}`))
	})

	resp, err := client.SearchYahoo(context.Background(), "vanguard all world")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if gotQ != "vanguard all world" {
		t.Errorf("Expected query to be forwarded, got %q", gotQ)
	}
	if len(resp.Quotes) != 1 {
		t.Fatalf("Expected 1 quote, got %d", len(resp.Quotes))
	}
	if resp.Quotes[0].Name() != "VANGUARD FTSE" {
		t.Errorf("Expected short name fallback, got %s", resp.Quotes[0].Name())
	}
}

func TestParseChart(t *testing.T) {
	t.Run("empty result", func(t *testing.T) {
		_, err := yahoo.ParseChart(yahoo.Response{})
		if !errors.Is(err, yahoo.ErrNoResults) {
			t.Errorf("Expected ErrNoResults, got %v", err)
		}
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		resp := yahoo.Response{Chart: yahoo.Chart{Result: []yahoo.Result{{
			Timestamp:  []int64{1, 2},
			Indicators: yahoo.Indicators{Quote: []yahoo.Quote{{Close: []float64{1}}}},
		}}}}
		if _, err := yahoo.ParseChart(resp); err == nil {
			t.Error("Expected error for mismatched lengths")
		}
	})

	t.Run("bar lookup by date", func(t *testing.T) {
		resp := yahoo.Response{Chart: yahoo.Chart{Result: []yahoo.Result{{
			Timestamp:  []int64{1768742400},
			Indicators: yahoo.Indicators{Quote: []yahoo.Quote{{Close: []float64{10.5}}}},
		}}}}
		chart, err := yahoo.ParseChart(resp)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		bar, ok := chart.GetBarForDate(time.Date(2026, 1, 18, 9, 0, 0, 0, time.UTC))
		if !ok {
			t.Fatal("Expected bar for 2026-01-18")
		}
		if !bar.Open.IsZero() {
			t.Errorf("Expected zero open for missing series, got %s", bar.Open)
		}
	})
}

func TestMapQuoteType(t *testing.T) {
	tests := map[string]string{
		"EQUITY":         yahoo.AssetTypeStock,
		"etf":            yahoo.AssetTypeETF,
		"CRYPTOCURRENCY": yahoo.AssetTypeCrypto,
		"MUTUALFUND":     yahoo.AssetTypeMutualFund,
		"BOND":           yahoo.AssetTypeBond,
		"INDEX":          yahoo.AssetTypeIndex,
		"FUTURE":         yahoo.AssetTypeOther,
		"":               yahoo.AssetTypeOther,
	}
	for in, want := range tests {
		if got := yahoo.MapQuoteType(in); got != want {
			t.Errorf("MapQuoteType(%q): expected %s, got %s", in, want, got)
		}
	}
}
