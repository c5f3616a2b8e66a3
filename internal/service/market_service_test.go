package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Money-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Money-Manager-Backend/internal/testutil"
	"github.com/ndewijer/Money-Manager-Backend/internal/yahoo"
)

func TestMarketService_Quote(t *testing.T) {
	ctx := context.Background()

	t.Run("combines chart price with search metadata", func(t *testing.T) {
		mockYahoo := testutil.NewMockYahooClient().WithSearch(yahoo.SearchQuote{
			Symbol:    "TEST",
			QuoteType: "EQUITY",
			Sector:    "Technology",
			Industry:  "Software",
		})
		svc := testutil.NewTestMarketService(t, mockYahoo)

		quote, err := svc.Quote(ctx, " test ")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if quote.Symbol != "TEST" {
			t.Errorf("Expected symbol TEST, got %s", quote.Symbol)
		}
		if !quote.Price.Equal(decimal.RequireFromString("102.25")) {
			t.Errorf("Expected price 102.25, got %s", quote.Price)
		}
		if quote.AssetType != yahoo.AssetTypeStock {
			t.Errorf("Expected asset type Stock, got %s", quote.AssetType)
		}
		if quote.Sector != "Technology" || quote.Industry != "Software" {
			t.Errorf("Expected sector metadata, got %s / %s", quote.Sector, quote.Industry)
		}
		if quote.Exchange != "NASDAQ" {
			t.Errorf("Expected exchange NASDAQ, got %s", quote.Exchange)
		}
	})

	t.Run("falls back to the latest close and tolerates search failure", func(t *testing.T) {
		resp := testutil.CreateMockYahooResponse(3)
		resp.Chart.Result[0].Meta.RegularMarketPrice = 0
		mockYahoo := testutil.NewMockYahooClient().WithResponse(resp)
		mockYahoo.SearchError = yahoo.ErrUnavailable
		svc := testutil.NewTestMarketService(t, mockYahoo)

		quote, err := svc.Quote(ctx, "TEST")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !quote.Price.Equal(decimal.RequireFromString("101.25")) {
			t.Errorf("Expected fallback price 101.25, got %s", quote.Price)
		}
		if quote.Sector != "" {
			t.Errorf("Expected no sector, got %s", quote.Sector)
		}
	})

	t.Run("maps client errors", func(t *testing.T) {
		tests := []struct {
			err  error
			want error
		}{
			{fmt.Errorf("%w for symbol X", yahoo.ErrNoResults), apperrors.ErrSymbolNotFound},
			{fmt.Errorf("%w: timeout", yahoo.ErrUnavailable), apperrors.ErrMarketDataUnavailable},
			{errors.New("boom"), apperrors.ErrMarketDataUnavailable},
		}
		for _, tt := range tests {
			svc := testutil.NewTestMarketService(t, testutil.NewMockYahooClient().WithError(tt.err))

			_, err := svc.Quote(ctx, "X")
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v for %v, got %v", tt.want, tt.err, err)
			}
		}
	})

	t.Run("rejects blank symbol", func(t *testing.T) {
		svc := testutil.NewTestMarketService(t, testutil.NewMockYahooClient())

		if _, err := svc.Quote(ctx, "  "); !errors.Is(err, apperrors.ErrInvalidSymbol) {
			t.Errorf("Expected ErrInvalidSymbol, got %v", err)
		}
	})
}

func TestMarketService_Quotes(t *testing.T) {
	ctx := context.Background()

	t.Run("returns partial results", func(t *testing.T) {
		mockYahoo := testutil.NewMockYahooClient().
			WithSymbolError("NOPE", fmt.Errorf("%w for symbol NOPE", yahoo.ErrNoResults))
		svc := testutil.NewTestMarketService(t, mockYahoo)

		result, err := svc.Quotes(ctx, []string{"AAA", "NOPE", "BBB"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(result.Quotes) != 2 {
			t.Fatalf("Expected 2 quotes, got %d", len(result.Quotes))
		}
		if result.Quotes[0].Symbol != "AAA" || result.Quotes[1].Symbol != "BBB" {
			t.Errorf("Expected input order, got %s, %s", result.Quotes[0].Symbol, result.Quotes[1].Symbol)
		}
		if _, ok := result.Failed["NOPE"]; !ok {
			t.Errorf("Expected NOPE in failures, got %v", result.Failed)
		}
	})

	t.Run("fails when every symbol fails", func(t *testing.T) {
		svc := testutil.NewTestMarketService(t, testutil.NewMockYahooClient().WithError(yahoo.ErrUnavailable))

		_, err := svc.Quotes(ctx, []string{"AAA", "BBB"})
		if !errors.Is(err, apperrors.ErrMarketDataUnavailable) {
			t.Errorf("Expected ErrMarketDataUnavailable, got %v", err)
		}
	})
}

func TestMarketService_Search(t *testing.T) {
	ctx := context.Background()
	mockYahoo := testutil.NewMockYahooClient().WithSearch(
		yahoo.SearchQuote{Symbol: "VTI", LongName: "Vanguard Total Stock Market ETF", QuoteType: "ETF", ExchDisp: "NYSEArca"},
		yahoo.SearchQuote{ShortName: "no symbol"},
		yahoo.SearchQuote{Symbol: "BTC-USD", ShortName: "Bitcoin USD", QuoteType: "CRYPTOCURRENCY"},
	)
	svc := testutil.NewTestMarketService(t, mockYahoo)

	matches, err := svc.Search(ctx, "v")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].AssetType != yahoo.AssetTypeETF || matches[0].Exchange != "NYSEArca" {
		t.Errorf("Expected ETF on NYSEArca, got %+v", matches[0])
	}
	if matches[1].Name != "Bitcoin USD" || matches[1].AssetType != yahoo.AssetTypeCrypto {
		t.Errorf("Expected Bitcoin crypto match, got %+v", matches[1])
	}

	if _, err := svc.Search(ctx, " "); !errors.Is(err, apperrors.ErrInvalidQuery) {
		t.Errorf("Expected ErrInvalidQuery, got %v", err)
	}
}
