package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Money-Manager-Backend/internal/analytics"
	"github.com/ndewijer/Money-Manager-Backend/internal/service"
	"github.com/ndewijer/Money-Manager-Backend/internal/testutil"
)

func setupAnalyticsHandler() *AnalyticsHandler {
	clock := func() time.Time { return time.Date(2026, time.February, 20, 12, 0, 0, 0, time.UTC) }
	return NewAnalyticsHandler(service.NewAnalyticsService(clock))
}

func TestAnalyticsHandler_Spending(t *testing.T) {
	t.Run("accepts loosely typed exports", func(t *testing.T) {
		handler := setupAnalyticsHandler()

		body := `{"transactions": [
			{"date": "2026-02-01", "category": "Groceries", "amount": "40.50", "merchant": "Corner shop"},
			{"date": "2026-02-03", "category": "Groceries", "amount": 9.5},
			{"date": "2026-01-09", "category": "Dining", "amount": "25"}
		]}`
		req := httptest.NewRequest(http.MethodPost, "/api/analytics/spending", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Spending(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got analytics.SpendingSummary
		testutil.DecodeJSON(t, w, &got)
		if !got.CurrentTotal.Equal(decimal.NewFromInt(50)) {
			t.Errorf("Expected current total 50, got %s", got.CurrentTotal)
		}
		if !got.PreviousTotal.Equal(decimal.NewFromInt(25)) {
			t.Errorf("Expected previous total 25, got %s", got.PreviousTotal)
		}
	})

	t.Run("falls back to query parameters", func(t *testing.T) {
		handler := setupAnalyticsHandler()

		body := `{"transactions": [{"date": "2026-02-16", "category": "Fuel", "amount": 60}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/analytics/spending?period=week&now=2026-02-18",
			strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Spending(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got analytics.SpendingSummary
		testutil.DecodeJSON(t, w, &got)
		if got.Period != analytics.PeriodWeek {
			t.Errorf("Expected week period, got %s", got.Period)
		}
		if !got.CurrentTotal.Equal(decimal.NewFromInt(60)) {
			t.Errorf("Expected current total 60, got %s", got.CurrentTotal)
		}
	})

	t.Run("reports records with unreadable dates", func(t *testing.T) {
		handler := setupAnalyticsHandler()

		body := `{"now": "2026-02-18", "transactions": [
			{"date": "2026-02-16", "category": "Fuel", "amount": 60},
			{"date": "16/02/2026", "category": "Fuel", "amount": 900}
		]}`
		req := httptest.NewRequest(http.MethodPost, "/api/analytics/spending", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Spending(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got analytics.SpendingSummary
		testutil.DecodeJSON(t, w, &got)
		if got.Skipped != 1 {
			t.Errorf("Expected 1 skipped record, got %d", got.Skipped)
		}
		if !got.CurrentTotal.Equal(decimal.NewFromInt(60)) {
			t.Errorf("Expected current total 60, got %s", got.CurrentTotal)
		}
	})

	t.Run("rejects unknown period", func(t *testing.T) {
		handler := setupAnalyticsHandler()

		req := httptest.NewRequest(http.MethodPost, "/api/analytics/spending",
			strings.NewReader(`{"period": "century", "transactions": []}`))
		w := httptest.NewRecorder()

		handler.Spending(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		handler := setupAnalyticsHandler()

		req := httptest.NewRequest(http.MethodPost, "/api/analytics/spending", strings.NewReader(`{"transactions": [`))
		w := httptest.NewRecorder()

		handler.Spending(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAnalyticsHandler_Breakdown(t *testing.T) {
	t.Run("groups posted holdings", func(t *testing.T) {
		handler := setupAnalyticsHandler()

		body := `{"holdings": [
			{"name": "Index fund", "type": "ETF", "value": "750"},
			{"name": "Gold", "type": "Commodity", "value": 250}
		]}`
		req := httptest.NewRequest(http.MethodPost, "/api/analytics/breakdown?dimension=assetType",
			strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Breakdown(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got analytics.Breakdown
		testutil.DecodeJSON(t, w, &got)
		if !got.Total.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("Expected total 1000, got %s", got.Total)
		}
		if len(got.Slices) != 2 || !got.Slices[0].Percent.Equal(decimal.NewFromInt(75)) {
			t.Errorf("Expected leading slice at 75%%, got %+v", got.Slices)
		}
	})

	t.Run("rejects unknown dimension", func(t *testing.T) {
		handler := setupAnalyticsHandler()

		req := httptest.NewRequest(http.MethodPost, "/api/analytics/breakdown",
			strings.NewReader(`{"dimension": "zodiac", "holdings": []}`))
		w := httptest.NewRecorder()

		handler.Breakdown(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
