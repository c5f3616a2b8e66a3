package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Money-Manager-Backend/internal/api"
	"github.com/ndewijer/Money-Manager-Backend/internal/api/middleware"
	"github.com/ndewijer/Money-Manager-Backend/internal/app"
	"github.com/ndewijer/Money-Manager-Backend/internal/config"
	"github.com/ndewijer/Money-Manager-Backend/internal/events"
	"github.com/ndewijer/Money-Manager-Backend/internal/logging"
	"github.com/ndewijer/Money-Manager-Backend/internal/testutil"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Scheduler: config.SchedulerConfig{RecurringHorizon: 30, SnapshotConcurrency: 2},
	}
	services := app.NewServices(db, testutil.NewMockYahooClient(), events.Noop{}, cfg, logging.Discard())
	return api.NewRouter(services, cfg, logging.Discard())
}

func TestRouter(t *testing.T) {
	const apiKey = "router-test-key"
	t.Setenv("INTERNAL_API_KEY", apiKey)
	router := setupRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		headers    map[string]string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/api/system/health", wantStatus: http.StatusOK},
		{name: "trailing slash", method: http.MethodGet, path: "/api/short-term/transactions/", wantStatus: http.StatusOK},
		{name: "invalid uuid", method: http.MethodGet, path: "/api/long-term/assets/not-a-uuid", wantStatus: http.StatusBadRequest},
		{name: "unknown route", method: http.MethodGet, path: "/api/nothing-here", wantStatus: http.StatusNotFound},
		{name: "snapshot without key", method: http.MethodPost, path: "/api/long-term/prices/snapshot", wantStatus: http.StatusUnauthorized},
		{
			name:   "snapshot with key",
			method: http.MethodPost,
			path:   "/api/long-term/prices/snapshot",
			headers: map[string]string{
				"X-API-Key":    apiKey,
				"X-Time-Token": middleware.GenerateTimeToken(apiKey),
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "analytics",
			method:     http.MethodPost,
			path:       "/api/analytics/breakdown",
			body:       `{"dimension": "currency", "holdings": [{"name": "Cash", "currency": "EUR", "value": 10}]}`,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/system/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected allowed origin header, got '%s'", got)
	}
}
