package handlers

import (
	"net/http"

	"github.com/ndewijer/Money-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Money-Manager-Backend/internal/api/response"
	"github.com/ndewijer/Money-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Money-Manager-Backend/internal/service"
)

// AnalyticsHandler serves the stateless aggregation endpoints. Nothing
// posted here is stored.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler with the provided service dependency.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Spending handles POST requests to summarize posted transactions.
// The period and now query parameters fill in fields the body leaves blank.
//
// Endpoint: POST /api/analytics/spending
// Request Body: SpendingAnalysisRequest (period, now, transactions)
// Response: 200 OK with analytics.SpendingSummary
// Error: 400 Bad Request if the body, period or now is invalid
func (h *AnalyticsHandler) Spending(w http.ResponseWriter, r *http.Request) {
	req, err := parseLenientJSON[request.SpendingAnalysisRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Period == "" {
		req.Period = r.URL.Query().Get("period")
	}
	if req.Now == "" {
		req.Now = r.URL.Query().Get("now")
	}

	summary, err := h.analyticsService.AnalyzeSpending(req)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidPeriod.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Breakdown handles POST requests to group posted holdings.
// The dimension query parameter fills in a blank body dimension.
//
// Endpoint: POST /api/analytics/breakdown
// Request Body: BreakdownAnalysisRequest (dimension, limit, holdings)
// Response: 200 OK with analytics.Breakdown
// Error: 400 Bad Request if the body or dimension is invalid
func (h *AnalyticsHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	req, err := parseLenientJSON[request.BreakdownAnalysisRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Dimension == "" {
		req.Dimension = r.URL.Query().Get("dimension")
	}

	breakdown, err := h.analyticsService.AnalyzeBreakdown(req)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDimension.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, breakdown)
}
