package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Money-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Money-Manager-Backend/internal/api/response"
	"github.com/ndewijer/Money-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Money-Manager-Backend/internal/service"
)

// PriceHandler handles HTTP requests for price history and price jobs.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// PortfolioHistory handles GET requests for the total portfolio value per day.
//
// Endpoint: GET /api/long-term/prices/portfolio
// Response: 200 OK with array of PortfolioValuePoint
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) PortfolioHistory(w http.ResponseWriter, r *http.Request) {
	points, err := h.priceService.PortfolioHistory(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePriceHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}

// AssetHistory handles GET requests for one asset's price history.
//
// Endpoint: GET /api/long-term/prices/assets/{uuid}
// Response: 200 OK with array of AssetPricePoint
// Error: 404 Not Found if asset not found
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) AssetHistory(w http.ResponseWriter, r *http.Request) {
	points, err := h.priceService.AssetHistory(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePriceHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}

// Snapshot handles POST requests to record today's prices. Protected by
// the API key middleware.
//
// Endpoint: POST /api/long-term/prices/snapshot
// Response: 200 OK with SnapshotResult
// Error: 500 Internal Server Error if the job cannot run
func (h *PriceHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	result, err := h.priceService.Snapshot(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSnapshotPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Backfill handles POST requests to load daily price history. Protected by
// the API key middleware.
//
// Endpoint: POST /api/long-term/prices/backfill
// Query Parameters:
//   - years: 1 to 20 (default BACKFILL_YEARS)
//
// Response: 200 OK with SnapshotResult
// Error: 400 Bad Request if years is invalid
// Error: 500 Internal Server Error if the job cannot run
func (h *PriceHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	years, err := request.ParseYears(r.URL.Query().Get("years"), 0)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidQuery.Error(), err.Error())
		return
	}

	result, err := h.priceService.Backfill(r.Context(), years)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBackfillPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
