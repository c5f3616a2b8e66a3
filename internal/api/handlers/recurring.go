package handlers

import (
	"net/http"
	"time"

	"github.com/ndewijer/Money-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Money-Manager-Backend/internal/api/response"
	"github.com/ndewijer/Money-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Money-Manager-Backend/internal/service"
	"github.com/ndewijer/Money-Manager-Backend/internal/validation"
)

// RecurringHandler handles HTTP requests that expand recurring templates.
type RecurringHandler struct {
	recurringService *service.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler with the provided service dependency.
func NewRecurringHandler(recurringService *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{
		recurringService: recurringService,
	}
}

// Generate handles POST requests to create the transactions due from
// recurring templates. Safe to call repeatedly.
//
// Endpoint: POST /api/short-term/recurring/generate
// Request Body (optional): GenerateRecurringRequest (startDate, endDate)
// Response: 201 Created with RecurringGenerationResult
// Error: 400 Bad Request if the dates are invalid
// Error: 500 Internal Server Error if generation fails
func (h *RecurringHandler) Generate(w http.ResponseWriter, r *http.Request) {
	req, err := parseOptionalJSON[request.GenerateRecurringRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	var from, to time.Time
	if req.StartDate != "" {
		from, _ = time.Parse(time.DateOnly, req.StartDate)
	}
	if req.EndDate != "" {
		to, _ = time.Parse(time.DateOnly, req.EndDate)
	}

	result, err := h.recurringService.Generate(r.Context(), from, to)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGenerateRecurring.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}
