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

// ShortTermHandler handles HTTP requests for subscriptions, account
// balances, credit cards and the short-term dashboard.
type ShortTermHandler struct {
	shortTermService *service.ShortTermService
	now              func() time.Time
}

// NewShortTermHandler creates a new ShortTermHandler with the provided service dependency.
func NewShortTermHandler(shortTermService *service.ShortTermService) *ShortTermHandler {
	return &ShortTermHandler{
		shortTermService: shortTermService,
		now:              time.Now,
	}
}

// Summary handles GET requests for the short-term dashboard.
//
// Endpoint: GET /api/short-term/summary
// Query Parameters:
//   - period: week, month or year (default month)
//   - now: reference date, YYYY-MM-DD or RFC3339 (default today)
//
// Response: 200 OK with service.Dashboard
// Error: 400 Bad Request if period or now is invalid
// Error: 500 Internal Server Error if loading fails
func (h *ShortTermHandler) Summary(w http.ResponseWriter, r *http.Request) {
	period, now, err := request.ParseSummaryParams(r.URL.Query().Get("period"), r.URL.Query().Get("now"), h.now)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidPeriod.Error(), err.Error())
		return
	}

	dashboard, err := h.shortTermService.Dashboard(r.Context(), period, now)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, dashboard)
}

// Subscriptions handles GET requests to list subscriptions.
//
// Endpoint: GET /api/short-term/subscriptions
// Response: 200 OK with array of Subscription
// Error: 500 Internal Server Error if retrieval fails
func (h *ShortTermHandler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.shortTermService.ListSubscriptions(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSubscriptions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, subs)
}

// CreateSubscription handles POST requests to add a subscription.
//
// Endpoint: POST /api/short-term/subscriptions
// Request Body: CreateSubscriptionRequest
// Response: 201 Created with Subscription
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *ShortTermHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateSubscriptionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateSubscription(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	sub, err := h.shortTermService.CreateSubscription(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create subscription", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, sub)
}

// Accounts handles GET requests to list account balances.
//
// Endpoint: GET /api/short-term/accounts
// Response: 200 OK with array of AccountBalance
// Error: 500 Internal Server Error if retrieval fails
func (h *ShortTermHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.shortTermService.ListAccounts(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAccounts.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, accounts)
}

// CreateAccount handles POST requests to add an account balance.
//
// Endpoint: POST /api/short-term/accounts
// Request Body: CreateAccountRequest
// Response: 201 Created with AccountBalance
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *ShortTermHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAccount(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	account, err := h.shortTermService.CreateAccount(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, account)
}

// CreditCards handles GET requests to list credit cards.
//
// Endpoint: GET /api/short-term/credit-cards
// Response: 200 OK with array of CreditCard
// Error: 500 Internal Server Error if retrieval fails
func (h *ShortTermHandler) CreditCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.shortTermService.ListCreditCards(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCreditCards.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, cards)
}

// CreateCreditCard handles POST requests to add a credit card.
//
// Endpoint: POST /api/short-term/credit-cards
// Request Body: CreateCreditCardRequest
// Response: 201 Created with CreditCard
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *ShortTermHandler) CreateCreditCard(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateCreditCardRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateCreditCard(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	card, err := h.shortTermService.CreateCreditCard(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create credit card", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, card)
}
