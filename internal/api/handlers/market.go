package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Money-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Money-Manager-Backend/internal/api/response"
	"github.com/ndewijer/Money-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Money-Manager-Backend/internal/service"
)

// MarketHandler handles HTTP requests for live market data.
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler with the provided service dependency.
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// Quote handles GET requests to quote one or more symbols.
//
// Endpoint: GET /api/market/quote?symbols=AAPL,MSFT
// Response: 200 OK with QuoteResult
// Error: 400 Bad Request if no symbol is given
// Error: 404 Not Found if no symbol could be found
// Error: 502 Bad Gateway with Retry-After if market data is unavailable
func (h *MarketHandler) Quote(w http.ResponseWriter, r *http.Request) {
	symbols := request.ParseSymbols(r.URL.Query().Get("symbols"))

	result, err := h.marketService.Quotes(r.Context(), symbols)
	if err != nil {
		respondMarketError(w, apperrors.ErrFailedToRetrieveQuote, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Search handles GET requests to look up symbols by name or ticker.
//
// Endpoint: GET /api/market/search?query=vanguard
// Response: 200 OK with array of SymbolMatch
// Error: 400 Bad Request if query is empty
// Error: 502 Bad Gateway with Retry-After if market data is unavailable
func (h *MarketHandler) Search(w http.ResponseWriter, r *http.Request) {
	matches, err := h.marketService.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		respondMarketError(w, apperrors.ErrFailedToSearchSymbols, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, matches)
}

func respondMarketError(w http.ResponseWriter, fallback, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidSymbol), errors.Is(err, apperrors.ErrInvalidQuery):
		response.RespondError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, apperrors.ErrSymbolNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrSymbolNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrMarketDataUnavailable):
		response.RespondRetryable(w, apperrors.ErrMarketDataUnavailable.Error(), err.Error(), retryAfterSeconds)
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
	}
}
