package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Money-Manager-Backend/internal/api/request"
)

// ValidateCreateAsset validates a portfolio asset creation request.
//
// Required fields:
//   - name or ticker: At least one must be set
//   - currency: 3 characters or less when set
//
// Numeric fields may be omitted but cannot be negative.
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" && strings.TrimSpace(req.Ticker) == "" {
		errors["name"] = "name or ticker is required"
	}
	if len(strings.TrimSpace(req.Ticker)) > 20 {
		errors["ticker"] = "ticker must be 20 characters or less"
	}
	if len(strings.TrimSpace(req.Currency)) > 3 {
		errors["currency"] = "currency must be 3 characters or less (USD, EUR)"
	}
	checkNonNegative(errors, "boughtPrice", req.BoughtPrice)
	checkNonNegative(errors, "shares", req.Shares)
	checkNonNegative(errors, "value", req.Value)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateAsset validates a partial asset update.
func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	errors := make(map[string]string)

	if req.IsEmpty() {
		errors["request"] = "No fields to update"
		return &Error{Fields: errors}
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}
	if req.Currency != nil && len(strings.TrimSpace(*req.Currency)) > 3 {
		errors["currency"] = "currency must be 3 characters or less (USD, EUR)"
	}
	for field, v := range map[string]*decimal.Decimal{
		"boughtPrice": req.BoughtPrice,
		"shares":      req.Shares,
		"value":       req.Value,
	} {
		if v != nil && v.IsNegative() {
			errors[field] = field + " cannot be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func checkNonNegative(errors map[string]string, field string, v decimal.NullDecimal) {
	if v.Valid && v.Decimal.IsNegative() {
		errors[field] = field + " cannot be negative"
	}
}
