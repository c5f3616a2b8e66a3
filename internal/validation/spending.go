package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Money-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Money-Manager-Backend/internal/model"
	"github.com/ndewijer/Money-Manager-Backend/internal/recurring"
)

// ValidBillingCycles contains the allowed subscription billing cycles.
var ValidBillingCycles = map[string]bool{
	model.BillingMonthly: true, model.BillingYearly: true,
}

// ValidAccountTypes contains the allowed account types.
var ValidAccountTypes = map[string]bool{
	model.AccountChecking:  true,
	model.AccountSavings:   true,
	model.AccountCredit:    true,
	model.AccountBrokerage: true,
	model.AccountOther:     true,
}

// ValidateCreateTransaction validates a spending transaction creation request.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - category: Must not be blank
//   - amount: Must be present
//
// Recurring templates additionally need a supported recurrenceFrequency.
// recurrenceDay must lie in 1..31 and the recurrence end may not precede its start.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse(time.DateOnly, req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Category) == "" {
		errors["category"] = "Category is required"
	}

	if !req.Amount.Valid {
		errors["amount"] = "amount is required"
	}

	if req.IsRecurring && req.RecurrenceFrequency == "" {
		errors["recurrenceFrequency"] = "recurrenceFrequency is required for recurring transactions"
	}
	validateRecurrence(errors, &req.RecurrenceFrequency, req.RecurrenceDay, &req.RecurrenceStartDate, &req.RecurrenceEndDate)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateTransaction validates a partial transaction update.
// Only fields present in the request are checked.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.IsEmpty() {
		errors["request"] = "No fields to update"
		return &Error{Fields: errors}
	}

	if req.Date != nil {
		if _, err := time.Parse(time.DateOnly, *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		errors["category"] = "Category cannot be empty"
	}

	validateRecurrence(errors, req.RecurrenceFrequency, req.RecurrenceDay, req.RecurrenceStartDate, req.RecurrenceEndDate)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateRecurrence(errors map[string]string, frequency *string, day *int, start, end *string) {
	if frequency != nil && *frequency != "" && !recurring.IsValidFrequency(*frequency) {
		errors["recurrenceFrequency"] = fmt.Sprintf("invalid frequency: %s", *frequency)
	}

	if day != nil && (*day < 1 || *day > 31) {
		errors["recurrenceDay"] = "recurrenceDay must be between 1 and 31"
	}

	var startDate, endDate time.Time
	if start != nil && *start != "" {
		d, err := time.Parse(time.DateOnly, *start)
		if err != nil {
			errors["recurrenceStartDate"] = err.Error()
		}
		startDate = d
	}
	if end != nil && *end != "" {
		d, err := time.Parse(time.DateOnly, *end)
		if err != nil {
			errors["recurrenceEndDate"] = err.Error()
		}
		endDate = d
	}
	if !startDate.IsZero() && !endDate.IsZero() && endDate.Before(startDate) {
		errors["recurrenceEndDate"] = "recurrenceEndDate must not be before recurrenceStartDate"
	}
}

// ValidateDateRange validates optional start and end dates of a generation run.
func ValidateDateRange(startDate, endDate string) error {
	errors := make(map[string]string)

	var start, end time.Time
	var err error
	if startDate != "" {
		if start, err = time.Parse(time.DateOnly, startDate); err != nil {
			errors["startDate"] = err.Error()
		}
	}
	if endDate != "" {
		if end, err = time.Parse(time.DateOnly, endDate); err != nil {
			errors["endDate"] = err.Error()
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errors["endDate"] = "endDate must not be before startDate"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateCreateSubscription validates a subscription creation request.
func ValidateCreateSubscription(req request.CreateSubscriptionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if strings.TrimSpace(req.Category) == "" {
		errors["category"] = "Category is required"
	}
	if !req.Amount.Valid {
		errors["amount"] = "amount is required"
	} else if req.Amount.Decimal.IsNegative() {
		errors["amount"] = "amount cannot be negative"
	}
	if !ValidBillingCycles[req.BillingCycle] {
		errors["billingCycle"] = fmt.Sprintf("invalid billing cycle: %s", req.BillingCycle)
	}
	if req.NextBilling != "" {
		if _, err := time.Parse(time.DateOnly, req.NextBilling); err != nil {
			errors["nextBilling"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateCreateAccount validates an account creation request. The type
// defaults to checking when blank.
func ValidateCreateAccount(req request.CreateAccountRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if req.Type != "" && !ValidAccountTypes[req.Type] {
		errors["type"] = fmt.Sprintf("invalid account type: %s", req.Type)
	}
	if !req.Balance.Valid {
		errors["balance"] = "balance is required"
	}
	if req.LastUpdated != "" {
		if _, err := time.Parse(time.DateOnly, req.LastUpdated); err != nil {
			errors["lastUpdated"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateCreateCreditCard validates a credit card creation request.
func ValidateCreateCreditCard(req request.CreateCreditCardRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if len(req.LastFour) > 4 {
		errors["lastFour"] = "lastFour must be 4 characters or less"
	}
	if req.PointsBalance.Valid && !req.PointsBalance.Decimal.IsInteger() {
		errors["pointsBalance"] = "pointsBalance must be a whole number"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
