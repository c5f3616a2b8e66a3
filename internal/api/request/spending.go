package request

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Money-Manager-Backend/internal/analytics"
)

type CreateTransactionRequest struct {
	Date                string              `json:"date"`
	Category            string              `json:"category"`
	Amount              decimal.NullDecimal `json:"amount"`
	Description         string              `json:"description"`
	IsRecurring         bool                `json:"isRecurring"`
	RecurrenceFrequency string              `json:"recurrenceFrequency"`
	RecurrenceDay       *int                `json:"recurrenceDay"`
	RecurrenceStartDate string              `json:"recurrenceStartDate"`
	RecurrenceEndDate   string              `json:"recurrenceEndDate"`
}

type UpdateTransactionRequest struct {
	Date                *string          `json:"date,omitempty"`
	Category            *string          `json:"category,omitempty"`
	Amount              *decimal.Decimal `json:"amount,omitempty"`
	Description         *string          `json:"description,omitempty"`
	IsRecurring         *bool            `json:"isRecurring,omitempty"`
	RecurrenceFrequency *string          `json:"recurrenceFrequency,omitempty"`
	RecurrenceDay       *int             `json:"recurrenceDay,omitempty"`
	RecurrenceStartDate *string          `json:"recurrenceStartDate,omitempty"`
	RecurrenceEndDate   *string          `json:"recurrenceEndDate,omitempty"`
}

// IsEmpty reports whether the request changes nothing.
func (r UpdateTransactionRequest) IsEmpty() bool {
	return r.Date == nil && r.Category == nil && r.Amount == nil && r.Description == nil &&
		r.IsRecurring == nil && r.RecurrenceFrequency == nil && r.RecurrenceDay == nil &&
		r.RecurrenceStartDate == nil && r.RecurrenceEndDate == nil
}

type GenerateRecurringRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type CreateSubscriptionRequest struct {
	Name         string              `json:"name"`
	Category     string              `json:"category"`
	Amount       decimal.NullDecimal `json:"amount"`
	BillingCycle string              `json:"billingCycle"`
	NextBilling  string              `json:"nextBilling"`
	Icon         string              `json:"icon"`
	Status       string              `json:"status"`
}

type CreateAccountRequest struct {
	Name          string              `json:"name"`
	Institution   string              `json:"institution"`
	Type          string              `json:"type"`
	Balance       decimal.NullDecimal `json:"balance"`
	LastUpdated   string              `json:"lastUpdated"`
	AccountNumber string              `json:"accountNumber"`
	APY           decimal.NullDecimal `json:"apy"`
	Icon          string              `json:"icon"`
}

type CreateCreditCardRequest struct {
	Name             string              `json:"name"`
	Institution      string              `json:"institution"`
	Type             string              `json:"type"`
	LastFour         string              `json:"lastFour"`
	CurrentBalance   decimal.NullDecimal `json:"currentBalance"`
	CreditLimit      decimal.NullDecimal `json:"creditLimit"`
	PointsBalance    decimal.NullDecimal `json:"pointsBalance"`
	PointsName       string              `json:"pointsName"`
	PointsValue      decimal.NullDecimal `json:"pointsValue"`
	CashbackRate     decimal.NullDecimal `json:"cashbackRate"`
	RewardsThisMonth decimal.NullDecimal `json:"rewardsThisMonth"`
	CashbackEarned   decimal.NullDecimal `json:"cashbackEarned"`
	Icon             string              `json:"icon"`
	Color            string              `json:"color"`
}

// SpendingTransactionInput is one transaction of a stateless spending analysis.
// Amounts are read leniently; dates are validated.
type SpendingTransactionInput struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	Category    string           `json:"category"`
	Amount      analytics.Number `json:"amount"`
	Description string           `json:"description"`
}

type SpendingAnalysisRequest struct {
	Period       string                     `json:"period"`
	Now          string                     `json:"now"`
	Transactions []SpendingTransactionInput `json:"transactions"`
}

type BreakdownAnalysisRequest struct {
	Dimension string              `json:"dimension"`
	Limit     int                 `json:"limit"`
	Holdings  []analytics.Holding `json:"holdings"`
}
