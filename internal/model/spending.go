package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recurrence frequencies supported on transaction templates.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// SpendingTransaction is a single recorded expense.
//
// A transaction with IsRecurring set acts as a template: the recurring
// generator creates dated children that point back to it through
// ParentTransactionID.
type SpendingTransaction struct {
	ID                  string          `json:"id"`
	Date                time.Time       `json:"date"`
	Category            string          `json:"category"`
	Amount              decimal.Decimal `json:"amount"`
	Description         string          `json:"description"`
	IsRecurring         bool            `json:"isRecurring"`
	RecurrenceFrequency string          `json:"recurrenceFrequency,omitempty"`
	RecurrenceDay       *int            `json:"recurrenceDay,omitempty"`
	RecurrenceStartDate *time.Time      `json:"recurrenceStartDate,omitempty"`
	RecurrenceEndDate   *time.Time      `json:"recurrenceEndDate,omitempty"`
	ParentTransactionID string          `json:"parentTransactionId,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// RecurringGenerationResult is returned by the recurring generator.
type RecurringGenerationResult struct {
	Generated    int                   `json:"generated"`
	Transactions []SpendingTransaction `json:"transactions"`
}

// Billing cycles for subscriptions.
const (
	BillingMonthly = "monthly"
	BillingYearly  = "yearly"
)

// Subscription is a repeating charge such as a streaming service.
type Subscription struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	BillingCycle string          `json:"billingCycle"`
	NextBilling  *time.Time      `json:"nextBilling,omitempty"`
	Icon         string          `json:"icon"`
	Status       string          `json:"status"`
}

// Account types.
const (
	AccountChecking  = "checking"
	AccountSavings   = "savings"
	AccountCredit    = "credit"
	AccountBrokerage = "brokerage"
	AccountOther     = "other"
)

// AccountBalance is the last known balance of a bank or brokerage account.
type AccountBalance struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Institution   string              `json:"institution"`
	Type          string              `json:"type"`
	Balance       decimal.Decimal     `json:"balance"`
	LastUpdated   *time.Time          `json:"lastUpdated,omitempty"`
	AccountNumber string              `json:"accountNumber"`
	APY           decimal.NullDecimal `json:"apy"`
	Icon          string              `json:"icon"`
}

// CreditCard holds balance and reward figures for one card.
type CreditCard struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Institution      string              `json:"institution"`
	Type             string              `json:"type"`
	LastFour         string              `json:"lastFour"`
	CurrentBalance   decimal.Decimal     `json:"currentBalance"`
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
