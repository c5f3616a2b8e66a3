package analytics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Money-Manager-Backend/internal/model"
)

// UpcomingWindowDays is how far ahead UpcomingSubscriptions looks by default.
const UpcomingWindowDays = 14

var twelve = decimal.NewFromInt(12)

// MonthlySubscriptionCost normalizes every subscription to a monthly amount
// and sums them. Yearly plans count for a twelfth of their price.
func MonthlySubscriptionCost(subs []model.Subscription) decimal.Decimal {
	total := decimal.Zero
	for _, s := range subs {
		switch s.BillingCycle {
		case model.BillingYearly:
			total = total.Add(s.Amount.Div(twelve))
		default:
			total = total.Add(s.Amount)
		}
	}
	return total.Round(2)
}

// UpcomingSubscription is a subscription due soon.
type UpcomingSubscription struct {
	model.Subscription
	DaysUntil int `json:"daysUntil"`
}

// UpcomingSubscriptions returns subscriptions billing between today and
// withinDays days from now, soonest first. Subscriptions without a next
// billing date are skipped. withinDays <= 0 means UpcomingWindowDays.
func UpcomingSubscriptions(subs []model.Subscription, now time.Time, withinDays int) []UpcomingSubscription {
	if withinDays <= 0 {
		withinDays = UpcomingWindowDays
	}

	today := civil(now)
	result := []UpcomingSubscription{}
	for _, s := range subs {
		if s.NextBilling == nil {
			continue
		}
		days := int(civil(*s.NextBilling).Sub(today).Hours() / 24)
		if days < 0 || days > withinDays {
			continue
		}
		result = append(result, UpcomingSubscription{Subscription: s, DaysUntil: days})
	}

	slices.SortStableFunc(result, func(a, b UpcomingSubscription) int {
		return a.DaysUntil - b.DaysUntil
	})
	return result
}

// TotalAccountBalance sums all account balances.
func TotalAccountBalance(accounts []model.AccountBalance) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// CreditCardSummary aggregates usage and rewards over all cards.
type CreditCardSummary struct {
	CreditUsed     decimal.Decimal `json:"creditUsed"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	Points         decimal.Decimal `json:"points"`
	PointsValue    decimal.Decimal `json:"pointsValue"`
	CashbackEarned decimal.Decimal `json:"cashbackEarned"`
}

// SummarizeCreditCards totals the card figures. Balances count by absolute
// value and missing optional fields count as zero.
func SummarizeCreditCards(cards []model.CreditCard) CreditCardSummary {
	sum := CreditCardSummary{
		CreditUsed:     decimal.Zero,
		CreditLimit:    decimal.Zero,
		Points:         decimal.Zero,
		PointsValue:    decimal.Zero,
		CashbackEarned: decimal.Zero,
	}
	for _, c := range cards {
		sum.CreditUsed = sum.CreditUsed.Add(c.CurrentBalance.Abs())
		sum.CreditLimit = sum.CreditLimit.Add(orZero(c.CreditLimit))
		points := orZero(c.PointsBalance)
		sum.Points = sum.Points.Add(points)
		sum.PointsValue = sum.PointsValue.Add(points.Mul(orZero(c.PointsValue)))
		sum.CashbackEarned = sum.CashbackEarned.Add(orZero(c.CashbackEarned))
	}
	sum.PointsValue = sum.PointsValue.Round(2)
	return sum
}

func orZero(n decimal.NullDecimal) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Decimal
}
