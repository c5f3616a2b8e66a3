package service

import (
	"time"

	"github.com/ndewijer/Money-Manager-Backend/internal/analytics"
	"github.com/ndewijer/Money-Manager-Backend/internal/api/request"
)

// AnalyticsService runs the aggregations on caller-supplied data without
// touching storage.
type AnalyticsService struct {
	now func() time.Time
}

// NewAnalyticsService creates an AnalyticsService that uses clock when a
// request carries no reference time. A nil clock means time.Now.
func NewAnalyticsService(clock func() time.Time) *AnalyticsService {
	if clock == nil {
		clock = time.Now
	}
	return &AnalyticsService{now: clock}
}

// AnalyzeSpending summarizes the posted transactions. Transactions with an
// unparseable date are left out and counted in Skipped; malformed amounts
// count as zero.
func (s *AnalyticsService) AnalyzeSpending(req request.SpendingAnalysisRequest) (analytics.SpendingSummary, error) {
	period, now, err := request.ParseSummaryParams(req.Period, req.Now, s.now)
	if err != nil {
		return analytics.SpendingSummary{}, err
	}

	transactions := make([]analytics.Transaction, 0, len(req.Transactions))
	skipped := 0
	for _, in := range req.Transactions {
		date, err := request.ParseDate(in.Date)
		if err != nil {
			skipped++
			continue
		}
		transactions = append(transactions, analytics.Transaction{
			ID:          in.ID,
			Date:        date,
			Category:    in.Category,
			Amount:      in.Amount.Decimal,
			Description: in.Description,
		})
	}

	summary := analytics.SummarizeSpending(transactions, period, now)
	summary.Skipped = skipped
	return summary, nil
}

// AnalyzeBreakdown groups the posted holdings.
func (s *AnalyticsService) AnalyzeBreakdown(req request.BreakdownAnalysisRequest) (analytics.Breakdown, error) {
	d, err := analytics.ParseDimension(req.Dimension)
	if err != nil {
		return analytics.Breakdown{}, err
	}
	return analytics.BuildBreakdown(req.Holdings, d, req.Limit)
}
