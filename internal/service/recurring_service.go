package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Money-Manager-Backend/internal/events"
	"github.com/ndewijer/Money-Manager-Backend/internal/model"
	"github.com/ndewijer/Money-Manager-Backend/internal/recurring"
	"github.com/ndewijer/Money-Manager-Backend/internal/repository"
)

// DefaultRecurringHorizon is how many days ahead Generate looks when no end
// date is given.
const DefaultRecurringHorizon = 30

// RecurringService expands recurring templates into dated transactions.
type RecurringService struct {
	transactionRepo *repository.TransactionRepository
	publisher       events.Publisher
	logger          *slog.Logger
	horizon         int
	now             func() time.Time
}

// NewRecurringService creates a RecurringService. horizon <= 0 selects
// DefaultRecurringHorizon.
func NewRecurringService(
	transactionRepo *repository.TransactionRepository,
	publisher events.Publisher,
	logger *slog.Logger,
	horizon int,
) *RecurringService {
	if horizon <= 0 {
		horizon = DefaultRecurringHorizon
	}
	return &RecurringService{
		transactionRepo: transactionRepo,
		publisher:       publisher,
		logger:          logger,
		horizon:         horizon,
		now:             time.Now,
	}
}

// Generate creates the transactions every recurring template produces
// between from and to inclusive. A zero from means today and a zero to
// means the configured horizon past from.
//
// Generation is idempotent: a template never gets two children on the same
// date, so rerunning over an overlapping range only adds what is missing.
func (s *RecurringService) Generate(ctx context.Context, from, to time.Time) (model.RecurringGenerationResult, error) {
	if from.IsZero() {
		from = s.now()
	}
	from = recurring.Day(from)
	if to.IsZero() {
		to = from.AddDate(0, 0, s.horizon)
	}
	to = recurring.Day(to)

	result := model.RecurringGenerationResult{Transactions: []model.SpendingTransaction{}}
	if to.Before(from) {
		return result, nil
	}

	templates, err := s.transactionRepo.ListTemplates(ctx)
	if err != nil {
		return result, err
	}

	for _, tmpl := range templates {
		schedule, ok := recurring.ScheduleFor(tmpl)
		if !ok {
			continue
		}
		if !recurring.IsValidFrequency(schedule.Frequency) {
			s.logger.WarnContext(ctx, "skipping template with unsupported frequency",
				"template", tmpl.ID,
				"frequency", schedule.Frequency)
			continue
		}

		for _, date := range recurring.Occurrences(schedule, from, to) {
			child := model.SpendingTransaction{
				ID:                  uuid.New().String(),
				Date:                date,
				Category:            tmpl.Category,
				Amount:              tmpl.Amount,
				Description:         tmpl.Description,
				ParentTransactionID: tmpl.ID,
				CreatedAt:           time.Now().UTC(),
			}

			inserted, err := s.transactionRepo.InsertGenerated(ctx, &child)
			if err != nil {
				return result, fmt.Errorf("failed to generate transaction for template %s: %w", tmpl.ID, err)
			}
			if inserted {
				result.Transactions = append(result.Transactions, child)
			}
		}
	}

	result.Generated = len(result.Transactions)
	s.logger.InfoContext(ctx, "generated recurring transactions",
		"from", from.Format(time.DateOnly),
		"to", to.Format(time.DateOnly),
		"templates", len(templates),
		"generated", result.Generated)

	if result.Generated > 0 {
		publish(ctx, s.publisher, s.logger, events.New(events.RecurringGenerated, "", map[string]any{
			"generated": result.Generated,
			"from":      from.Format(time.DateOnly),
			"to":        to.Format(time.DateOnly),
		}))
	}
	return result, nil
}
