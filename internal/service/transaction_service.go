package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Money-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Money-Manager-Backend/internal/events"
	"github.com/ndewijer/Money-Manager-Backend/internal/model"
	"github.com/ndewijer/Money-Manager-Backend/internal/repository"
)

// TransactionService handles spending transaction business logic.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	publisher       events.Publisher
	logger          *slog.Logger
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	publisher events.Publisher,
	logger *slog.Logger,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		publisher:       publisher,
		logger:          logger,
	}
}

// ListTransactions returns every transaction in the requested order.
func (s *TransactionService) ListTransactions(ctx context.Context, sort request.TransactionSort) ([]model.SpendingTransaction, error) {
	return s.transactionRepo.ListTransactions(ctx, sort.Key, sort.Desc)
}

// GetTransaction retrieves a single transaction.
// Returns apperrors.ErrTransactionNotFound if it does not exist.
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (model.SpendingTransaction, error) {
	return s.transactionRepo.GetTransaction(ctx, id)
}

// CreateTransaction stores a new transaction. The request must already be
// validated. Recurrence fields are dropped unless IsRecurring is set.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.SpendingTransaction, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	tx := &model.SpendingTransaction{
		ID:          uuid.New().String(),
		Date:        date,
		Category:    strings.TrimSpace(req.Category),
		Amount:      req.Amount.Decimal,
		Description: req.Description,
		IsRecurring: req.IsRecurring,
		CreatedAt:   time.Now().UTC(),
	}

	if req.IsRecurring {
		tx.RecurrenceFrequency = req.RecurrenceFrequency
		tx.RecurrenceDay = req.RecurrenceDay
		if tx.RecurrenceStartDate, err = parseOptionalDate(req.RecurrenceStartDate); err != nil {
			return nil, err
		}
		if tx.RecurrenceEndDate, err = parseOptionalDate(req.RecurrenceEndDate); err != nil {
			return nil, err
		}
	}

	if err := s.transactionRepo.InsertTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	publish(ctx, s.publisher, s.logger, events.New(events.TransactionCreated, tx.ID, tx))
	return tx, nil
}

// UpdateTransaction applies the fields present in req to an existing
// transaction. Turning IsRecurring off clears the recurrence settings.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, req request.UpdateTransactionRequest) (*model.SpendingTransaction, error) {
	tx, err := s.transactionRepo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		if tx.Date, err = parseDate(*req.Date); err != nil {
			return nil, err
		}
	}
	if req.Category != nil {
		tx.Category = strings.TrimSpace(*req.Category)
	}
	if req.Amount != nil {
		tx.Amount = *req.Amount
	}
	if req.Description != nil {
		tx.Description = *req.Description
	}
	if req.IsRecurring != nil {
		tx.IsRecurring = *req.IsRecurring
	}
	if req.RecurrenceFrequency != nil {
		tx.RecurrenceFrequency = *req.RecurrenceFrequency
	}
	if req.RecurrenceDay != nil {
		tx.RecurrenceDay = req.RecurrenceDay
	}
	if req.RecurrenceStartDate != nil {
		if tx.RecurrenceStartDate, err = parseOptionalDate(*req.RecurrenceStartDate); err != nil {
			return nil, err
		}
	}
	if req.RecurrenceEndDate != nil {
		if tx.RecurrenceEndDate, err = parseOptionalDate(*req.RecurrenceEndDate); err != nil {
			return nil, err
		}
	}

	if !tx.IsRecurring {
		tx.RecurrenceFrequency = ""
		tx.RecurrenceDay = nil
		tx.RecurrenceStartDate = nil
		tx.RecurrenceEndDate = nil
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, &tx); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	publish(ctx, s.publisher, s.logger, events.New(events.TransactionUpdated, tx.ID, tx))
	return &tx, nil
}

// DeleteTransaction removes a transaction. Children generated from a
// template are kept and unlinked.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.transactionRepo.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	publish(ctx, s.publisher, s.logger, events.New(events.TransactionDeleted, id, nil))
	return nil
}
