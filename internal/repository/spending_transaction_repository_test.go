package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Money-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Money-Manager-Backend/internal/model"
	"github.com/ndewijer/Money-Manager-Backend/internal/repository"
	"github.com/ndewijer/Money-Manager-Backend/internal/testutil"
)

func TestTransactionRepository_GetTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips a recurring template", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		start := testutil.Date(2026, time.January, 1)
		want := testutil.NewTransaction().
			WithCategory("Rent").
			WithAmount("1200.00").
			Recurring(model.FrequencyMonthly, 15).
			Between(start, time.Time{}).
			Build(t, db)

		got, err := repo.GetTransaction(ctx, want.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if !got.Amount.Equal(decimal.RequireFromString("1200")) {
			t.Errorf("Expected amount 1200, got %s", got.Amount)
		}
		if !got.IsRecurring || got.RecurrenceFrequency != model.FrequencyMonthly {
			t.Errorf("Expected monthly template, got recurring=%v frequency=%q", got.IsRecurring, got.RecurrenceFrequency)
		}
		if got.RecurrenceDay == nil || *got.RecurrenceDay != 15 {
			t.Errorf("Expected recurrence day 15, got %v", got.RecurrenceDay)
		}
		if got.RecurrenceStartDate == nil || !got.RecurrenceStartDate.Equal(start) {
			t.Errorf("Expected start %v, got %v", start, got.RecurrenceStartDate)
		}
		if got.RecurrenceEndDate != nil {
			t.Errorf("Expected open recurrence, got end %v", got.RecurrenceEndDate)
		}
		if !got.Date.Equal(want.Date) {
			t.Errorf("Expected date %v, got %v", want.Date, got.Date)
		}
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		_, err := repo.GetTransaction(ctx, testutil.MakeID())
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestTransactionRepository_ListTransactions(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	testutil.NewTransaction().WithDescription("b").WithAmount("9.5").WithDate(testutil.Date(2026, time.March, 1)).Build(t, db)
	testutil.NewTransaction().WithDescription("a").WithAmount("100").WithDate(testutil.Date(2026, time.January, 1)).Build(t, db)
	testutil.NewTransaction().WithDescription("c").WithAmount("20").WithDate(testutil.Date(2026, time.February, 1)).Build(t, db)

	descriptions := func(txs []model.SpendingTransaction) string {
		s := ""
		for _, tx := range txs {
			s += tx.Description
		}
		return s
	}

	tests := []struct {
		sortKey string
		desc    bool
		want    string
	}{
		{"date", false, "acb"},
		{"date", true, "bca"},
		{"amount", false, "bca"},
		{"amount", true, "acb"},
		{"description", false, "abc"},
		{"unknown", false, "acb"},
	}

	for _, tt := range tests {
		t.Run(tt.sortKey, func(t *testing.T) {
			txs, err := repo.ListTransactions(ctx, tt.sortKey, tt.desc)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got := descriptions(txs); got != tt.want {
				t.Errorf("Expected order %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTransactionRepository_ListBetween(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	testutil.NewTransaction().WithDate(testutil.Date(2026, time.January, 31)).Build(t, db)
	testutil.NewTransaction().WithDate(testutil.Date(2026, time.February, 1)).Build(t, db)
	testutil.NewTransaction().WithDate(testutil.Date(2026, time.February, 28)).Build(t, db)
	testutil.NewTransaction().WithDate(testutil.Date(2026, time.March, 1)).Build(t, db)

	txs, err := repo.ListBetween(ctx, testutil.Date(2026, time.February, 1), testutil.Date(2026, time.February, 28))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("Expected 2 transactions in February, got %d", len(txs))
	}
	if !txs[0].Date.Before(txs[1].Date) {
		t.Errorf("Expected oldest first, got %v then %v", txs[0].Date, txs[1].Date)
	}
}

func TestTransactionRepository_InsertGenerated(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	template := testutil.NewTransaction().Recurring(model.FrequencyWeekly, 0).Build(t, db)

	child := func() *model.SpendingTransaction {
		return &model.SpendingTransaction{
			ID:                  testutil.MakeID(),
			Date:                testutil.Date(2026, time.January, 17),
			Category:            template.Category,
			Amount:              template.Amount,
			ParentTransactionID: template.ID,
			CreatedAt:           time.Now().UTC(),
		}
	}

	inserted, err := repo.InsertGenerated(ctx, child())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !inserted {
		t.Error("Expected first child to be inserted")
	}

	inserted, err = repo.InsertGenerated(ctx, child())
	if err != nil {
		t.Fatalf("Expected no error on duplicate, got %v", err)
	}
	if inserted {
		t.Error("Expected duplicate child to be skipped")
	}

	templates, err := repo.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(templates) != 1 || templates[0].ID != template.ID {
		t.Errorf("Expected only the template to be listed, got %d", len(templates))
	}
}

func TestTransactionRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("updates mutable columns", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		tx := testutil.NewTransaction().Build(t, db)
		tx.Category = "Dining"
		tx.Amount = decimal.RequireFromString("18.25")

		if err := repo.UpdateTransaction(ctx, &tx); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		got, err := repo.GetTransaction(ctx, tx.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Category != "Dining" || !got.Amount.Equal(tx.Amount) {
			t.Errorf("Expected Dining 18.25, got %s %s", got.Category, got.Amount)
		}
	})

	t.Run("update of unknown id is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		tx := model.SpendingTransaction{ID: testutil.MakeID(), Date: time.Now()}
		if err := repo.UpdateTransaction(ctx, &tx); !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("deleting a template unlinks its children", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		template := testutil.NewTransaction().Recurring(model.FrequencyDaily, 0).Build(t, db)
		child := &model.SpendingTransaction{
			ID:                  testutil.MakeID(),
			Date:                testutil.Date(2026, time.January, 11),
			Category:            template.Category,
			Amount:              template.Amount,
			ParentTransactionID: template.ID,
			CreatedAt:           time.Now().UTC(),
		}
		if _, err := repo.InsertGenerated(ctx, child); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if err := repo.DeleteTransaction(ctx, template.ID); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		got, err := repo.GetTransaction(ctx, child.ID)
		if err != nil {
			t.Fatalf("Expected child to survive, got %v", err)
		}
		if got.ParentTransactionID != "" {
			t.Errorf("Expected child to be unlinked, got parent %q", got.ParentTransactionID)
		}

		if err := repo.DeleteTransaction(ctx, template.ID); !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound on second delete, got %v", err)
		}
	})
}
