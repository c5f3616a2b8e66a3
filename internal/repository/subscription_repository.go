package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Money-Manager-Backend/internal/model"
)

// SubscriptionRepository provides data access methods for the subscription table.
type SubscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new SubscriptionRepository with the provided database connection.
func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// ListSubscriptions returns all subscriptions ordered by next billing date,
// undated subscriptions last.
func (r *SubscriptionRepository) ListSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	query := `
		SELECT id, name, category, amount, billing_cycle, next_billing, icon, status
		FROM subscription
		ORDER BY next_billing IS NULL, next_billing ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscription table: %w", err)
	}
	defer rows.Close()

	subscriptions := []model.Subscription{}
	for rows.Next() {
		var s model.Subscription
		var nextBilling sql.NullString

		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Amount, &s.BillingCycle, &nextBilling, &s.Icon, &s.Status); err != nil {
			return nil, fmt.Errorf("failed to scan subscription results: %w", err)
		}
		if s.NextBilling, err = parseNullDate(nextBilling); err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscription table: %w", err)
	}
	return subscriptions, nil
}

// InsertSubscription stores a new subscription.
func (r *SubscriptionRepository) InsertSubscription(ctx context.Context, s *model.Subscription) error {
	query := `
		INSERT INTO subscription (id, name, category, amount, billing_cycle, next_billing, icon, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Category, s.Amount, s.BillingCycle, nullDate(s.NextBilling), s.Icon, s.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert subscription: %w", err)
	}
	return nil
}
