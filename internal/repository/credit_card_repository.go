package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Money-Manager-Backend/internal/model"
)

// CreditCardRepository provides data access methods for the credit_card table.
type CreditCardRepository struct {
	db *sql.DB
}

// NewCreditCardRepository creates a new CreditCardRepository with the provided database connection.
func NewCreditCardRepository(db *sql.DB) *CreditCardRepository {
	return &CreditCardRepository{db: db}
}

// ListCreditCards returns all cards ordered by name.
func (r *CreditCardRepository) ListCreditCards(ctx context.Context) ([]model.CreditCard, error) {
	query := `
		SELECT id, name, institution, type, last_four, current_balance, credit_limit,
			points_balance, points_name, points_value, cashback_rate, rewards_this_month,
			cashback_earned, icon, color
		FROM credit_card
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit_card table: %w", err)
	}
	defer rows.Close()

	cards := []model.CreditCard{}
	for rows.Next() {
		var c model.CreditCard
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Institution,
			&c.Type,
			&c.LastFour,
			&c.CurrentBalance,
			&c.CreditLimit,
			&c.PointsBalance,
			&c.PointsName,
			&c.PointsValue,
			&c.CashbackRate,
			&c.RewardsThisMonth,
			&c.CashbackEarned,
			&c.Icon,
			&c.Color,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit_card results: %w", err)
		}
		cards = append(cards, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit_card table: %w", err)
	}
	return cards, nil
}

// InsertCreditCard stores a new card.
func (r *CreditCardRepository) InsertCreditCard(ctx context.Context, c *model.CreditCard) error {
	query := `
		INSERT INTO credit_card (id, name, institution, type, last_four, current_balance, credit_limit,
			points_balance, points_name, points_value, cashback_rate, rewards_this_month,
			cashback_earned, icon, color)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Institution,
		c.Type,
		c.LastFour,
		c.CurrentBalance,
		c.CreditLimit,
		c.PointsBalance,
		c.PointsName,
		c.PointsValue,
		c.CashbackRate,
		c.RewardsThisMonth,
		c.CashbackEarned,
		c.Icon,
		c.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to insert credit card: %w", err)
	}
	return nil
}
