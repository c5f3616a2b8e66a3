package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Money-Manager-Backend/internal/model"
)

// AccountRepository provides data access methods for the account_balance table.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// ListAccounts returns all accounts ordered by name.
func (r *AccountRepository) ListAccounts(ctx context.Context) ([]model.AccountBalance, error) {
	query := `
		SELECT id, name, institution, type, balance, last_updated, account_number, apy, icon
		FROM account_balance
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query account_balance table: %w", err)
	}
	defer rows.Close()

	accounts := []model.AccountBalance{}
	for rows.Next() {
		var a model.AccountBalance
		var lastUpdated sql.NullString

		err := rows.Scan(&a.ID, &a.Name, &a.Institution, &a.Type, &a.Balance, &lastUpdated, &a.AccountNumber, &a.APY, &a.Icon)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account_balance results: %w", err)
		}
		if a.LastUpdated, err = parseNullDate(lastUpdated); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account_balance table: %w", err)
	}
	return accounts, nil
}

// InsertAccount stores a new account.
func (r *AccountRepository) InsertAccount(ctx context.Context, a *model.AccountBalance) error {
	query := `
		INSERT INTO account_balance (id, name, institution, type, balance, last_updated, account_number, apy, icon)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Name, a.Institution, a.Type, a.Balance, nullDate(a.LastUpdated), a.AccountNumber, a.APY, a.Icon,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}
