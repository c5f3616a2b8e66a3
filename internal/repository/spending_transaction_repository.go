package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Money-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Money-Manager-Backend/internal/model"
)

// TransactionRepository provides data access methods for the spending_transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `
	id, date, category, amount, description, is_recurring,
	recurrence_frequency, recurrence_day, recurrence_start_date, recurrence_end_date,
	parent_transaction_id, created_at`

// sortColumns maps API sort keys to SQL. Only these values are ever
// interpolated into ORDER BY.
var sortColumns = map[string]string{
	"date":        "date",
	"amount":      "CAST(amount AS REAL)",
	"category":    "category",
	"description": "description",
}

// ListTransactions returns every transaction ordered by sortKey.
// Ties are broken by creation time so the order is stable.
func (r *TransactionRepository) ListTransactions(ctx context.Context, sortKey string, desc bool) ([]model.SpendingTransaction, error) {
	column, ok := sortColumns[sortKey]
	if !ok {
		column = sortColumns["date"]
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}

	query := `SELECT ` + transactionColumns + `
		FROM spending_transaction
		ORDER BY ` + column + ` ` + dir + `, created_at ` + dir + `, id`

	return r.query(ctx, query)
}

// ListBetween returns the transactions dated from start through end inclusive,
// oldest first.
func (r *TransactionRepository) ListBetween(ctx context.Context, start, end time.Time) ([]model.SpendingTransaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM spending_transaction
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, created_at ASC`

	return r.query(ctx, query, formatDate(start), formatDate(end))
}

// ListTemplates returns every recurring template.
func (r *TransactionRepository) ListTemplates(ctx context.Context) ([]model.SpendingTransaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM spending_transaction
		WHERE is_recurring = 1 AND parent_transaction_id IS NULL
		ORDER BY date ASC`

	return r.query(ctx, query)
}

// GetTransaction retrieves a single transaction by ID.
// Returns apperrors.ErrTransactionNotFound if no row matches.
func (r *TransactionRepository) GetTransaction(ctx context.Context, id string) (model.SpendingTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM spending_transaction WHERE id = ?`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.SpendingTransaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.SpendingTransaction{}, err
	}
	return tx, nil
}

// InsertTransaction stores a new transaction.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, tx *model.SpendingTransaction) error {
	query := `
		INSERT INTO spending_transaction (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, transactionArgs(tx)...); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// InsertGenerated stores a transaction produced from a recurring template.
// It reports false without error when the template already has a child on
// that date.
func (r *TransactionRepository) InsertGenerated(ctx context.Context, tx *model.SpendingTransaction) (bool, error) {
	query := `
		INSERT INTO spending_transaction (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, transactionArgs(tx)...)
	if err != nil {
		return false, fmt.Errorf("failed to insert generated transaction: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// UpdateTransaction overwrites every mutable column of an existing transaction.
// Returns apperrors.ErrTransactionNotFound if no row matches.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, tx *model.SpendingTransaction) error {
	query := `
		UPDATE spending_transaction
		SET date = ?, category = ?, amount = ?, description = ?, is_recurring = ?,
			recurrence_frequency = ?, recurrence_day = ?, recurrence_start_date = ?, recurrence_end_date = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		formatDate(tx.Date),
		tx.Category,
		tx.Amount,
		tx.Description,
		tx.IsRecurring,
		nullString(tx.RecurrenceFrequency),
		nullInt(tx.RecurrenceDay),
		nullDate(tx.RecurrenceStartDate),
		nullDate(tx.RecurrenceEndDate),
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return expectOneRow(result, apperrors.ErrTransactionNotFound)
}

// DeleteTransaction removes a transaction. Children generated from it keep
// their rows and lose the link to the template.
// Returns apperrors.ErrTransactionNotFound if no row matches.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM spending_transaction WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return expectOneRow(result, apperrors.ErrTransactionNotFound)
}

func (r *TransactionRepository) query(ctx context.Context, query string, args ...any) ([]model.SpendingTransaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query spending_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.SpendingTransaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating spending_transaction table: %w", err)
	}
	return transactions, nil
}

func transactionArgs(tx *model.SpendingTransaction) []any {
	return []any{
		tx.ID,
		formatDate(tx.Date),
		tx.Category,
		tx.Amount,
		tx.Description,
		tx.IsRecurring,
		nullString(tx.RecurrenceFrequency),
		nullInt(tx.RecurrenceDay),
		nullDate(tx.RecurrenceStartDate),
		nullDate(tx.RecurrenceEndDate),
		nullString(tx.ParentTransactionID),
		formatTimestamp(tx.CreatedAt),
	}
}

func scanTransaction(row scanner) (model.SpendingTransaction, error) {
	var (
		tx                    model.SpendingTransaction
		dateStr, createdAtStr string
		frequency, parentID   sql.NullString
		startStr, endStr      sql.NullString
		day                   sql.NullInt64
	)

	err := row.Scan(
		&tx.ID,
		&dateStr,
		&tx.Category,
		&tx.Amount,
		&tx.Description,
		&tx.IsRecurring,
		&frequency,
		&day,
		&startStr,
		&endStr,
		&parentID,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return tx, err
	}
	if err != nil {
		return tx, fmt.Errorf("failed to scan spending_transaction results: %w", err)
	}

	if tx.Date, err = ParseTime(dateStr); err != nil {
		return tx, err
	}
	if tx.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return tx, err
	}
	if tx.RecurrenceStartDate, err = parseNullDate(startStr); err != nil {
		return tx, err
	}
	if tx.RecurrenceEndDate, err = parseNullDate(endStr); err != nil {
		return tx, err
	}
	tx.RecurrenceFrequency = frequency.String
	tx.ParentTransactionID = parentID.String
	tx.RecurrenceDay = intPtr(day)

	return tx, nil
}

// expectOneRow maps a zero-row write to notFound.
func expectOneRow(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
