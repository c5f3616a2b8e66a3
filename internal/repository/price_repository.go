package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Money-Manager-Backend/internal/model"
)

// PriceRepository provides data access methods for the portfolio_asset_price table.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// UpsertPrices inserts or replaces price rows keyed on asset and date in a
// single transaction.
func (r *PriceRepository) UpsertPrices(ctx context.Context, prices []model.AssetPrice) error {
	if len(prices) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO portfolio_asset_price
			(asset_id, price_date, ticker, open, high, low, close, volume, currency, shares, value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(asset_id, price_date) DO UPDATE SET
			ticker = excluded.ticker,
			open = excluded.open,
			high = excluded.high,
			low = excluded.low,
			close = excluded.close,
			volume = excluded.volume,
			currency = excluded.currency,
			shares = excluded.shares,
			value = excluded.value`)
	if err != nil {
		return fmt.Errorf("failed to prepare price upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range prices {
		_, err := stmt.ExecContext(ctx,
			p.AssetID,
			formatDate(p.Date),
			p.Ticker,
			p.Open,
			p.High,
			p.Low,
			p.Close,
			p.Volume,
			p.Currency,
			p.Shares,
			p.Value,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert price for %s on %s: %w", p.AssetID, formatDate(p.Date), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit prices: %w", err)
	}
	return nil
}

// GetAssetHistory returns the price history of one asset, oldest first.
func (r *PriceRepository) GetAssetHistory(ctx context.Context, assetID string) ([]model.AssetPricePoint, error) {
	query := `
		SELECT price_date, close, value
		FROM portfolio_asset_price
		WHERE asset_id = ?
		ORDER BY price_date ASC`

	rows, err := r.db.QueryContext(ctx, query, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_asset_price table: %w", err)
	}
	defer rows.Close()

	points := []model.AssetPricePoint{}
	for rows.Next() {
		var p model.AssetPricePoint
		var dateStr string
		if err := rows.Scan(&dateStr, &p.Price, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_asset_price results: %w", err)
		}
		if p.Date, err = ParseTime(dateStr); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_asset_price table: %w", err)
	}
	return points, nil
}

// GetPortfolioHistory returns the summed value of all assets per day,
// oldest first. Values are summed in Go to keep decimal precision.
func (r *PriceRepository) GetPortfolioHistory(ctx context.Context) ([]model.PortfolioValuePoint, error) {
	query := `
		SELECT price_date, value
		FROM portfolio_asset_price
		ORDER BY price_date ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_asset_price table: %w", err)
	}
	defer rows.Close()

	points := []model.PortfolioValuePoint{}
	var current string
	for rows.Next() {
		var dateStr string
		var value decimal.Decimal
		if err := rows.Scan(&dateStr, &value); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_asset_price results: %w", err)
		}

		if dateStr != current {
			date, err := ParseTime(dateStr)
			if err != nil {
				return nil, err
			}
			points = append(points, model.PortfolioValuePoint{Date: date, Value: decimal.Zero})
			current = dateStr
		}
		last := &points[len(points)-1]
		last.Value = last.Value.Add(value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_asset_price table: %w", err)
	}
	return points, nil
}
