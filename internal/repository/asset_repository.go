package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Money-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Money-Manager-Backend/internal/model"
)

// AssetRepository provides data access methods for the portfolio_asset table.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `
	id, ticker, name, type, bought_price, shares, value, broker, sector,
	industry, countries, currency, created_at`

// ListAssets returns all assets in creation order.
func (r *AssetRepository) ListAssets(ctx context.Context) ([]model.Asset, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+assetColumns+` FROM portfolio_asset ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_asset table: %w", err)
	}
	return assets, nil
}

// GetAsset retrieves a single asset by ID.
// Returns apperrors.ErrAssetNotFound if no row matches.
func (r *AssetRepository) GetAsset(ctx context.Context, id string) (model.Asset, error) {
	a, err := scanAsset(r.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM portfolio_asset WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	return a, err
}

// InsertAsset stores a new asset.
func (r *AssetRepository) InsertAsset(ctx context.Context, a *model.Asset) error {
	query := `INSERT INTO portfolio_asset (` + assetColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Ticker,
		a.Name,
		a.Type,
		a.BoughtPrice,
		a.Shares,
		a.Value,
		a.Broker,
		a.Sector,
		a.Industry,
		a.Countries,
		a.Currency,
		formatTimestamp(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// UpdateAsset overwrites every mutable column of an existing asset.
// Returns apperrors.ErrAssetNotFound if no row matches.
func (r *AssetRepository) UpdateAsset(ctx context.Context, a *model.Asset) error {
	query := `
		UPDATE portfolio_asset
		SET ticker = ?, name = ?, type = ?, bought_price = ?, shares = ?, value = ?,
			broker = ?, sector = ?, industry = ?, countries = ?, currency = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		a.Ticker,
		a.Name,
		a.Type,
		a.BoughtPrice,
		a.Shares,
		a.Value,
		a.Broker,
		a.Sector,
		a.Industry,
		a.Countries,
		a.Currency,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	return expectOneRow(result, apperrors.ErrAssetNotFound)
}

// DeleteAsset removes an asset together with its price history.
// Returns apperrors.ErrAssetNotFound if no row matches.
func (r *AssetRepository) DeleteAsset(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM portfolio_asset WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return expectOneRow(result, apperrors.ErrAssetNotFound)
}

func scanAsset(row scanner) (model.Asset, error) {
	var a model.Asset
	var createdAtStr string

	err := row.Scan(
		&a.ID,
		&a.Ticker,
		&a.Name,
		&a.Type,
		&a.BoughtPrice,
		&a.Shares,
		&a.Value,
		&a.Broker,
		&a.Sector,
		&a.Industry,
		&a.Countries,
		&a.Currency,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return a, err
	}
	if err != nil {
		return a, fmt.Errorf("failed to scan portfolio_asset results: %w", err)
	}

	a.CreatedAt, err = ParseTime(createdAtStr)
	return a, err
}
