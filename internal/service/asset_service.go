package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Money-Manager-Backend/internal/analytics"
	"github.com/ndewijer/Money-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Money-Manager-Backend/internal/events"
	"github.com/ndewijer/Money-Manager-Backend/internal/model"
	"github.com/ndewijer/Money-Manager-Backend/internal/repository"
)

// AssetService handles portfolio asset business logic.
type AssetService struct {
	assetRepo *repository.AssetRepository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewAssetService creates a new AssetService with the provided repository dependencies.
func NewAssetService(
	assetRepo *repository.AssetRepository,
	publisher events.Publisher,
	logger *slog.Logger,
) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// ListAssets returns every asset.
func (s *AssetService) ListAssets(ctx context.Context) ([]model.Asset, error) {
	return s.assetRepo.ListAssets(ctx)
}

// GetAsset retrieves a single asset.
// Returns apperrors.ErrAssetNotFound if it does not exist.
func (s *AssetService) GetAsset(ctx context.Context, id string) (model.Asset, error) {
	return s.assetRepo.GetAsset(ctx, id)
}

// CreateAsset stores a validated asset. When no value is supplied it is
// derived as bought price times shares.
func (s *AssetService) CreateAsset(ctx context.Context, req request.CreateAssetRequest) (*model.Asset, error) {
	asset := &model.Asset{
		ID:          uuid.New().String(),
		Ticker:      strings.ToUpper(strings.TrimSpace(req.Ticker)),
		Name:        strings.TrimSpace(req.Name),
		Type:        strings.TrimSpace(req.Type),
		BoughtPrice: orZero(req.BoughtPrice),
		Shares:      orZero(req.Shares),
		Broker:      strings.TrimSpace(req.Broker),
		Sector:      strings.TrimSpace(req.Sector),
		Industry:    strings.TrimSpace(req.Industry),
		Countries:   strings.Join(analytics.SplitCountries(req.Countries), ", "),
		Currency:    strings.ToUpper(strings.TrimSpace(req.Currency)),
		CreatedAt:   time.Now().UTC(),
	}
	if req.Value.Valid {
		asset.Value = req.Value.Decimal
	} else {
		asset.Value = deriveValue(asset.BoughtPrice, asset.Shares)
	}

	if err := s.assetRepo.InsertAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	publish(ctx, s.publisher, s.logger, events.New(events.AssetCreated, asset.ID, asset))
	return asset, nil
}

// UpdateAsset applies the fields present in req. Changing bought price or
// shares without a new value re-derives the value.
func (s *AssetService) UpdateAsset(ctx context.Context, id string, req request.UpdateAssetRequest) (*model.Asset, error) {
	asset, err := s.assetRepo.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Ticker != nil {
		asset.Ticker = strings.ToUpper(strings.TrimSpace(*req.Ticker))
	}
	if req.Name != nil {
		asset.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		asset.Type = strings.TrimSpace(*req.Type)
	}
	if req.BoughtPrice != nil {
		asset.BoughtPrice = *req.BoughtPrice
	}
	if req.Shares != nil {
		asset.Shares = *req.Shares
	}
	if req.Broker != nil {
		asset.Broker = strings.TrimSpace(*req.Broker)
	}
	if req.Sector != nil {
		asset.Sector = strings.TrimSpace(*req.Sector)
	}
	if req.Industry != nil {
		asset.Industry = strings.TrimSpace(*req.Industry)
	}
	if req.Countries != nil {
		asset.Countries = strings.Join(analytics.SplitCountries(*req.Countries), ", ")
	}
	if req.Currency != nil {
		asset.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}

	switch {
	case req.Value != nil:
		asset.Value = *req.Value
	case req.BoughtPrice != nil || req.Shares != nil:
		asset.Value = deriveValue(asset.BoughtPrice, asset.Shares)
	}

	if err := s.assetRepo.UpdateAsset(ctx, &asset); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	publish(ctx, s.publisher, s.logger, events.New(events.AssetUpdated, asset.ID, asset))
	return &asset, nil
}

// DeleteAsset removes an asset and its price history.
func (s *AssetService) DeleteAsset(ctx context.Context, id string) error {
	if err := s.assetRepo.DeleteAsset(ctx, id); err != nil {
		return err
	}

	publish(ctx, s.publisher, s.logger, events.New(events.AssetDeleted, id, nil))
	return nil
}

// Breakdown groups every stored asset along dimension d.
func (s *AssetService) Breakdown(ctx context.Context, d analytics.Dimension, limit int) (analytics.Breakdown, error) {
	assets, err := s.assetRepo.ListAssets(ctx)
	if err != nil {
		return analytics.Breakdown{}, err
	}
	return analytics.BuildBreakdown(ToHoldings(assets), d, limit)
}

// ToHoldings converts stored assets for the breakdown builder.
func ToHoldings(assets []model.Asset) []analytics.Holding {
	holdings := make([]analytics.Holding, len(assets))
	for i, a := range assets {
		holdings[i] = analytics.Holding{
			ID:          a.ID,
			Ticker:      a.Ticker,
			Name:        a.Name,
			Type:        a.Type,
			BoughtPrice: analytics.NewNumber(a.BoughtPrice),
			Shares:      analytics.NewNumber(a.Shares),
			Value:       analytics.NewNumber(a.Value),
			Broker:      a.Broker,
			Sector:      a.Sector,
			Industry:    a.Industry,
			Countries:   a.Countries,
			Currency:    a.Currency,
		}
	}
	return holdings
}

func deriveValue(price, shares decimal.Decimal) decimal.Decimal {
	return price.Mul(shares).Round(2)
}

func orZero(n decimal.NullDecimal) decimal.Decimal {
	if n.Valid {
		return n.Decimal
	}
	return decimal.Zero
}
