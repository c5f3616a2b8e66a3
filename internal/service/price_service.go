package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Money-Manager-Backend/internal/events"
	"github.com/ndewijer/Money-Manager-Backend/internal/model"
	"github.com/ndewijer/Money-Manager-Backend/internal/repository"
	"github.com/ndewijer/Money-Manager-Backend/internal/yahoo"
)

// Defaults of the price jobs.
const (
	DefaultBackfillYears       = 2
	DefaultSnapshotConcurrency = 4
)

// PriceService records asset prices fetched from Yahoo Finance and serves
// the resulting history.
type PriceService struct {
	assetRepo   *repository.AssetRepository
	priceRepo   *repository.PriceRepository
	yahooClient yahoo.Client
	publisher   events.Publisher
	logger      *slog.Logger
	concurrency int
	years       int
	now         func() time.Time
}

// NewPriceService creates a new PriceService. concurrency <= 0 selects
// DefaultSnapshotConcurrency.
func NewPriceService(
	assetRepo *repository.AssetRepository,
	priceRepo *repository.PriceRepository,
	yahooClient yahoo.Client,
	publisher events.Publisher,
	logger *slog.Logger,
	concurrency int,
) *PriceService {
	if concurrency <= 0 {
		concurrency = DefaultSnapshotConcurrency
	}
	return &PriceService{
		assetRepo:   assetRepo,
		priceRepo:   priceRepo,
		yahooClient: yahooClient,
		publisher:   publisher,
		logger:      logger,
		concurrency: concurrency,
		years:       DefaultBackfillYears,
		now:         time.Now,
	}
}

// WithBackfillYears sets how many years Backfill loads when the caller
// passes no count. Values <= 0 are ignored.
func (s *PriceService) WithBackfillYears(years int) *PriceService {
	if years > 0 {
		s.years = years
	}
	return s
}

// fetchFunc loads the price bars of one asset.
type fetchFunc func(ctx context.Context, asset model.Asset) ([]yahoo.Bar, error)

// Snapshot stores the latest close of every asset with a ticker and
// revalues the asset at that close.
//
// Assets are fetched concurrently. A failing asset is reported in the
// result and does not stop the others.
func (s *PriceService) Snapshot(ctx context.Context) (model.SnapshotResult, error) {
	result, err := s.run(ctx, "snapshot", func(ctx context.Context, asset model.Asset) ([]yahoo.Bar, error) {
		resp, err := s.yahooClient.QueryYahooFiveDaySymbol(ctx, asset.Ticker)
		if err != nil {
			return nil, err
		}
		chart, err := yahoo.ParseChart(resp)
		if err != nil {
			return nil, err
		}
		latest, _ := chart.LatestBar()
		return []yahoo.Bar{latest}, nil
	}, true)
	if err != nil {
		return result, err
	}

	publish(ctx, s.publisher, s.logger, events.New(events.PricesSnapshotted, "", result))
	return result, nil
}

// Backfill stores the daily history of the last years years for every
// asset with a ticker. Existing days are overwritten. Historic values use
// the share count held today. years <= 0 selects the configured default.
func (s *PriceService) Backfill(ctx context.Context, years int) (model.SnapshotResult, error) {
	if years <= 0 {
		years = s.years
	}
	end := s.now().UTC()
	start := end.AddDate(-years, 0, 0)

	result, err := s.run(ctx, "backfill", func(ctx context.Context, asset model.Asset) ([]yahoo.Bar, error) {
		resp, err := s.yahooClient.QueryYahooSymbolByDateRange(ctx, asset.Ticker, start, end)
		if err != nil {
			return nil, err
		}
		chart, err := yahoo.ParseChart(resp)
		if err != nil {
			return nil, err
		}
		return chart.Bars, nil
	}, false)
	if err != nil {
		return result, err
	}

	publish(ctx, s.publisher, s.logger, events.New(events.PricesBackfilled, "", result))
	return result, nil
}

// run fetches bars for every asset with a ticker, stores them and, when
// revalue is set, updates each asset's value from its latest bar.
func (s *PriceService) run(ctx context.Context, job string, fetch fetchFunc, revalue bool) (model.SnapshotResult, error) {
	result := model.SnapshotResult{Failed: map[string]string{}}

	assets, err := s.assetRepo.ListAssets(ctx)
	if err != nil {
		return result, err
	}

	var mu sync.Mutex
	fail := func(asset model.Asset, err error) {
		mu.Lock()
		result.Failed[asset.Ticker] = err.Error()
		mu.Unlock()
		s.logger.WarnContext(ctx, "price fetch failed",
			"job", job,
			"asset", asset.ID,
			"ticker", asset.Ticker,
			"error", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, asset := range assets {
		if strings.TrimSpace(asset.Ticker) == "" {
			continue
		}
		g.Go(func() error {
			bars, err := fetch(gctx, asset)
			if err != nil {
				fail(asset, err)
				return nil
			}

			prices := make([]model.AssetPrice, 0, len(bars))
			for _, bar := range bars {
				prices = append(prices, toAssetPrice(asset, bar))
			}
			if err := s.priceRepo.UpsertPrices(gctx, prices); err != nil {
				fail(asset, err)
				return nil
			}

			if revalue && len(prices) > 0 {
				latest := prices[len(prices)-1]
				asset.Value = latest.Value
				if err := s.assetRepo.UpdateAsset(gctx, &asset); err != nil {
					fail(asset, err)
					return nil
				}
			}

			mu.Lock()
			result.Updated++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("%s failed: %w", job, err)
	}

	s.logger.InfoContext(ctx, "price job finished",
		"job", job,
		"updated", result.Updated,
		"failed", len(result.Failed))

	if len(result.Failed) == 0 {
		result.Failed = nil
	}
	return result, nil
}

func toAssetPrice(asset model.Asset, bar yahoo.Bar) model.AssetPrice {
	return model.AssetPrice{
		AssetID:  asset.ID,
		Date:     bar.Date,
		Ticker:   asset.Ticker,
		Open:     bar.Open,
		High:     bar.High,
		Low:      bar.Low,
		Close:    bar.Close,
		Volume:   bar.Volume,
		Currency: asset.Currency,
		Shares:   asset.Shares,
		Value:    bar.Close.Mul(asset.Shares).Round(2),
	}
}

// AssetHistory returns the stored price history of one asset, oldest first.
// Returns apperrors.ErrAssetNotFound if the asset does not exist.
func (s *PriceService) AssetHistory(ctx context.Context, assetID string) ([]model.AssetPricePoint, error) {
	if _, err := s.assetRepo.GetAsset(ctx, assetID); err != nil {
		return nil, err
	}
	return s.priceRepo.GetAssetHistory(ctx, assetID)
}

// PortfolioHistory returns the total portfolio value per recorded day.
func (s *PriceService) PortfolioHistory(ctx context.Context) ([]model.PortfolioValuePoint, error) {
	return s.priceRepo.GetPortfolioHistory(ctx)
}
