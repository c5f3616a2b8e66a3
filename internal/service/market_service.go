package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Money-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Money-Manager-Backend/internal/model"
	"github.com/ndewijer/Money-Manager-Backend/internal/yahoo"
)

// marketConcurrency bounds parallel Yahoo requests of one lookup.
const marketConcurrency = 4

// MarketService looks up quotes and symbols on Yahoo Finance.
type MarketService struct {
	yahooClient yahoo.Client
	logger      *slog.Logger
}

// NewMarketService creates a new MarketService.
func NewMarketService(yahooClient yahoo.Client, logger *slog.Logger) *MarketService {
	return &MarketService{
		yahooClient: yahooClient,
		logger:      logger,
	}
}

// Quote returns the latest price and descriptive metadata of a symbol.
//
// The chart supplies the price and the search supplies sector and industry.
// Both requests run concurrently; a failed search only loses the metadata.
func (s *MarketService) Quote(ctx context.Context, symbol string) (model.MarketQuote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return model.MarketQuote{}, apperrors.ErrInvalidSymbol
	}

	var (
		chart yahoo.PriceChart
		match *yahoo.SearchQuote
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.yahooClient.QueryYahooFiveDaySymbol(gctx, symbol)
		if err != nil {
			return err
		}
		chart, err = yahoo.ParseChart(resp)
		return err
	})
	g.Go(func() error {
		resp, err := s.yahooClient.SearchYahoo(gctx, symbol)
		if err != nil {
			s.logger.DebugContext(gctx, "symbol metadata lookup failed", "symbol", symbol, "error", err)
			return nil
		}
		for i := range resp.Quotes {
			if strings.EqualFold(resp.Quotes[i].Symbol, symbol) {
				match = &resp.Quotes[i]
				break
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.MarketQuote{}, marketError(symbol, err)
	}

	price := chart.RegularMarketPrice
	if price.IsZero() {
		if bar, ok := chart.LatestBar(); ok {
			price = bar.Close
		}
	}

	quote := model.MarketQuote{
		Symbol:    symbol,
		ShortName: chart.ShortName,
		LongName:  chart.LongName,
		QuoteType: chart.InstrumentType,
		AssetType: yahoo.MapQuoteType(chart.InstrumentType),
		Price:     price,
		Currency:  chart.Currency,
		Exchange:  chart.FullExchangeName,
	}
	if match != nil {
		quote.Sector = match.Sector
		quote.Industry = match.Industry
		if quote.LongName == "" {
			quote.LongName = match.LongName
		}
		if quote.ShortName == "" {
			quote.ShortName = match.ShortName
		}
		if quote.QuoteType == "" {
			quote.QuoteType = match.QuoteType
			quote.AssetType = yahoo.MapQuoteType(match.QuoteType)
		}
	}
	return quote, nil
}

// Quotes quotes several symbols concurrently. A symbol that fails is
// reported in Failed; only a fully failed lookup returns an error.
func (s *MarketService) Quotes(ctx context.Context, symbols []string) (model.QuoteResult, error) {
	if len(symbols) == 0 {
		return model.QuoteResult{}, apperrors.ErrInvalidSymbol
	}

	quotes := make([]*model.MarketQuote, len(symbols))
	var (
		mu      sync.Mutex
		failed  = map[string]string{}
		lastErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(marketConcurrency)
	for i, symbol := range symbols {
		g.Go(func() error {
			q, err := s.Quote(gctx, symbol)
			if err != nil {
				mu.Lock()
				failed[symbol] = err.Error()
				lastErr = err
				mu.Unlock()
				return nil
			}
			quotes[i] = &q
			return nil
		})
	}
	_ = g.Wait()

	result := model.QuoteResult{Quotes: []model.MarketQuote{}}
	for _, q := range quotes {
		if q != nil {
			result.Quotes = append(result.Quotes, *q)
		}
	}
	if len(failed) > 0 {
		result.Failed = failed
	}
	if len(result.Quotes) == 0 {
		return result, lastErr
	}
	return result, nil
}

// Search lists symbols matching query.
func (s *MarketService) Search(ctx context.Context, query string) ([]model.SymbolMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.ErrInvalidQuery
	}

	resp, err := s.yahooClient.SearchYahoo(ctx, query)
	if err != nil {
		return nil, marketError(query, err)
	}

	matches := make([]model.SymbolMatch, 0, len(resp.Quotes))
	for _, q := range resp.Quotes {
		if q.Symbol == "" {
			continue
		}
		matches = append(matches, model.SymbolMatch{
			Symbol:    q.Symbol,
			Name:      q.Name(),
			QuoteType: q.QuoteType,
			AssetType: yahoo.MapQuoteType(q.QuoteType),
			Exchange:  q.ExchDisp,
			Sector:    q.Sector,
			Industry:  q.Industry,
		})
	}
	return matches, nil
}

// marketError maps client failures onto application errors.
func marketError(subject string, err error) error {
	switch {
	case errors.Is(err, yahoo.ErrNoResults):
		return fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, subject)
	case errors.Is(err, yahoo.ErrUnavailable):
		return fmt.Errorf("%w: %w", apperrors.ErrMarketDataUnavailable, err)
	default:
		return fmt.Errorf("%w: %s: %w", apperrors.ErrMarketDataUnavailable, subject, err)
	}
}
