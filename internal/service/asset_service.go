package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/google/uuid"

	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/marketdata"
	"github.com/stocker-hk/stocker-backend/internal/model"
	"github.com/stocker-hk/stocker-backend/internal/repository"
)

// priceFetchConcurrency bounds simultaneous market-data requests.
const priceFetchConcurrency = 4

// AssetService manages the asset catalogue and its cached prices.
type AssetService struct {
	assetRepo *repository.AssetRepository
	market    marketdata.Client
	logger    zerolog.Logger
}

// NewAssetService creates a new AssetService with the provided dependencies.
func NewAssetService(assetRepo *repository.AssetRepository, market marketdata.Client, logger zerolog.Logger) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		market:    market,
		logger:    logger.With().Str("component", "asset").Logger(),
	}
}

// PriceRefreshResult summarizes one refresh pass over the asset catalogue.
type PriceRefreshResult struct {
	Updated int      `json:"updated"`
	Failed  []string `json:"failed,omitempty"`
}

// RefreshPrices fetches the current price for every known asset and stores it.
// Fetches run concurrently with a bounded limit. A symbol that fails to fetch
// is reported but never aborts the pass; its cached price simply stays stale.
func (s *AssetService) RefreshPrices(ctx context.Context) (PriceRefreshResult, error) {
	assets, err := s.assetRepo.GetAllAssets()
	if err != nil {
		return PriceRefreshResult{}, err
	}

	var (
		mu     sync.Mutex
		result PriceRefreshResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(priceFetchConcurrency)

	for _, asset := range assets {
		asset := asset
		g.Go(func() error {
			quote, err := s.market.CurrentPrice(gctx, asset.Symbol)
			if err != nil {
				s.logger.Warn().Err(err).Str("symbol", asset.Symbol).Msg("price fetch failed")
				mu.Lock()
				result.Failed = append(result.Failed, asset.Symbol)
				mu.Unlock()
				return nil
			}

			if err := s.assetRepo.UpdatePrice(gctx, asset.ID, quote.Price, time.Now().UTC()); err != nil {
				s.logger.Error().Err(err).Str("symbol", asset.Symbol).Msg("price store failed")
				mu.Lock()
				result.Failed = append(result.Failed, asset.Symbol)
				mu.Unlock()
				return nil
			}

			mu.Lock()
			result.Updated++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return PriceRefreshResult{}, err
	}

	s.logger.Info().
		Int("updated", result.Updated).
		Int("failed", len(result.Failed)).
		Msg("price refresh complete")

	return result, nil
}

// EnsureAsset returns the asset for a symbol, creating it on first sight.
// The symbol is normalized first, and a newly created asset inherits the
// currency implied by its market unless the caller supplies one.
func (s *AssetService) EnsureAsset(ctx context.Context, rawSymbol string, currency fx.Currency) (model.Asset, error) {
	symbol, marketCurrency := NormalizeSymbol(rawSymbol)

	asset, err := s.assetRepo.GetAssetBySymbol(symbol)
	if err == nil {
		return asset, nil
	}

	if currency == "" {
		currency = marketCurrency
	}
	asset = model.Asset{
		ID:       uuid.New().String(),
		Symbol:   symbol,
		Currency: currency,
	}
	if err := s.assetRepo.UpsertAsset(ctx, &asset); err != nil {
		return model.Asset{}, err
	}
	return s.assetRepo.GetAssetBySymbol(symbol)
}

// NormalizeSymbol canonicalizes a raw ticker. Purely numeric tickers are Hong
// Kong listings: they are zero-padded to four digits with an .HK suffix and
// trade in HKD. Spreadsheet exports sometimes render them as floats ("700.0"),
// so the numeric check parses rather than pattern-matches. Everything else is
// upper-cased and assumed to trade in USD.
func NormalizeSymbol(raw string) (string, fx.Currency) {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return fmt.Sprintf("%04d.HK", int(n)), fx.HKD
	}
	if strings.HasSuffix(trimmed, ".HK") {
		return trimmed, fx.HKD
	}
	return trimmed, fx.USD
}
