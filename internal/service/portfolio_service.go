package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/ledger"
	"github.com/stocker-hk/stocker-backend/internal/model"
	"github.com/stocker-hk/stocker-backend/internal/repository"
)

// PortfolioService computes the dashboard view: the per-asset position table
// from a full FIFO replay plus the account-level summary. Nothing here is
// persisted; every request replays from the raw rows at one exchange rate.
type PortfolioService struct {
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
	cashFlowRepo    *repository.CashFlowRepository
	rates           fx.RateProvider
	logger          zerolog.Logger
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	cashFlowRepo *repository.CashFlowRepository,
	rates fx.RateProvider,
	logger zerolog.Logger,
) *PortfolioService {
	return &PortfolioService{
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		cashFlowRepo:    cashFlowRepo,
		rates:           rates,
		logger:          logger.With().Str("component", "portfolio").Logger(),
	}
}

// GetDashboard builds the dashboard for an account. The exchange rate is
// resolved once and used for every conversion in the pass.
func (s *PortfolioService) GetDashboard(ctx context.Context, accountID string) (model.Dashboard, error) {
	rate, err := s.rates.USDToHKD(ctx)
	if err != nil {
		return model.Dashboard{}, err
	}

	assets, err := s.assetRepo.GetAllAssets()
	if err != nil {
		return model.Dashboard{}, err
	}
	transactions, err := s.transactionRepo.GetTransactions(accountID, time.Time{}, time.Time{})
	if err != nil {
		return model.Dashboard{}, err
	}
	flows, err := s.cashFlowRepo.GetCashFlows(accountID, time.Time{})
	if err != nil {
		return model.Dashboard{}, err
	}

	assetBySymbol := make(map[string]model.Asset, len(assets))
	for _, asset := range assets {
		assetBySymbol[asset.Symbol] = asset
	}
	txsBySymbol := make(map[string][]model.Transaction)
	for _, t := range transactions {
		txsBySymbol[t.Symbol] = append(txsBySymbol[t.Symbol], t)
	}

	positions := make([]model.Position, 0, len(txsBySymbol))
	var totalMarketValue float64
	for symbol, txs := range txsBySymbol {
		pos := ledger.ComputePosition(assetBySymbol[symbol], txs, rate)
		totalMarketValue += pos.MarketValue
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Symbol < positions[j].Symbol })

	cash := ledger.ReconcileCash(flows, transactions, rate)
	totalInvested := ledger.TotalDeposited(flows, rate)
	totalAssets := cash.TotalInBase + totalMarketValue
	netProfit := totalAssets - totalInvested

	var roi float64
	if totalInvested > 0 {
		roi = netProfit / totalInvested * 100
	}

	return model.Dashboard{
		Positions: positions,
		Summary: model.DashboardSummary{
			TotalInvested:    totalInvested,
			CurrentCash:      cash.TotalInBase,
			TotalMarketValue: totalMarketValue,
			TotalAssets:      totalAssets,
			NetProfit:        netProfit,
			ROIPercentage:    roi,
			USDToHKDRate:     rate,
		},
	}, nil
}
