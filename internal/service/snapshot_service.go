package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stocker-hk/stocker-backend/internal/model"
	"github.com/stocker-hk/stocker-backend/internal/repository"
)

// SnapshotService writes the daily point-in-time record of an account's net
// worth. The scheduled job and the manual endpoint both land here; reruns for
// the same day overwrite.
type SnapshotService struct {
	snapshotRepo     *repository.SnapshotRepository
	portfolioService *PortfolioService
	assetService     *AssetService
	balanceService   *BalanceService
	logger           zerolog.Logger
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	snapshotRepo *repository.SnapshotRepository,
	portfolioService *PortfolioService,
	assetService *AssetService,
	balanceService *BalanceService,
	logger zerolog.Logger,
) *SnapshotService {
	return &SnapshotService{
		snapshotRepo:     snapshotRepo,
		portfolioService: portfolioService,
		assetService:     assetService,
		balanceService:   balanceService,
		logger:           logger.With().Str("component", "snapshot").Logger(),
	}
}

// RunSnapshot refreshes prices, replays the account, and upserts today's
// snapshot row. The price refresh is best-effort: symbols that fail keep
// their cached price and the snapshot proceeds.
func (s *SnapshotService) RunSnapshot(ctx context.Context, accountID string) (model.DailySnapshot, error) {
	if _, err := s.assetService.RefreshPrices(ctx); err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to refresh prices for snapshot: %w", err)
	}

	dashboard, err := s.portfolioService.GetDashboard(ctx, accountID)
	if err != nil {
		return model.DailySnapshot{}, err
	}
	balance, err := s.balanceService.Recompute(ctx, accountID)
	if err != nil {
		return model.DailySnapshot{}, err
	}

	positionsJSON, err := json.Marshal(dashboard.Positions)
	if err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to encode snapshot positions: %w", err)
	}

	summary := dashboard.Summary
	now := time.Now().UTC()
	snapshot := model.DailySnapshot{
		ID:               uuid.New().String(),
		AccountID:        accountID,
		Date:             now.Truncate(24 * time.Hour),
		NetLiquidity:     summary.TotalAssets,
		CurrentCash:      summary.CurrentCash,
		CashUSD:          balance.CashUSD,
		CashHKD:          balance.CashHKD,
		TotalMarketValue: summary.TotalMarketValue,
		TotalInvested:    summary.TotalInvested,
		NetProfit:        summary.NetProfit,
		ROIPercentage:    summary.ROIPercentage,
		ExchangeRate:     summary.USDToHKDRate,
		Positions:        string(positionsJSON),
		CreatedAt:        now,
	}

	if err := s.snapshotRepo.UpsertSnapshot(ctx, &snapshot); err != nil {
		return model.DailySnapshot{}, err
	}

	s.logger.Info().
		Str("account_id", accountID).
		Float64("net_liquidity", snapshot.NetLiquidity).
		Msg("daily snapshot written")

	return snapshot, nil
}

// GetSnapshots retrieves snapshots for an account in an optional date range.
func (s *SnapshotService) GetSnapshots(accountID string, startDate, endDate time.Time) ([]model.DailySnapshot, error) {
	return s.snapshotRepo.GetSnapshots(accountID, startDate, endDate)
}
