package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/ledger"
	"github.com/stocker-hk/stocker-backend/internal/model"
	"github.com/stocker-hk/stocker-backend/internal/repository"
)

// PerformanceService loads the year-bounded data set and hands it to the
// monthly aggregator.
type PerformanceService struct {
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
	cashFlowRepo    *repository.CashFlowRepository
	rates           fx.RateProvider
	logger          zerolog.Logger
}

// NewPerformanceService creates a new PerformanceService with the provided dependencies.
func NewPerformanceService(
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	cashFlowRepo *repository.CashFlowRepository,
	rates fx.RateProvider,
	logger zerolog.Logger,
) *PerformanceService {
	return &PerformanceService{
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		cashFlowRepo:    cashFlowRepo,
		rates:           rates,
		logger:          logger.With().Str("component", "performance").Logger(),
	}
}

// GetYearlyPerformance computes the month-by-month trading report for one
// account and calendar year.
func (s *PerformanceService) GetYearlyPerformance(ctx context.Context, accountID string, year int) (model.YearlyPerformance, error) {
	if year < 1970 || year > 9999 {
		return model.YearlyPerformance{}, apperrors.ErrInvalidYear
	}

	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	rate, err := s.rates.USDToHKD(ctx)
	if err != nil {
		return model.YearlyPerformance{}, err
	}

	assets, err := s.assetRepo.GetAllAssets()
	if err != nil {
		return model.YearlyPerformance{}, err
	}
	txsBefore, err := s.transactionRepo.GetTransactions(accountID, time.Time{}, yearStart)
	if err != nil {
		return model.YearlyPerformance{}, err
	}
	txsInYear, err := s.transactionRepo.GetTransactions(accountID, yearStart, yearEnd)
	if err != nil {
		return model.YearlyPerformance{}, err
	}
	flowsBefore, err := s.cashFlowRepo.GetCashFlows(accountID, yearStart)
	if err != nil {
		return model.YearlyPerformance{}, err
	}

	assetByID := make(map[string]model.Asset, len(assets))
	for _, asset := range assets {
		assetByID[asset.ID] = asset
	}

	input := ledger.PerformanceInput{
		Year:                   year,
		Assets:                 assetByID,
		TransactionsInYear:     groupByAsset(txsInYear),
		TransactionsBefore:     groupByAsset(txsBefore),
		FlowsBefore:            flowsBefore,
		CashTransactionsBefore: txsBefore,
		USDToHKD:               rate,
	}

	return ledger.ComputeYearlyPerformance(input), nil
}

func groupByAsset(txs []model.Transaction) map[string][]model.Transaction {
	grouped := make(map[string][]model.Transaction)
	for _, t := range txs {
		grouped[t.AssetID] = append(grouped[t.AssetID], t)
	}
	return grouped
}
