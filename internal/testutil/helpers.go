package testutil

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/repository"
	"github.com/stocker-hk/stocker-backend/internal/service"
)

// TestRate is the USD/HKD rate used by the test service constructors.
const TestRate = 7.8

func testRates() fx.RateProvider {
	return fx.StaticRateProvider{Rate: TestRate}
}

func NewTestBalanceService(t *testing.T, db *sql.DB) *service.BalanceService {
	t.Helper()

	return service.NewBalanceService(
		repository.NewBalanceRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewCashFlowRepository(db),
		testRates(),
		zerolog.Nop(),
	)
}

func NewTestAssetService(t *testing.T, db *sql.DB, market *MockMarketData) *service.AssetService {
	t.Helper()

	return service.NewAssetService(
		repository.NewAssetRepository(db),
		market,
		zerolog.Nop(),
	)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		NewTestAssetService(t, db, NewMockMarketData()),
		NewTestBalanceService(t, db),
		zerolog.Nop(),
	)
}

func NewTestCashFlowService(t *testing.T, db *sql.DB) *service.CashFlowService {
	t.Helper()

	return service.NewCashFlowService(
		repository.NewCashFlowRepository(db),
		NewTestBalanceService(t, db),
		zerolog.Nop(),
	)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewAssetRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewCashFlowRepository(db),
		testRates(),
		zerolog.Nop(),
	)
}

func NewTestPerformanceService(t *testing.T, db *sql.DB) *service.PerformanceService {
	t.Helper()

	return service.NewPerformanceService(
		repository.NewAssetRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewCashFlowRepository(db),
		testRates(),
		zerolog.Nop(),
	)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB, market *MockMarketData) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		repository.NewSnapshotRepository(db),
		NewTestPortfolioService(t, db),
		NewTestAssetService(t, db, market),
		NewTestBalanceService(t, db),
		zerolog.Nop(),
	)
}

func NewTestImportService(t *testing.T, db *sql.DB) *service.ImportService {
	t.Helper()

	return service.NewImportService(
		repository.NewTransactionRepository(db),
		NewTestAssetService(t, db, NewMockMarketData()),
		NewTestBalanceService(t, db),
		zerolog.Nop(),
	)
}
