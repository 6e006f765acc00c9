package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/ledger"
	"github.com/stocker-hk/stocker-backend/internal/model"
	"github.com/stocker-hk/stocker-backend/internal/repository"
)

// BalanceService owns the persisted cash-balance cache. The cache is derived
// state: it is always rebuilt by a full replay of the account's cash flows and
// transactions, never incrementally patched, so a recompute after any mutation
// is idempotent and self-healing.
//
// Writes are serialized per account with an in-process mutex; sqlite's
// busy_timeout covers the multi-process case.
type BalanceService struct {
	balanceRepo     *repository.BalanceRepository
	transactionRepo *repository.TransactionRepository
	cashFlowRepo    *repository.CashFlowRepository
	rates           fx.RateProvider
	logger          zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewBalanceService creates a new BalanceService with the provided dependencies.
func NewBalanceService(
	balanceRepo *repository.BalanceRepository,
	transactionRepo *repository.TransactionRepository,
	cashFlowRepo *repository.CashFlowRepository,
	rates fx.RateProvider,
	logger zerolog.Logger,
) *BalanceService {
	return &BalanceService{
		balanceRepo:     balanceRepo,
		transactionRepo: transactionRepo,
		cashFlowRepo:    cashFlowRepo,
		rates:           rates,
		logger:          logger.With().Str("component", "balance").Logger(),
		locks:           make(map[string]*sync.Mutex),
	}
}

// GetBalance returns the cached balance for an account, building the cache on
// first access.
func (s *BalanceService) GetBalance(ctx context.Context, accountID string) (model.AccountBalance, error) {
	balance, err := s.balanceRepo.GetBalance(accountID)
	if errors.Is(err, apperrors.ErrBalanceNotFound) {
		return s.Recompute(ctx, accountID)
	}
	if err != nil {
		return model.AccountBalance{}, err
	}
	return balance, nil
}

// Recompute rebuilds the account's balance cache from scratch: all cash flows
// and all transactions replayed at the current exchange rate, then written
// wholesale. At most one recompute per account runs at a time.
func (s *BalanceService) Recompute(ctx context.Context, accountID string) (model.AccountBalance, error) {
	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	flows, err := s.cashFlowRepo.GetCashFlows(accountID, time.Time{})
	if err != nil {
		return model.AccountBalance{}, err
	}
	transactions, err := s.transactionRepo.GetTransactions(accountID, time.Time{}, time.Time{})
	if err != nil {
		return model.AccountBalance{}, err
	}
	rate, err := s.rates.USDToHKD(ctx)
	if err != nil {
		return model.AccountBalance{}, err
	}

	cash := ledger.ReconcileCash(flows, transactions, rate)
	balance := model.AccountBalance{
		AccountID:   accountID,
		CashUSD:     cash.Cash(fx.USD),
		CashHKD:     cash.Cash(fx.HKD),
		TotalInBase: cash.TotalInBase,
		LastUpdated: time.Now().UTC(),
	}

	if err := s.balanceRepo.UpsertBalance(ctx, &balance); err != nil {
		return model.AccountBalance{}, err
	}

	s.logger.Debug().
		Str("account_id", accountID).
		Float64("cash_usd", balance.CashUSD).
		Float64("cash_hkd", balance.CashHKD).
		Float64("total_in_base", balance.TotalInBase).
		Msg("balance cache rebuilt")

	return balance, nil
}

// DispatchRecompute runs a recompute after a committed mutation. Failures are
// logged and swallowed: the mutation already succeeded, and the cache heals on
// the next recompute or read.
func (s *BalanceService) DispatchRecompute(ctx context.Context, accountID string) {
	if _, err := s.Recompute(ctx, accountID); err != nil {
		s.logger.Error().Err(err).Str("account_id", accountID).Msg("balance recompute failed")
	}
}

func (s *BalanceService) accountLock(accountID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[accountID] = lock
	}
	return lock
}
