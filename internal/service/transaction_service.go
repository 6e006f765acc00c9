package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stocker-hk/stocker-backend/internal/api/request"
	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/model"
	"github.com/stocker-hk/stocker-backend/internal/repository"
)

// TransactionService handles transaction CRUD. Every committed mutation is
// followed by an explicit balance-recompute dispatch; there are no hidden
// write hooks, and a recompute failure never rolls back the mutation.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	assetService    *AssetService
	balanceService  *BalanceService
	logger          zerolog.Logger
}

// NewTransactionService creates a new TransactionService with the provided dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	assetService *AssetService,
	balanceService *BalanceService,
	logger zerolog.Logger,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		assetService:    assetService,
		balanceService:  balanceService,
		logger:          logger.With().Str("component", "transaction").Logger(),
	}
}

// GetTransactions retrieves all of an account's transactions in replay order.
func (s *TransactionService) GetTransactions(accountID string) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions(accountID, time.Time{}, time.Time{})
}

// GetTransaction retrieves one transaction by ID.
func (s *TransactionService) GetTransaction(id string) (model.Transaction, error) {
	return s.transactionRepo.GetTransactionByID(id)
}

// CreateTransaction records a new trade or dividend. The referenced asset is
// created on first sight of its symbol.
func (s *TransactionService) CreateTransaction(ctx context.Context, accountID string, req request.CreateTransactionRequest) (model.Transaction, error) {
	asset, err := s.assetService.EnsureAsset(ctx, req.Symbol, fx.Currency(req.Currency))
	if err != nil {
		return model.Transaction{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return model.Transaction{}, err
	}

	transaction := model.Transaction{
		ID:        uuid.New().String(),
		AccountID: accountID,
		AssetID:   asset.ID,
		Symbol:    asset.Symbol,
		Action:    req.Action,
		Date:      date.UTC(),
		Price:     req.Price,
		Quantity:  req.Quantity,
		Fee:       req.Fee,
		Currency:  fx.Currency(req.Currency),
		Notes:     req.Notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.transactionRepo.CreateTransaction(ctx, &transaction); err != nil {
		return model.Transaction{}, err
	}

	s.balanceService.DispatchRecompute(ctx, accountID)
	if transaction.Currency == "" {
		transaction.Currency = asset.Currency
	}
	return transaction, nil
}

// UpdateTransaction applies the provided fields to an existing transaction.
// Any edit invalidates derived state, so a full recompute follows the commit.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, req request.UpdateTransactionRequest) (model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransactionByID(id)
	if err != nil {
		return model.Transaction{}, err
	}

	if req.Symbol != nil {
		asset, err := s.assetService.EnsureAsset(ctx, *req.Symbol, "")
		if err != nil {
			return model.Transaction{}, err
		}
		transaction.AssetID = asset.ID
		transaction.Symbol = asset.Symbol
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return model.Transaction{}, err
		}
		transaction.Date = date.UTC()
	}
	if req.Action != nil {
		transaction.Action = *req.Action
	}
	if req.Price != nil {
		transaction.Price = *req.Price
	}
	if req.Quantity != nil {
		transaction.Quantity = *req.Quantity
	}
	if req.Fee != nil {
		transaction.Fee = *req.Fee
	}
	if req.Currency != nil {
		transaction.Currency = fx.Currency(*req.Currency)
	}
	if req.Notes != nil {
		transaction.Notes = *req.Notes
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, &transaction); err != nil {
		return model.Transaction{}, err
	}

	s.balanceService.DispatchRecompute(ctx, transaction.AccountID)
	return s.transactionRepo.GetTransactionByID(id)
}

// DeleteTransaction removes a transaction and recomputes the account balance.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	transaction, err := s.transactionRepo.GetTransactionByID(id)
	if err != nil {
		return err
	}
	if err := s.transactionRepo.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	s.balanceService.DispatchRecompute(ctx, transaction.AccountID)
	return nil
}
