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

// CashFlowService handles deposit and withdrawal CRUD. Like transactions,
// every committed mutation is followed by an explicit balance recompute.
type CashFlowService struct {
	cashFlowRepo   *repository.CashFlowRepository
	balanceService *BalanceService
	logger         zerolog.Logger
}

// NewCashFlowService creates a new CashFlowService with the provided dependencies.
func NewCashFlowService(cashFlowRepo *repository.CashFlowRepository, balanceService *BalanceService, logger zerolog.Logger) *CashFlowService {
	return &CashFlowService{
		cashFlowRepo:   cashFlowRepo,
		balanceService: balanceService,
		logger:         logger.With().Str("component", "cashflow").Logger(),
	}
}

// GetCashFlows retrieves all of an account's cash flows ordered by date.
func (s *CashFlowService) GetCashFlows(accountID string) ([]model.CashFlow, error) {
	return s.cashFlowRepo.GetCashFlows(accountID, time.Time{})
}

// GetCashFlow retrieves one cash flow by ID.
func (s *CashFlowService) GetCashFlow(id string) (model.CashFlow, error) {
	return s.cashFlowRepo.GetCashFlowByID(id)
}

// CreateCashFlow records a deposit or withdrawal.
func (s *CashFlowService) CreateCashFlow(ctx context.Context, accountID string, req request.CreateCashFlowRequest) (model.CashFlow, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return model.CashFlow{}, err
	}

	flow := model.CashFlow{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Type:      req.Type,
		Amount:    req.Amount,
		Currency:  fx.Currency(req.Currency),
		Date:      date.UTC(),
		Notes:     req.Notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.cashFlowRepo.CreateCashFlow(ctx, &flow); err != nil {
		return model.CashFlow{}, err
	}

	s.balanceService.DispatchRecompute(ctx, accountID)
	return flow, nil
}

// UpdateCashFlow applies the provided fields to an existing cash flow.
func (s *CashFlowService) UpdateCashFlow(ctx context.Context, id string, req request.UpdateCashFlowRequest) (model.CashFlow, error) {
	flow, err := s.cashFlowRepo.GetCashFlowByID(id)
	if err != nil {
		return model.CashFlow{}, err
	}

	if req.Type != nil {
		flow.Type = *req.Type
	}
	if req.Amount != nil {
		flow.Amount = *req.Amount
	}
	if req.Currency != nil {
		flow.Currency = fx.Currency(*req.Currency)
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return model.CashFlow{}, err
		}
		flow.Date = date.UTC()
	}
	if req.Notes != nil {
		flow.Notes = *req.Notes
	}

	if err := s.cashFlowRepo.UpdateCashFlow(ctx, &flow); err != nil {
		return model.CashFlow{}, err
	}

	s.balanceService.DispatchRecompute(ctx, flow.AccountID)
	return flow, nil
}

// DeleteCashFlow removes a cash flow and recomputes the account balance.
func (s *CashFlowService) DeleteCashFlow(ctx context.Context, id string) error {
	flow, err := s.cashFlowRepo.GetCashFlowByID(id)
	if err != nil {
		return err
	}
	if err := s.cashFlowRepo.DeleteCashFlow(ctx, id); err != nil {
		return err
	}

	s.balanceService.DispatchRecompute(ctx, flow.AccountID)
	return nil
}
