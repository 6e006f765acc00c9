package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/model"
	"github.com/stocker-hk/stocker-backend/internal/repository"
	"github.com/stocker-hk/stocker-backend/internal/secrets"
)

// SettingService manages system settings. Secret values, currently just the
// market-data API token, are stored encrypted and never returned in the clear;
// reads report only whether a token is configured.
type SettingService struct {
	settingRepo *repository.SettingRepository
	codec       *secrets.Codec
	logger      zerolog.Logger
}

// NewSettingService creates a new SettingService with the provided dependencies.
func NewSettingService(settingRepo *repository.SettingRepository, codec *secrets.Codec, logger zerolog.Logger) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		codec:       codec,
		logger:      logger.With().Str("component", "settings").Logger(),
	}
}

// SettingsView is the redacted settings representation exposed over the API.
type SettingsView struct {
	MarketDataTokenSet bool `json:"marketDataTokenSet"`
}

// GetSettings returns the redacted settings view.
func (s *SettingService) GetSettings() (SettingsView, error) {
	_, err := s.settingRepo.GetSetting(model.SettingMarketDataToken)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return SettingsView{MarketDataTokenSet: false}, nil
	}
	if err != nil {
		return SettingsView{}, err
	}
	return SettingsView{MarketDataTokenSet: true}, nil
}

// MarketDataToken decrypts and returns the stored market-data API token.
// Returns apperrors.ErrSettingNotFound when none is configured.
func (s *SettingService) MarketDataToken() (string, error) {
	setting, err := s.settingRepo.GetSetting(model.SettingMarketDataToken)
	if err != nil {
		return "", err
	}
	return s.codec.Decrypt(setting.Value)
}

// SetMarketDataToken encrypts and stores the market-data API token.
func (s *SettingService) SetMarketDataToken(ctx context.Context, token string) error {
	encrypted, err := s.codec.Encrypt(token)
	if err != nil {
		return err
	}
	setting := model.SystemSetting{
		ID:        uuid.New().String(),
		Key:       model.SettingMarketDataToken,
		Value:     encrypted,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.settingRepo.UpsertSetting(ctx, &setting); err != nil {
		return err
	}
	s.logger.Info().Msg("market data token updated")
	return nil
}
