package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/model"
	"github.com/stocker-hk/stocker-backend/internal/repository"
)

// Trade-log CSV column headers, as exported from the Numbers sheet the data
// originates from. One row describes a round trip and expands into up to two
// transactions: a BUY when the buy side is filled in, a SELL when the sell
// side is. Historical rows carry no fees.
const (
	colTicker   = "Ticker"
	colShares   = "股數"
	colBuyPrice = "買入價"
	colSellDate = "賣出時間"
	colBuyDate  = "買入時間"
	colSellPx   = "賣出價"
)

// importDateLayout matches the sheet's DD/MM/YYYY dates.
const importDateLayout = "02/01/2006"

// ImportResult summarizes one CSV import run.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped []string `json:"skipped,omitempty"`
}

// ImportService ingests the historical trade-log CSV.
type ImportService struct {
	transactionRepo *repository.TransactionRepository
	assetService    *AssetService
	balanceService  *BalanceService
	logger          zerolog.Logger
}

// NewImportService creates a new ImportService with the provided dependencies.
func NewImportService(
	transactionRepo *repository.TransactionRepository,
	assetService *AssetService,
	balanceService *BalanceService,
	logger zerolog.Logger,
) *ImportService {
	return &ImportService{
		transactionRepo: transactionRepo,
		assetService:    assetService,
		balanceService:  balanceService,
		logger:          logger.With().Str("component", "import").Logger(),
	}
}

// ImportTrades reads a trade-log CSV and records its transactions. Rows with
// an empty ticker or malformed numbers are skipped, not fatal; the balance is
// recomputed once at the end.
func (s *ImportService) ImportTrades(ctx context.Context, accountID string, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, apperrors.ErrInvalidCSVHeaders
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols[colTicker]; !ok {
		return ImportResult{}, apperrors.ErrInvalidCSVHeaders
	}

	var result ImportResult
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ImportResult{}, apperrors.ErrInvalidCSVHeaders
		}

		ticker := field(record, cols, colTicker)
		if ticker == "" {
			continue
		}

		created, skipReason := s.importRow(ctx, accountID, record, cols)
		if skipReason != "" {
			s.logger.Warn().Int("line", line).Str("ticker", ticker).Str("reason", skipReason).Msg("skipping import row")
			result.Skipped = append(result.Skipped, ticker)
			continue
		}
		result.Created += created
	}

	if result.Created > 0 {
		s.balanceService.DispatchRecompute(ctx, accountID)
	}

	s.logger.Info().Int("created", result.Created).Int("skipped", len(result.Skipped)).Msg("trade import complete")
	return result, nil
}

// importRow expands one sheet row into its BUY and/or SELL transactions.
// Returns the number of transactions created, or a non-empty skip reason.
func (s *ImportService) importRow(ctx context.Context, accountID string, record []string, cols map[string]int) (int, string) {
	quantity, err := parseSheetNumber(field(record, cols, colShares))
	if err != nil {
		return 0, "bad quantity"
	}
	buyPrice, err := parseSheetNumber(field(record, cols, colBuyPrice))
	if err != nil {
		return 0, "bad buy price"
	}
	sellPrice, err := parseSheetNumber(field(record, cols, colSellPx))
	if err != nil {
		return 0, "bad sell price"
	}
	buyDate, err := parseSheetDate(field(record, cols, colBuyDate))
	if err != nil {
		return 0, "bad buy date"
	}
	sellDate, err := parseSheetDate(field(record, cols, colSellDate))
	if err != nil {
		return 0, "bad sell date"
	}

	asset, err := s.assetService.EnsureAsset(ctx, field(record, cols, colTicker), "")
	if err != nil {
		return 0, err.Error()
	}

	created := 0
	if !buyDate.IsZero() && buyPrice > 0 {
		if err := s.createImported(ctx, accountID, asset, model.ActionBuy, buyDate, buyPrice, quantity); err != nil {
			return created, err.Error()
		}
		created++
	}
	if !sellDate.IsZero() && sellPrice > 0 {
		if err := s.createImported(ctx, accountID, asset, model.ActionSell, sellDate, sellPrice, quantity); err != nil {
			return created, err.Error()
		}
		created++
	}
	return created, ""
}

func (s *ImportService) createImported(ctx context.Context, accountID string, asset model.Asset, action string, date time.Time, price, quantity float64) error {
	transaction := model.Transaction{
		ID:        uuid.New().String(),
		AccountID: accountID,
		AssetID:   asset.ID,
		Symbol:    asset.Symbol,
		Action:    action,
		Date:      date,
		Price:     price,
		Quantity:  quantity,
		Currency:  asset.Currency,
		Notes:     "imported",
		CreatedAt: time.Now().UTC(),
	}
	return s.transactionRepo.CreateTransaction(ctx, &transaction)
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseSheetNumber tolerates blank cells and thousands separators.
func parseSheetNumber(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
}

// parseSheetDate tolerates blank cells; filled cells must be DD/MM/YYYY.
func parseSheetDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(importDateLayout, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
