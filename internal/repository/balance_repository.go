package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/model"
)

// BalanceRepository provides data access methods for the account_balance
// cache table. The cache is only ever written wholesale.
type BalanceRepository struct {
	db *sql.DB
}

// NewBalanceRepository creates a new BalanceRepository with the provided database connection.
func NewBalanceRepository(db *sql.DB) *BalanceRepository {
	return &BalanceRepository{db: db}
}

// GetBalance retrieves the cached balance row for an account.
// Returns apperrors.ErrBalanceNotFound when the cache has never been built.
func (s *BalanceRepository) GetBalance(accountID string) (model.AccountBalance, error) {
	row := s.db.QueryRow(
		`SELECT account_id, cash_usd, cash_hkd, total_in_base, last_updated FROM account_balance WHERE account_id = ?`,
		accountID,
	)

	var b model.AccountBalance
	var lastUpdatedStr string
	err := row.Scan(&b.AccountID, &b.CashUSD, &b.CashHKD, &b.TotalInBase, &lastUpdatedStr)
	if err == sql.ErrNoRows {
		return model.AccountBalance{}, apperrors.ErrBalanceNotFound
	}
	if err != nil {
		return model.AccountBalance{}, fmt.Errorf("failed to scan account_balance table results: %w", err)
	}

	b.LastUpdated, err = ParseTime(lastUpdatedStr)
	if err != nil {
		return model.AccountBalance{}, err
	}
	return b, nil
}

// UpsertBalance replaces the cached balance row for an account.
func (s *BalanceRepository) UpsertBalance(ctx context.Context, b *model.AccountBalance) error {
	query := `
		INSERT INTO account_balance (account_id, cash_usd, cash_hkd, total_in_base, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(account_id) DO UPDATE SET
			cash_usd = excluded.cash_usd,
			cash_hkd = excluded.cash_hkd,
			total_in_base = excluded.total_in_base,
			last_updated = excluded.last_updated
	`
	_, err := s.db.ExecContext(ctx, query,
		b.AccountID,
		b.CashUSD,
		b.CashHKD,
		b.TotalInBase,
		b.LastUpdated.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert account_balance: %w", err)
	}
	return nil
}
