package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/model"
)

// SnapshotRepository provides data access methods for the daily_snapshot table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

const snapshotColumns = `id, account_id, date, net_liquidity, current_cash, cash_usd, cash_hkd,
	total_market_value, total_invested, net_profit, roi_percentage, exchange_rate, positions, created_at`

// GetSnapshots retrieves snapshots for an account within an inclusive date
// range, oldest first. A zero bound leaves that side open.
func (s *SnapshotRepository) GetSnapshots(accountID string, startDate, endDate time.Time) ([]model.DailySnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM daily_snapshot WHERE account_id = ?`
	args := []any{accountID}

	if !startDate.IsZero() {
		query += ` AND date >= ?`
		args = append(args, startDate.Format("2006-01-02"))
	}
	if !endDate.IsZero() {
		query += ` AND date <= ?`
		args = append(args, endDate.Format("2006-01-02"))
	}
	query += ` ORDER BY date ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.DailySnapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily_snapshot table: %w", err)
	}

	return snapshots, nil
}

// GetLatestSnapshot retrieves the most recent snapshot for an account.
// Returns apperrors.ErrSnapshotNotFound when none exists.
func (s *SnapshotRepository) GetLatestSnapshot(accountID string) (model.DailySnapshot, error) {
	row := s.db.QueryRow(
		`SELECT `+snapshotColumns+` FROM daily_snapshot WHERE account_id = ? ORDER BY date DESC LIMIT 1`,
		accountID,
	)

	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return model.DailySnapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.DailySnapshot{}, err
	}
	return snap, nil
}

// UpsertSnapshot writes a snapshot, replacing any existing row for the same
// account and date so the daily job can rerun safely.
func (s *SnapshotRepository) UpsertSnapshot(ctx context.Context, snap *model.DailySnapshot) error {
	query := `
		INSERT INTO daily_snapshot (id, account_id, date, net_liquidity, current_cash, cash_usd, cash_hkd,
			total_market_value, total_invested, net_profit, roi_percentage, exchange_rate, positions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id, date) DO UPDATE SET
			net_liquidity = excluded.net_liquidity,
			current_cash = excluded.current_cash,
			cash_usd = excluded.cash_usd,
			cash_hkd = excluded.cash_hkd,
			total_market_value = excluded.total_market_value,
			total_invested = excluded.total_invested,
			net_profit = excluded.net_profit,
			roi_percentage = excluded.roi_percentage,
			exchange_rate = excluded.exchange_rate,
			positions = excluded.positions
	`
	_, err := s.db.ExecContext(ctx, query,
		snap.ID,
		snap.AccountID,
		snap.Date.Format("2006-01-02"),
		snap.NetLiquidity,
		snap.CurrentCash,
		snap.CashUSD,
		snap.CashHKD,
		snap.TotalMarketValue,
		snap.TotalInvested,
		snap.NetProfit,
		snap.ROIPercentage,
		snap.ExchangeRate,
		snap.Positions,
		snap.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily_snapshot: %w", err)
	}
	return nil
}

func scanSnapshot(row scanner) (model.DailySnapshot, error) {
	var snap model.DailySnapshot
	var dateStr, createdAtStr string

	err := row.Scan(
		&snap.ID,
		&snap.AccountID,
		&dateStr,
		&snap.NetLiquidity,
		&snap.CurrentCash,
		&snap.CashUSD,
		&snap.CashHKD,
		&snap.TotalMarketValue,
		&snap.TotalInvested,
		&snap.NetProfit,
		&snap.ROIPercentage,
		&snap.ExchangeRate,
		&snap.Positions,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.DailySnapshot{}, err
	}
	if err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to scan daily_snapshot table results: %w", err)
	}

	snap.Date, err = ParseTime(dateStr)
	if err != nil || snap.Date.IsZero() {
		return model.DailySnapshot{}, fmt.Errorf("failed to parse date: %w", err)
	}
	snap.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.DailySnapshot{}, err
	}
	return snap, nil
}
