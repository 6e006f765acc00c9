package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/model"
)

// CashFlowRepository provides data access methods for the cash_flow table.
type CashFlowRepository struct {
	db *sql.DB
}

// NewCashFlowRepository creates a new CashFlowRepository with the provided database connection.
func NewCashFlowRepository(db *sql.DB) *CashFlowRepository {
	return &CashFlowRepository{db: db}
}

const cashFlowColumns = `id, account_id, type, amount, currency, date, notes, created_at`

// GetCashFlows retrieves all cash flows for an account ordered by date.
// endDate, when non-zero, bounds the query exclusively.
func (s *CashFlowRepository) GetCashFlows(accountID string, endDate time.Time) ([]model.CashFlow, error) {
	query := `SELECT ` + cashFlowColumns + ` FROM cash_flow WHERE account_id = ?`
	args := []any{accountID}

	if !endDate.IsZero() {
		query += ` AND date < ?`
		args = append(args, endDate.Format("2006-01-02"))
	}
	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash_flow table: %w", err)
	}
	defer rows.Close()

	flows := []model.CashFlow{}
	for rows.Next() {
		flow, err := scanCashFlow(rows)
		if err != nil {
			return nil, err
		}
		flows = append(flows, flow)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash_flow table: %w", err)
	}

	return flows, nil
}

// GetCashFlowByID retrieves a single cash flow.
// Returns apperrors.ErrCashFlowNotFound when no row matches.
func (s *CashFlowRepository) GetCashFlowByID(id string) (model.CashFlow, error) {
	row := s.db.QueryRow(`SELECT `+cashFlowColumns+` FROM cash_flow WHERE id = ?`, id)

	flow, err := scanCashFlow(row)
	if err == sql.ErrNoRows {
		return model.CashFlow{}, apperrors.ErrCashFlowNotFound
	}
	if err != nil {
		return model.CashFlow{}, err
	}
	return flow, nil
}

// CreateCashFlow inserts a new cash flow row.
func (s *CashFlowRepository) CreateCashFlow(ctx context.Context, flow *model.CashFlow) error {
	query := `
		INSERT INTO cash_flow (id, account_id, type, amount, currency, date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		flow.ID,
		flow.AccountID,
		flow.Type,
		flow.Amount,
		string(flow.Currency),
		flow.Date.Format("2006-01-02"),
		flow.Notes,
		flow.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into cash_flow table: %w", err)
	}
	return nil
}

// UpdateCashFlow overwrites the mutable fields of an existing cash flow.
// Returns apperrors.ErrCashFlowNotFound when the row does not exist.
func (s *CashFlowRepository) UpdateCashFlow(ctx context.Context, flow *model.CashFlow) error {
	query := `
		UPDATE cash_flow
		SET type = ?, amount = ?, currency = ?, date = ?, notes = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		flow.Type,
		flow.Amount,
		string(flow.Currency),
		flow.Date.Format("2006-01-02"),
		flow.Notes,
		flow.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cash_flow table: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check cash_flow update: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCashFlowNotFound
	}
	return nil
}

// DeleteCashFlow removes a cash flow row.
// Returns apperrors.ErrCashFlowNotFound when the row does not exist.
func (s *CashFlowRepository) DeleteCashFlow(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cash_flow WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete from cash_flow table: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check cash_flow delete: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCashFlowNotFound
	}
	return nil
}

func scanCashFlow(row scanner) (model.CashFlow, error) {
	var flow model.CashFlow
	var currency, dateStr, createdAtStr string
	var notes sql.NullString

	err := row.Scan(
		&flow.ID,
		&flow.AccountID,
		&flow.Type,
		&flow.Amount,
		&currency,
		&dateStr,
		&notes,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.CashFlow{}, err
	}
	if err != nil {
		return model.CashFlow{}, fmt.Errorf("failed to scan cash_flow table results: %w", err)
	}

	flow.Currency = currencyOf(currency)
	flow.Notes = notes.String
	flow.Date, err = ParseTime(dateStr)
	if err != nil || flow.Date.IsZero() {
		return model.CashFlow{}, fmt.Errorf("failed to parse date: %w", err)
	}
	flow.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || flow.CreatedAt.IsZero() {
		return model.CashFlow{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return flow, nil
}
