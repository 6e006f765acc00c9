package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// It handles retrieving and querying trades within specified date ranges.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// transactionSelect joins the asset table so callers get the symbol and a
// resolved currency: rows with an empty transaction currency fall back to the
// asset's trading currency.
const transactionSelect = `
	SELECT t.id, t.account_id, t.asset_id, a.symbol, t.action, t.date,
	       t.price, t.quantity, t.fee,
	       COALESCE(NULLIF(t.currency, ''), a.currency) AS currency,
	       t.notes, t.created_at
	FROM "transaction" t
	JOIN asset a ON a.id = t.asset_id
`

// GetTransactions retrieves all transactions for an account, sorted by date
// then insertion order so same-day trades replay deterministically.
//
// startDate and endDate bound the query when non-zero; either may be the zero
// value to leave that side open. endDate is exclusive, which lets callers ask
// for everything strictly before a year boundary.
func (s *TransactionRepository) GetTransactions(accountID string, startDate, endDate time.Time) ([]model.Transaction, error) {
	query := transactionSelect + ` WHERE t.account_id = ?`
	args := []any{accountID}

	if !startDate.IsZero() {
		query += ` AND t.date >= ?`
		args = append(args, startDate.Format("2006-01-02"))
	}
	if !endDate.IsZero() {
		query += ` AND t.date < ?`
		args = append(args, endDate.Format("2006-01-02"))
	}
	query += ` ORDER BY t.date ASC, t.created_at ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransactionByID retrieves a single transaction.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (s *TransactionRepository) GetTransactionByID(id string) (model.Transaction, error) {
	row := s.db.QueryRow(transactionSelect+` WHERE t.id = ?`, id)

	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// CreateTransaction inserts a new transaction row.
func (s *TransactionRepository) CreateTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, account_id, asset_id, action, date, price, quantity, fee, currency, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		t.ID,
		t.AccountID,
		t.AssetID,
		t.Action,
		t.Date.Format("2006-01-02"),
		t.Price,
		t.Quantity,
		t.Fee,
		string(t.Currency),
		t.Notes,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into transaction table: %w", err)
	}
	return nil
}

// UpdateTransaction overwrites the mutable fields of an existing transaction.
// Returns apperrors.ErrTransactionNotFound when the row does not exist.
func (s *TransactionRepository) UpdateTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET asset_id = ?, action = ?, date = ?, price = ?, quantity = ?, fee = ?, currency = ?, notes = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		t.AssetID,
		t.Action,
		t.Date.Format("2006-01-02"),
		t.Price,
		t.Quantity,
		t.Fee,
		string(t.Currency),
		t.Notes,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction table: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check transaction update: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction row.
// Returns apperrors.ErrTransactionNotFound when the row does not exist.
func (s *TransactionRepository) DeleteTransaction(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete from transaction table: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check transaction delete: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

func scanTransaction(row scanner) (model.Transaction, error) {
	var t model.Transaction
	var currency, dateStr, createdAtStr string
	var notes sql.NullString

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.AssetID,
		&t.Symbol,
		&t.Action,
		&dateStr,
		&t.Price,
		&t.Quantity,
		&t.Fee,
		&currency,
		&notes,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.Currency = currencyOf(currency)
	t.Notes = notes.String
	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || t.CreatedAt.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return t, nil
}
