package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/model"
	"github.com/stocker-hk/stocker-backend/internal/repository"
	"github.com/stocker-hk/stocker-backend/internal/testutil"
)

// TestTransactionRepository_GetTransactions tests retrieval ordering and the
// currency fallback.
//
// WHY: The replay engine depends on (date, creation-sequence) ascending order
// and on every transaction carrying a concrete currency. Both guarantees are
// provided here, at the repository boundary, so the engine never has to
// re-derive them.
func TestTransactionRepository_GetTransactions(t *testing.T) {
	t.Run("orders same-day transactions by creation sequence", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		asset := testutil.NewAsset().WithSymbol("AAPL").Build(t, db)

		first := testutil.NewTransaction(asset).Buy(10, 100).On("2024-03-05")
		second := testutil.NewTransaction(asset).Sell(10, 110).On("2024-03-05").CreatedAfter(first)
		second.Build(t, db)
		first.Build(t, db)

		// Execute
		transactions, err := repo.GetTransactions(testutil.TestAccount, time.Time{}, time.Time{})

		// Assert
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if len(transactions) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(transactions))
		}
		if transactions[0].Action != model.ActionBuy || transactions[1].Action != model.ActionSell {
			t.Errorf("Expected BUY then SELL, got %s then %s", transactions[0].Action, transactions[1].Action)
		}
	})

	t.Run("resolves empty transaction currency to the asset currency", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		asset := testutil.NewAsset().WithSymbol("0700.HK").InHKD().Build(t, db)

		testutil.NewTransaction(asset).Buy(100, 300).Build(t, db)

		// Execute
		transactions, err := repo.GetTransactions(testutil.TestAccount, time.Time{}, time.Time{})

		// Assert
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if transactions[0].Currency != fx.HKD {
			t.Errorf("Expected HKD from asset fallback, got %s", transactions[0].Currency)
		}
	})

	t.Run("keeps an explicitly stored currency", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		asset := testutil.NewAsset().WithSymbol("0700.HK").InHKD().Build(t, db)

		testutil.NewTransaction(asset).Dividend(100, 1.2).WithCurrency(fx.USD).Build(t, db)

		// Execute
		transactions, err := repo.GetTransactions(testutil.TestAccount, time.Time{}, time.Time{})

		// Assert
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if transactions[0].Currency != fx.USD {
			t.Errorf("Expected stored USD to win over asset currency, got %s", transactions[0].Currency)
		}
	})

	t.Run("bounds by date with exclusive end", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		asset := testutil.NewAsset().Build(t, db)

		testutil.NewTransaction(asset).Buy(1, 50).On("2023-12-29").Build(t, db)
		testutil.NewTransaction(asset).Buy(1, 60).On("2024-01-01").Build(t, db)
		testutil.NewTransaction(asset).Buy(1, 70).On("2024-06-15").Build(t, db)

		yearStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		// Execute
		before, err := repo.GetTransactions(testutil.TestAccount, time.Time{}, yearStart)
		if err != nil {
			t.Fatalf("GetTransactions(before) returned unexpected error: %v", err)
		}
		inYear, err := repo.GetTransactions(testutil.TestAccount, yearStart, yearStart.AddDate(1, 0, 0))
		if err != nil {
			t.Fatalf("GetTransactions(inYear) returned unexpected error: %v", err)
		}

		// Assert
		if len(before) != 1 {
			t.Errorf("Expected 1 transaction strictly before the year, got %d", len(before))
		}
		if len(inYear) != 2 {
			t.Errorf("Expected 2 transactions within the year, got %d", len(inYear))
		}
	})
}

// TestTransactionRepository_CRUD tests create, update, and delete behavior.
//
// WHY: Update and delete must report ErrTransactionNotFound for missing rows
// so handlers can distinguish 404 from 500.
func TestTransactionRepository_CRUD(t *testing.T) {
	t.Run("round-trips a created transaction", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		asset := testutil.NewAsset().WithSymbol("MSFT").Build(t, db)

		transaction := model.Transaction{
			ID:        testutil.MakeID(),
			AccountID: testutil.TestAccount,
			AssetID:   asset.ID,
			Action:    model.ActionBuy,
			Date:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Price:     410,
			Quantity:  5,
			Fee:       1.5,
			Notes:     "opening position",
			CreatedAt: time.Now().UTC(),
		}

		// Execute
		if err := repo.CreateTransaction(context.Background(), &transaction); err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}
		got, err := repo.GetTransactionByID(transaction.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetTransactionByID() returned unexpected error: %v", err)
		}
		if got.Symbol != "MSFT" {
			t.Errorf("Expected symbol MSFT from join, got %s", got.Symbol)
		}
		if got.Price != 410 || got.Quantity != 5 || got.Fee != 1.5 {
			t.Errorf("Unexpected numeric fields: %+v", got)
		}
		if got.Notes != "opening position" {
			t.Errorf("Expected notes to round-trip, got %q", got.Notes)
		}
	})

	t.Run("update of a missing transaction returns not found", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		asset := testutil.NewAsset().Build(t, db)

		missing := model.Transaction{
			ID:      testutil.MakeID(),
			AssetID: asset.ID,
			Action:  model.ActionBuy,
			Date:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		}

		// Execute
		err := repo.UpdateTransaction(context.Background(), &missing)

		// Assert
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("delete removes the row and reports not found afterwards", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		asset := testutil.NewAsset().Build(t, db)
		created := testutil.NewTransaction(asset).Buy(1, 100).Build(t, db)

		// Execute
		if err := repo.DeleteTransaction(context.Background(), created.ID); err != nil {
			t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
		}
		err := repo.DeleteTransaction(context.Background(), created.ID)

		// Assert
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound on second delete, got %v", err)
		}
	})
}
