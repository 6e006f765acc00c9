package service_test

import (
	"context"
	"testing"

	"github.com/stocker-hk/stocker-backend/internal/api/request"
	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/model"
	"github.com/stocker-hk/stocker-backend/internal/repository"
	"github.com/stocker-hk/stocker-backend/internal/testutil"
)

// TestTransactionService_CreateTransaction tests trade creation and its
// side effects.
//
// WHY: Creation must auto-provision the asset on first sight and leave the
// balance cache consistent with the new row; both are behaviors callers rely
// on without checking.
func TestTransactionService_CreateTransaction(t *testing.T) {
	t.Run("creates the asset on first sight and refreshes the balance cache", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		testutil.NewCashFlow().Deposit(10000, fx.USD).On("2024-01-02").Build(t, db)

		// Execute
		transaction, err := svc.CreateTransaction(context.Background(), testutil.TestAccount, request.CreateTransactionRequest{
			Symbol:   "aapl",
			Date:     "2024-01-05",
			Action:   model.ActionBuy,
			Price:    100,
			Quantity: 10,
			Fee:      5,
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}
		if transaction.Symbol != "AAPL" {
			t.Errorf("Expected normalized symbol AAPL, got %s", transaction.Symbol)
		}
		if transaction.Currency != fx.USD {
			t.Errorf("Expected USD from asset fallback, got %s", transaction.Currency)
		}

		balance, err := repository.NewBalanceRepository(db).GetBalance(testutil.TestAccount)
		if err != nil {
			t.Fatalf("GetBalance() returned unexpected error: %v", err)
		}
		if balance.CashUSD != 10000-1005 {
			t.Errorf("Expected balance cache %v after recompute, got %v", 10000-1005, balance.CashUSD)
		}
	})

	t.Run("update rewrites the row and the balance follows", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		asset := testutil.NewAsset().WithSymbol("AAPL").Build(t, db)
		created := testutil.NewTransaction(asset).Buy(10, 100).On("2024-01-05").Build(t, db)

		newPrice := 90.0

		// Execute
		updated, err := svc.UpdateTransaction(context.Background(), created.ID, request.UpdateTransactionRequest{
			Price: &newPrice,
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdateTransaction() returned unexpected error: %v", err)
		}
		if updated.Price != 90 {
			t.Errorf("Expected updated price 90, got %v", updated.Price)
		}

		balance, err := repository.NewBalanceRepository(db).GetBalance(testutil.TestAccount)
		if err != nil {
			t.Fatalf("GetBalance() returned unexpected error: %v", err)
		}
		if balance.CashUSD != -900 {
			t.Errorf("Expected recomputed cash -900, got %v", balance.CashUSD)
		}
	})

	t.Run("delete removes the row and the balance follows", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		asset := testutil.NewAsset().WithSymbol("AAPL").Build(t, db)
		created := testutil.NewTransaction(asset).Buy(10, 100).On("2024-01-05").Build(t, db)

		// Execute
		if err := svc.DeleteTransaction(context.Background(), created.ID); err != nil {
			t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
		}

		// Assert
		transactions, err := svc.GetTransactions(testutil.TestAccount)
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("Expected no transactions after delete, got %d", len(transactions))
		}

		balance, err := repository.NewBalanceRepository(db).GetBalance(testutil.TestAccount)
		if err != nil {
			t.Fatalf("GetBalance() returned unexpected error: %v", err)
		}
		if balance.CashUSD != 0 {
			t.Errorf("Expected zero cash after delete recompute, got %v", balance.CashUSD)
		}
	})
}
