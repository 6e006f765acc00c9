package service_test

import (
	"context"
	"testing"

	"github.com/stocker-hk/stocker-backend/internal/api/request"
	"github.com/stocker-hk/stocker-backend/internal/model"
	"github.com/stocker-hk/stocker-backend/internal/testutil"
)

// TestCashFlowService_CreateCashFlow tests deposit creation and the balance
// recompute it dispatches.
//
// WHY: Cash flows are the only way money enters the system; a create that
// does not refresh the balance cache leaves the dashboard showing stale cash.
func TestCashFlowService_CreateCashFlow(t *testing.T) {
	t.Run("deposit lands in the balance cache", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCashFlowService(t, db)
		balances := testutil.NewTestBalanceService(t, db)
		ctx := context.Background()

		// Execute
		flow, err := svc.CreateCashFlow(ctx, testutil.TestAccount, request.CreateCashFlowRequest{
			Type:     model.FlowDeposit,
			Amount:   10000,
			Currency: "USD",
			Date:     "2024-01-02",
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateCashFlow failed: %v", err)
		}
		if flow.ID == "" || flow.Type != model.FlowDeposit {
			t.Errorf("Unexpected created flow: %+v", flow)
		}

		balance, err := balances.GetBalance(ctx, testutil.TestAccount)
		if err != nil {
			t.Fatalf("GetBalance failed: %v", err)
		}
		if balance.CashUSD != 10000 {
			t.Errorf("Expected USD cash 10000, got %f", balance.CashUSD)
		}
	})

	t.Run("unparseable date is rejected", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCashFlowService(t, db)

		// Execute
		_, err := svc.CreateCashFlow(context.Background(), testutil.TestAccount, request.CreateCashFlowRequest{
			Type:     model.FlowDeposit,
			Amount:   10000,
			Currency: "USD",
			Date:     "02/01/2024",
		})

		// Assert
		if err == nil {
			t.Error("Expected an error for a non-ISO date")
		}
	})
}

// TestCashFlowService_UpdateCashFlow tests partial updates.
//
// WHY: Fixing a mistyped amount must rewrite history and the derived balance
// together; the two drifting apart is the bug this service exists to prevent.
func TestCashFlowService_UpdateCashFlow(t *testing.T) {
	t.Run("amount change is reflected in the balance", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCashFlowService(t, db)
		balances := testutil.NewTestBalanceService(t, db)
		ctx := context.Background()

		created, err := svc.CreateCashFlow(ctx, testutil.TestAccount, request.CreateCashFlowRequest{
			Type:     model.FlowDeposit,
			Amount:   10000,
			Currency: "USD",
			Date:     "2024-01-02",
		})
		if err != nil {
			t.Fatalf("CreateCashFlow failed: %v", err)
		}

		// Execute
		amount := 2500.0
		updated, err := svc.UpdateCashFlow(ctx, created.ID, request.UpdateCashFlowRequest{Amount: &amount})

		// Assert
		if err != nil {
			t.Fatalf("UpdateCashFlow failed: %v", err)
		}
		if updated.Amount != 2500 {
			t.Errorf("Expected amount 2500, got %f", updated.Amount)
		}
		if updated.Type != model.FlowDeposit {
			t.Errorf("Untouched fields must survive, got type %s", updated.Type)
		}

		balance, err := balances.GetBalance(ctx, testutil.TestAccount)
		if err != nil {
			t.Fatalf("GetBalance failed: %v", err)
		}
		if balance.CashUSD != 2500 {
			t.Errorf("Expected USD cash 2500 after update, got %f", balance.CashUSD)
		}
	})
}

// TestCashFlowService_DeleteCashFlow tests removal.
func TestCashFlowService_DeleteCashFlow(t *testing.T) {
	t.Run("deleted deposit leaves zero cash", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCashFlowService(t, db)
		balances := testutil.NewTestBalanceService(t, db)
		ctx := context.Background()

		created, err := svc.CreateCashFlow(ctx, testutil.TestAccount, request.CreateCashFlowRequest{
			Type:     model.FlowDeposit,
			Amount:   10000,
			Currency: "USD",
			Date:     "2024-01-02",
		})
		if err != nil {
			t.Fatalf("CreateCashFlow failed: %v", err)
		}

		// Execute
		if err := svc.DeleteCashFlow(ctx, created.ID); err != nil {
			t.Fatalf("DeleteCashFlow failed: %v", err)
		}

		// Assert
		if _, err := svc.GetCashFlow(created.ID); err == nil {
			t.Error("Expected the deleted flow to be gone")
		}
		balance, err := balances.GetBalance(ctx, testutil.TestAccount)
		if err != nil {
			t.Fatalf("GetBalance failed: %v", err)
		}
		if balance.CashUSD != 0 || balance.TotalInBase != 0 {
			t.Errorf("Expected empty balance after delete, got %+v", balance)
		}
	})
}
