package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stocker-hk/stocker-backend/internal/model"
	"github.com/stocker-hk/stocker-backend/internal/repository"
	"github.com/stocker-hk/stocker-backend/internal/testutil"
)

// TestImportService_ImportTrades tests the trade-log CSV ingestion.
//
// WHY: One sheet row describes a round trip and must expand into separate BUY
// and SELL transactions, with numeric tickers canonicalized to their .HK form.
// Dirty rows are the norm in this export, so they skip rather than abort.
func TestImportService_ImportTrades(t *testing.T) {
	header := "Ticker,股數,買入價,賣出價,買入時間,賣出時間\n"

	t.Run("round-trip row becomes a BUY and a SELL", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		csv := header + "700,100,300,350,05/01/2024,15/02/2024\n"

		// Execute
		result, err := svc.ImportTrades(context.Background(), testutil.TestAccount, strings.NewReader(csv))

		// Assert
		if err != nil {
			t.Fatalf("ImportTrades() returned unexpected error: %v", err)
		}
		if result.Created != 2 {
			t.Fatalf("Expected 2 transactions, got %d", result.Created)
		}

		repo := repository.NewTransactionRepository(db)
		transactions, err := repo.GetTransactions(testutil.TestAccount, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if transactions[0].Symbol != "0700.HK" {
			t.Errorf("Expected canonical symbol 0700.HK, got %s", transactions[0].Symbol)
		}
		if transactions[0].Action != model.ActionBuy || transactions[0].Price != 300 {
			t.Errorf("Unexpected buy leg: %+v", transactions[0])
		}
		if transactions[1].Action != model.ActionSell || transactions[1].Price != 350 {
			t.Errorf("Unexpected sell leg: %+v", transactions[1])
		}
		// 05/01/2024 is DD/MM/YYYY.
		if transactions[0].Date.Month() != time.January {
			t.Errorf("Expected January buy date, got %v", transactions[0].Date)
		}
	})

	t.Run("open position row produces only the BUY leg", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		csv := header + "AAPL,10,150,,01/03/2024,\n"

		// Execute
		result, err := svc.ImportTrades(context.Background(), testutil.TestAccount, strings.NewReader(csv))

		// Assert
		if err != nil {
			t.Fatalf("ImportTrades() returned unexpected error: %v", err)
		}
		if result.Created != 1 {
			t.Errorf("Expected 1 transaction, got %d", result.Created)
		}
	})

	t.Run("blank tickers and malformed rows are skipped", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		csv := header +
			",,,,,\n" +
			"TSLA,abc,200,,01/03/2024,\n" +
			"MSFT,5,400,,02/03/2024,\n"

		// Execute
		result, err := svc.ImportTrades(context.Background(), testutil.TestAccount, strings.NewReader(csv))

		// Assert
		if err != nil {
			t.Fatalf("ImportTrades() returned unexpected error: %v", err)
		}
		if result.Created != 1 {
			t.Errorf("Expected only the MSFT row to import, got %d", result.Created)
		}
		if len(result.Skipped) != 1 || result.Skipped[0] != "TSLA" {
			t.Errorf("Expected TSLA to be skipped, got %v", result.Skipped)
		}
	})

	t.Run("missing Ticker header is rejected", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)

		// Execute
		_, err := svc.ImportTrades(context.Background(), testutil.TestAccount, strings.NewReader("symbol,qty\nAAPL,10\n"))

		// Assert
		if err == nil {
			t.Fatal("Expected an error for missing Ticker header")
		}
	})
}
