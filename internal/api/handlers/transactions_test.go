package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stocker-hk/stocker-backend/internal/api/handlers"
	"github.com/stocker-hk/stocker-backend/internal/api/request"
	"github.com/stocker-hk/stocker-backend/internal/model"
	"github.com/stocker-hk/stocker-backend/internal/testutil"
)

// TestTransactionHandler_CreateTransaction tests the create endpoint's
// validation and success paths.
//
// WHY: The handler is the last line of defense before malformed rows reach
// the replay engine; the engine is total over well-formed input, so rejection
// has to happen here.
func TestTransactionHandler_CreateTransaction(t *testing.T) {
	newHandler := func(t *testing.T) *handlers.TransactionHandler {
		db := testutil.SetupTestDB(t)
		return handlers.NewTransactionHandler(
			testutil.NewTestTransactionService(t, db),
			testutil.NewTestImportService(t, db),
			testutil.TestAccount,
		)
	}

	t.Run("valid request creates the transaction", func(t *testing.T) {
		// Setup
		handler := newHandler(t)
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", request.CreateTransactionRequest{
			Symbol:   "AAPL",
			Date:     "2024-01-05",
			Action:   model.ActionBuy,
			Price:    100,
			Quantity: 10,
		}, nil)
		w := httptest.NewRecorder()

		// Execute
		handler.CreateTransaction(w, req)

		// Assert
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var created model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
			t.Fatalf("Response does not decode: %v", err)
		}
		if created.Symbol != "AAPL" || created.ID == "" {
			t.Errorf("Unexpected created transaction: %+v", created)
		}
	})

	t.Run("negative quantity is rejected with field errors", func(t *testing.T) {
		// Setup
		handler := newHandler(t)
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", request.CreateTransactionRequest{
			Symbol:   "AAPL",
			Date:     "2024-01-05",
			Action:   model.ActionSell,
			Price:    100,
			Quantity: -10,
		}, nil)
		w := httptest.NewRecorder()

		// Execute
		handler.CreateTransaction(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "quantity") {
			t.Errorf("Expected a quantity field error, got %s", w.Body.String())
		}
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		// Setup
		handler := newHandler(t)
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", request.CreateTransactionRequest{
			Symbol:   "AAPL",
			Date:     "2024-01-05",
			Action:   "SHORT",
			Price:    100,
			Quantity: 10,
		}, nil)
		w := httptest.NewRecorder()

		// Execute
		handler.CreateTransaction(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for unknown action, got %d", w.Code)
		}
	})

	t.Run("malformed JSON body is rejected", func(t *testing.T) {
		// Setup
		handler := newHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		// Execute
		handler.CreateTransaction(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for malformed body, got %d", w.Code)
		}
	})
}

// TestTransactionHandler_GetTransaction tests the single-row read.
//
// WHY: Missing rows must surface as 404, not 500, so the frontend can treat
// them as stale references rather than outages.
func TestTransactionHandler_GetTransaction(t *testing.T) {
	t.Run("missing transaction returns 404", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(
			testutil.NewTestTransactionService(t, db),
			testutil.NewTestImportService(t, db),
			testutil.TestAccount,
		)
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+testutil.MakeID(),
			map[string]string{"uuid": testutil.MakeID()})
		w := httptest.NewRecorder()

		// Execute
		handler.GetTransaction(w, req)

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("existing transaction is returned", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(
			testutil.NewTestTransactionService(t, db),
			testutil.NewTestImportService(t, db),
			testutil.TestAccount,
		)
		asset := testutil.NewAsset().WithSymbol("AAPL").Build(t, db)
		created := testutil.NewTransaction(asset).Buy(10, 100).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+created.ID,
			map[string]string{"uuid": created.ID})
		w := httptest.NewRecorder()

		// Execute
		handler.GetTransaction(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		var got model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("Response does not decode: %v", err)
		}
		if got.ID != created.ID {
			t.Errorf("Expected transaction %s, got %s", created.ID, got.ID)
		}
	})
}

// TestTransactionHandler_ImportTransactions tests the CSV import endpoint.
//
// WHY: The import accepts a raw CSV body rather than JSON; header validation
// must map to 400 while row-level dirt stays a 200 with skip counts.
func TestTransactionHandler_ImportTransactions(t *testing.T) {
	t.Run("valid CSV reports created rows", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(
			testutil.NewTestTransactionService(t, db),
			testutil.NewTestImportService(t, db),
			testutil.TestAccount,
		)
		csv := "Ticker,股數,買入價,賣出價,買入時間,賣出時間\n700,100,300,350,05/01/2024,15/02/2024\n"
		req := httptest.NewRequest(http.MethodPost, "/api/transaction/import", strings.NewReader(csv))
		w := httptest.NewRecorder()

		// Execute
		handler.ImportTransactions(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"created":2`) {
			t.Errorf("Expected 2 created rows, got %s", w.Body.String())
		}
	})

	t.Run("CSV without a Ticker column returns 400", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(
			testutil.NewTestTransactionService(t, db),
			testutil.NewTestImportService(t, db),
			testutil.TestAccount,
		)
		req := httptest.NewRequest(http.MethodPost, "/api/transaction/import", strings.NewReader("a,b\n1,2\n"))
		w := httptest.NewRecorder()

		// Execute
		handler.ImportTransactions(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
