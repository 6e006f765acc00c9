package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/model"
)

// TestAccount is the account ID used throughout the test suite.
const TestAccount = "test-account"

// MakeID generates a fresh UUID string.
func MakeID() string {
	return uuid.New().String()
}

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	asset := testutil.NewAsset().WithSymbol("AAPL").WithPrice(230).Build(t, db)
//	hk := testutil.NewAsset().WithSymbol("0700.HK").InHKD().Build(t, db)
type AssetBuilder struct {
	ID           string
	Symbol       string
	Name         string
	Currency     fx.Currency
	Sector       string
	CurrentPrice float64
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		ID:       MakeID(),
		Symbol:   "AAPL",
		Name:     "Test Asset",
		Currency: fx.USD,
	}
}

// WithSymbol sets a custom symbol.
func (b *AssetBuilder) WithSymbol(symbol string) *AssetBuilder {
	b.Symbol = symbol
	return b
}

// WithPrice sets the cached current price.
func (b *AssetBuilder) WithPrice(price float64) *AssetBuilder {
	b.CurrentPrice = price
	return b
}

// InHKD marks the asset as a Hong Kong listing.
func (b *AssetBuilder) InHKD() *AssetBuilder {
	b.Currency = fx.HKD
	return b
}

// Build inserts the asset and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO asset (id, symbol, name, currency, sector, current_price) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Symbol, b.Name, string(b.Currency), b.Sector, b.CurrentPrice,
	)
	if err != nil {
		t.Fatalf("Failed to insert test asset: %v", err)
	}

	return model.Asset{
		ID:           b.ID,
		Symbol:       b.Symbol,
		Name:         b.Name,
		Currency:     b.Currency,
		Sector:       b.Sector,
		CurrentPrice: b.CurrentPrice,
	}
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	testutil.NewTransaction(asset).Buy(10, 100).On("2024-01-05").Build(t, db)
//	testutil.NewTransaction(asset).Sell(10, 120).On("2024-01-15").WithFee(1).Build(t, db)
type TransactionBuilder struct {
	ID        string
	AccountID string
	Asset     model.Asset
	Action    string
	Date      string
	Price     float64
	Quantity  float64
	Fee       float64
	Currency  string
	CreatedAt time.Time
}

// NewTransaction creates a TransactionBuilder for the given asset with defaults.
func NewTransaction(asset model.Asset) *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		AccountID: TestAccount,
		Asset:     asset,
		Action:    model.ActionBuy,
		Date:      "2024-01-02",
		Price:     100,
		Quantity:  1,
		CreatedAt: time.Now().UTC(),
	}
}

// Buy sets a BUY action with quantity and price.
func (b *TransactionBuilder) Buy(quantity, price float64) *TransactionBuilder {
	b.Action = model.ActionBuy
	b.Quantity = quantity
	b.Price = price
	return b
}

// Sell sets a SELL action with quantity and price.
func (b *TransactionBuilder) Sell(quantity, price float64) *TransactionBuilder {
	b.Action = model.ActionSell
	b.Quantity = quantity
	b.Price = price
	return b
}

// Dividend sets a DIVIDEND action with quantity and per-share amount.
func (b *TransactionBuilder) Dividend(quantity, perShare float64) *TransactionBuilder {
	b.Action = model.ActionDividend
	b.Quantity = quantity
	b.Price = perShare
	return b
}

// On sets the transaction date (YYYY-MM-DD).
func (b *TransactionBuilder) On(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// WithFee sets the fee.
func (b *TransactionBuilder) WithFee(fee float64) *TransactionBuilder {
	b.Fee = fee
	return b
}

// WithAccount overrides the account ID.
func (b *TransactionBuilder) WithAccount(accountID string) *TransactionBuilder {
	b.AccountID = accountID
	return b
}

// WithCurrency overrides the stored transaction currency; by default the
// column stays empty and reads fall back to the asset's currency.
func (b *TransactionBuilder) WithCurrency(currency fx.Currency) *TransactionBuilder {
	b.Currency = string(currency)
	return b
}

// CreatedAfter makes this transaction sort after the other one on the same
// date, pinning the creation-sequence tie-breaker.
func (b *TransactionBuilder) CreatedAfter(other *TransactionBuilder) *TransactionBuilder {
	b.CreatedAt = other.CreatedAt.Add(time.Second)
	return b
}

// Build inserts the transaction and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO "transaction" (id, account_id, asset_id, action, date, price, quantity, fee, currency, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.AccountID, b.Asset.ID, b.Action, b.Date, b.Price, b.Quantity, b.Fee, b.Currency,
		b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to insert test transaction: %v", err)
	}

	date, _ := time.Parse("2006-01-02", b.Date)
	currency := fx.Currency(b.Currency)
	if currency == "" {
		currency = b.Asset.Currency
	}
	return model.Transaction{
		ID:        b.ID,
		AccountID: b.AccountID,
		AssetID:   b.Asset.ID,
		Symbol:    b.Asset.Symbol,
		Action:    b.Action,
		Date:      date.UTC(),
		Price:     b.Price,
		Quantity:  b.Quantity,
		Fee:       b.Fee,
		Currency:  currency,
		CreatedAt: b.CreatedAt,
	}
}

// CashFlowBuilder provides a fluent interface for creating test cash flows.
//
// Example usage:
//
//	testutil.NewCashFlow().Deposit(10000, fx.USD).On("2023-12-01").Build(t, db)
type CashFlowBuilder struct {
	ID        string
	AccountID string
	Type      string
	Amount    float64
	Currency  fx.Currency
	Date      string
}

// NewCashFlow creates a CashFlowBuilder with sensible defaults.
func NewCashFlow() *CashFlowBuilder {
	return &CashFlowBuilder{
		ID:        MakeID(),
		AccountID: TestAccount,
		Type:      model.FlowDeposit,
		Amount:    1000,
		Currency:  fx.USD,
		Date:      "2024-01-02",
	}
}

// Deposit sets a DEPOSIT with amount and currency.
func (b *CashFlowBuilder) Deposit(amount float64, currency fx.Currency) *CashFlowBuilder {
	b.Type = model.FlowDeposit
	b.Amount = amount
	b.Currency = currency
	return b
}

// Withdraw sets a WITHDRAW with amount and currency.
func (b *CashFlowBuilder) Withdraw(amount float64, currency fx.Currency) *CashFlowBuilder {
	b.Type = model.FlowWithdraw
	b.Amount = amount
	b.Currency = currency
	return b
}

// On sets the flow date (YYYY-MM-DD).
func (b *CashFlowBuilder) On(date string) *CashFlowBuilder {
	b.Date = date
	return b
}

// WithAccount overrides the account ID.
func (b *CashFlowBuilder) WithAccount(accountID string) *CashFlowBuilder {
	b.AccountID = accountID
	return b
}

// Build inserts the cash flow and returns it.
func (b *CashFlowBuilder) Build(t *testing.T, db *sql.DB) model.CashFlow {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO cash_flow (id, account_id, type, amount, currency, date) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.AccountID, b.Type, b.Amount, string(b.Currency), b.Date,
	)
	if err != nil {
		t.Fatalf("Failed to insert test cash flow: %v", err)
	}

	date, _ := time.Parse("2006-01-02", b.Date)
	return model.CashFlow{
		ID:        b.ID,
		AccountID: b.AccountID,
		Type:      b.Type,
		Amount:    b.Amount,
		Currency:  b.Currency,
		Date:      date.UTC(),
	}
}
