package model

import (
	"time"

	"github.com/stocker-hk/stocker-backend/internal/fx"
)

// Transaction actions. Quantity is always stored as a positive number;
// direction is carried by the action, never by sign.
const (
	ActionBuy      = "BUY"
	ActionSell     = "SELL"
	ActionDividend = "DIVIDEND"
)

// Transaction represents a buy, sell, or dividend event for an account's asset.
// Rows are immutable once used in a replay: editing or deleting a historical
// transaction triggers a full balance recompute, never an incremental patch.
//
// Replays depend on (Date, CreatedAt) ascending order; CreatedAt acts as the
// creation-sequence tie-breaker for same-day transactions.
type Transaction struct {
	ID        string      `json:"id"`
	AccountID string      `json:"accountId"`
	AssetID   string      `json:"assetId"`
	Symbol    string      `json:"symbol"`
	Action    string      `json:"action"`
	Date      time.Time   `json:"date"`
	Price     float64     `json:"price"`
	Quantity  float64     `json:"quantity"`
	Fee       float64     `json:"fee"`
	Currency  fx.Currency `json:"currency"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"createdAt,omitempty"`
}

// GrossAmount is price * quantity in the transaction's own currency, before
// fees. For dividends, Price is the per-share dividend amount.
func (t Transaction) GrossAmount() float64 {
	return t.Price * t.Quantity
}
