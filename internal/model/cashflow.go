package model

import (
	"time"

	"github.com/stocker-hk/stocker-backend/internal/fx"
)

// Cash flow types. Amount is always stored as a positive number.
const (
	FlowDeposit  = "DEPOSIT"
	FlowWithdraw = "WITHDRAW"
)

// CashFlow represents money moved into or out of an account, in the flow's
// own currency.
type CashFlow struct {
	ID        string      `json:"id"`
	AccountID string      `json:"accountId"`
	Type      string      `json:"type"`
	Amount    float64     `json:"amount"`
	Currency  fx.Currency `json:"currency"`
	Date      time.Time   `json:"date"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"createdAt,omitempty"`
}
