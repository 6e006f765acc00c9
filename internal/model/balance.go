package model

import "time"

// AccountBalance is the persisted cash-balance cache, one row per account.
// It is always rebuilt wholesale by the cash reconciliation engine, never
// incrementally patched, so any drift self-heals on the next recompute.
type AccountBalance struct {
	AccountID   string    `json:"accountId"`
	CashUSD     float64   `json:"cashUsd"`
	CashHKD     float64   `json:"cashHkd"`
	TotalInBase float64   `json:"totalInBase"`
	LastUpdated time.Time `json:"lastUpdated"`
}
