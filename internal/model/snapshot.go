package model

import "time"

// DailySnapshot is a point-in-time record of an account's net worth, written
// by the scheduled snapshot job after the day's price refresh. Positions holds
// the per-symbol detail as a JSON document.
type DailySnapshot struct {
	ID               string    `json:"id"`
	AccountID        string    `json:"accountId"`
	Date             time.Time `json:"date"`
	NetLiquidity     float64   `json:"netLiquidity"`
	CurrentCash      float64   `json:"currentCash"`
	CashUSD          float64   `json:"cashUsd"`
	CashHKD          float64   `json:"cashHkd"`
	TotalMarketValue float64   `json:"totalMarketValue"`
	TotalInvested    float64   `json:"totalInvested"`
	NetProfit        float64   `json:"netProfit"`
	ROIPercentage    float64   `json:"roiPercentage"`
	ExchangeRate     float64   `json:"exchangeRate"`
	Positions        string    `json:"positions"`
	CreatedAt        time.Time `json:"createdAt,omitempty"`
}
