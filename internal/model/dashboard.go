package model

// DashboardSummary is the account-level rollup shown on the dashboard.
// All monetary fields are expressed in the base currency.
type DashboardSummary struct {
	TotalInvested    float64 `json:"total_invested"`
	CurrentCash      float64 `json:"current_cash"`
	TotalMarketValue float64 `json:"total_market_value"`
	TotalAssets      float64 `json:"total_assets"`
	NetProfit        float64 `json:"net_profit"`
	ROIPercentage    float64 `json:"roi_percentage"`
	USDToHKDRate     float64 `json:"usd_to_hkd_rate"`
}

// Dashboard combines the per-asset position table with the account summary.
type Dashboard struct {
	Positions []Position       `json:"positions"`
	Summary   DashboardSummary `json:"summary"`
}
