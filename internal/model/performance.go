package model

// MonthlyStats aggregates the trade events closed (or still open, marked to
// current price) in one calendar month.
//
// AvgHoldingDaysSuccess and AvgHoldingDaysFail are nil when no winning or
// losing event with a positive holding period exists in the month.
type MonthlyStats struct {
	Month                 int      `json:"month"`
	TotalTrades           int      `json:"total_trades"`
	WinRate               float64  `json:"win_rate"`
	AvgProfit             float64  `json:"avg_profit"`
	AvgProfitPercent      float64  `json:"avg_profit_percent"`
	AvgLoss               float64  `json:"avg_loss"`
	AvgLossPercent        float64  `json:"avg_loss_percent"`
	MaxProfit             float64  `json:"max_profit"`
	MaxProfitPercent      float64  `json:"max_profit_percent"`
	MaxLoss               float64  `json:"max_loss"`
	MaxLossPercent        float64  `json:"max_loss_percent"`
	AvgHoldingDaysSuccess *float64 `json:"avg_holding_days_success"`
	AvgHoldingDaysFail    *float64 `json:"avg_holding_days_fail"`
	Profit                float64  `json:"profit"`
}

// PerformanceSummary is the year-level rollup over all monthly trade events.
// Percentages are relative to the starting capital at the year boundary and
// are 0 when starting capital is not positive.
type PerformanceSummary struct {
	StartingCapital         float64 `json:"starting_capital"`
	TotalProfit             float64 `json:"total_profit"`
	TotalProfitPercent      float64 `json:"total_profit_percent"`
	UnrealizedProfit        float64 `json:"unrealized_profit"`
	UnrealizedProfitPercent float64 `json:"unrealized_profit_percent"`
}

// YearlyPerformance is the monthly performance report for one account and year.
// Months always contains twelve entries, January through December.
type YearlyPerformance struct {
	Year    int                `json:"year"`
	Months  []MonthlyStats     `json:"months"`
	Summary PerformanceSummary `json:"summary"`
}
