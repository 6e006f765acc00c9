package ledger

import (
	"time"

	"github.com/stocker-hk/stocker-backend/internal/model"
)

// PerformanceInput carries everything the monthly aggregator needs for one
// account and year. Transaction slices must be pre-sorted by
// (date, creation-sequence) ascending; the maps are keyed by asset ID.
type PerformanceInput struct {
	Year int

	// Assets indexes every asset referenced by the transaction maps.
	Assets map[string]model.Asset

	// TransactionsInYear holds each asset's transactions dated within Year.
	// The yearly replay is bounded to these: positions carried into the year
	// are not reconstructed, which is why an in-year sale of prior inventory
	// surfaces as a short open with a zero cost basis.
	TransactionsInYear map[string][]model.Transaction

	// TransactionsBefore holds each asset's transactions dated strictly
	// before Jan 1 of Year, used to value the position held at the boundary.
	TransactionsBefore map[string][]model.Transaction

	// FlowsBefore and CashTransactionsBefore are the account's cash flows and
	// transactions strictly before Jan 1 of Year, for the starting balance.
	FlowsBefore            []model.CashFlow
	CashTransactionsBefore []model.Transaction

	USDToHKD float64
}

// ComputeYearlyPerformance produces the month-by-month trading report for one
// account and year.
//
// Starting capital is the cash reconciled strictly before Jan 1 plus the
// market value of the position held at that boundary, valued at the current
// price, an accepted approximation since no historical price series is
// tracked.
//
// Each in-year replay emits realized trade events; lots still open at year
// end each contribute one unrealized event attributed to the month the lot
// was opened. Running the aggregator twice on unchanged data yields identical
// output.
func ComputeYearlyPerformance(in PerformanceInput) model.YearlyPerformance {
	startingCapital := ReconcileCash(in.FlowsBefore, in.CashTransactionsBefore, in.USDToHKD).TotalInBase
	for assetID, txs := range in.TransactionsBefore {
		if len(txs) == 0 {
			continue
		}
		pos := ComputePosition(in.Assets[assetID], txs, in.USDToHKD)
		startingCapital += pos.MarketValue
	}

	byMonth := make([][]TradeEvent, 13)
	var unrealizedProfit float64

	for assetID, txs := range in.TransactionsInYear {
		b := NewBook(in.Assets[assetID], in.USDToHKD)
		b.ApplyAll(txs)

		for _, ev := range b.Events() {
			m := eventMonth(ev, in.Year)
			byMonth[m] = append(byMonth[m], ev)
		}
		for _, ev := range b.MarkOpenLots() {
			unrealizedProfit += ev.Profit
			m := eventMonth(ev, in.Year)
			byMonth[m] = append(byMonth[m], ev)
		}
	}

	months := make([]model.MonthlyStats, 0, 12)
	var totalProfit float64
	for m := 1; m <= 12; m++ {
		stats := aggregateMonth(m, byMonth[m])
		totalProfit += stats.Profit
		months = append(months, stats)
	}

	return model.YearlyPerformance{
		Year:   in.Year,
		Months: months,
		Summary: model.PerformanceSummary{
			StartingCapital:         startingCapital,
			TotalProfit:             totalProfit,
			TotalProfitPercent:      percentOf(totalProfit, startingCapitalBasis(startingCapital)),
			UnrealizedProfit:        unrealizedProfit,
			UnrealizedProfitPercent: percentOf(unrealizedProfit, startingCapitalBasis(startingCapital)),
		},
	}
}

// startingCapitalBasis guards the degenerate denominator: percentages are 0
// when starting capital is not positive.
func startingCapitalBasis(capital float64) float64 {
	if capital <= 0 {
		return 0
	}
	return capital
}

// eventMonth clamps an event's month into the report year. Events can only
// stem from in-year transactions, so the clamp matters only for pathological
// input dates.
func eventMonth(ev TradeEvent, year int) int {
	if ev.Date.Year() != year {
		if ev.Date.Before(time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)) {
			return 1
		}
		return 12
	}
	return int(ev.Date.Month())
}

// aggregateMonth folds one month's trade events into its statistics row.
// Wins are events with profit > 0; everything else counts as a loss.
// Holding-day averages only consider events with a positive holding period
// and are nil when none exist.
func aggregateMonth(month int, events []TradeEvent) model.MonthlyStats {
	stats := model.MonthlyStats{Month: month, TotalTrades: len(events)}
	if len(events) == 0 {
		return stats
	}

	var (
		wins, losses               int
		winProfit, winPercent      float64
		lossProfit, lossPercent    float64
		winDays, lossDays          float64
		winDayCount, lossDayCount  int
		maxProfit, maxLoss         float64
		maxProfitPct, maxLossPct   float64
		haveMaxProfit, haveMaxLoss bool
	)

	for _, ev := range events {
		stats.Profit += ev.Profit

		if ev.Profit > 0 {
			wins++
			winProfit += ev.Profit
			winPercent += ev.ProfitPercent
			if ev.HoldingDays > 0 {
				winDays += float64(ev.HoldingDays)
				winDayCount++
			}
			if !haveMaxProfit || ev.Profit > maxProfit {
				maxProfit = ev.Profit
				maxProfitPct = ev.ProfitPercent
				haveMaxProfit = true
			}
		} else {
			losses++
			lossProfit += ev.Profit
			lossPercent += ev.ProfitPercent
			if ev.HoldingDays > 0 {
				lossDays += float64(ev.HoldingDays)
				lossDayCount++
			}
			if !haveMaxLoss || ev.Profit < maxLoss {
				maxLoss = ev.Profit
				maxLossPct = ev.ProfitPercent
				haveMaxLoss = true
			}
		}
	}

	stats.WinRate = float64(wins) / float64(len(events))
	if wins > 0 {
		stats.AvgProfit = winProfit / float64(wins)
		stats.AvgProfitPercent = winPercent / float64(wins)
	}
	if losses > 0 {
		stats.AvgLoss = lossProfit / float64(losses)
		stats.AvgLossPercent = lossPercent / float64(losses)
	}
	stats.MaxProfit = maxProfit
	stats.MaxProfitPercent = maxProfitPct
	stats.MaxLoss = maxLoss
	stats.MaxLossPercent = maxLossPct
	if winDayCount > 0 {
		avg := winDays / float64(winDayCount)
		stats.AvgHoldingDaysSuccess = &avg
	}
	if lossDayCount > 0 {
		avg := lossDays / float64(lossDayCount)
		stats.AvgHoldingDaysFail = &avg
	}

	return stats
}
