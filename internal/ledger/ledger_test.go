package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/ledger"
	"github.com/stocker-hk/stocker-backend/internal/model"
)

func usdAsset(symbol string, price float64) model.Asset {
	return model.Asset{ID: symbol, Symbol: symbol, Currency: fx.USD, CurrentPrice: price}
}

func hkdAsset(symbol string, price float64) model.Asset {
	return model.Asset{ID: symbol, Symbol: symbol, Currency: fx.HKD, CurrentPrice: price}
}

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func tx(action string, d time.Time, price, qty, fee float64) model.Transaction {
	return model.Transaction{Action: action, Date: d, Price: price, Quantity: qty, Fee: fee, Currency: fx.USD}
}

func TestComputePosition_BuyThenSell(t *testing.T) {
	// Buy 10 @ 100 (fee 1); Sell 10 @ 120 (fee 1).
	// Buy fee: -1. Sell gain: (120-100)*10 - 1 = 199. Total 198.
	asset := usdAsset("AAPL", 150)
	pos := ledger.ComputePosition(asset, []model.Transaction{
		tx(model.ActionBuy, day(1), 100, 10, 1),
		tx(model.ActionSell, day(2), 120, 10, 1),
	}, 1)

	assert.InDelta(t, 198.0, pos.RealizedPL, 1e-9)
	assert.Zero(t, pos.Quantity)
	assert.Zero(t, pos.AvgCost)
	assert.Zero(t, pos.UnrealizedPL)
	assert.Zero(t, pos.MarketValue)
}

func TestComputePosition_ShortThenCover(t *testing.T) {
	// Sell 5 @ 50 opens a short; Buy 5 @ 40 covers it.
	// Realized = (50-40)*5 = 50, mirroring the long case.
	asset := usdAsset("TSLA", 45)
	pos := ledger.ComputePosition(asset, []model.Transaction{
		tx(model.ActionSell, day(1), 50, 5, 0),
		tx(model.ActionBuy, day(2), 40, 5, 0),
	}, 1)

	assert.InDelta(t, 50.0, pos.RealizedPL, 1e-9)
	assert.Zero(t, pos.Quantity)
}

func TestComputePosition_FIFOOrdering(t *testing.T) {
	// Two buys at distinct prices; the sale must match the oldest lot first.
	// Sell 15: closes the full 10 @ 100 lot and 5 of the 10 @ 110 lot.
	// Realized = (120-100)*10 + (120-110)*5 = 250.
	asset := usdAsset("MSFT", 115)
	pos := ledger.ComputePosition(asset, []model.Transaction{
		tx(model.ActionBuy, day(1), 100, 10, 0),
		tx(model.ActionBuy, day(2), 110, 10, 0),
		tx(model.ActionSell, day(3), 120, 15, 0),
	}, 1)

	require.InDelta(t, 250.0, pos.RealizedPL, 1e-9)
	assert.InDelta(t, 5.0, pos.Quantity, 1e-9)
	// Remaining inventory is 5 shares of the 110 lot, not an average of both.
	assert.InDelta(t, 110.0, pos.AvgCost, 1e-9)
	assert.InDelta(t, 5*115.0, pos.MarketValue, 1e-9)
	assert.InDelta(t, 5*(115.0-110.0), pos.UnrealizedPL, 1e-9)
}

func TestComputePosition_SellPastInventoryOpensShort(t *testing.T) {
	// Selling 15 with only 10 held closes the long and opens a 5-share short.
	asset := usdAsset("NVDA", 90)
	pos := ledger.ComputePosition(asset, []model.Transaction{
		tx(model.ActionBuy, day(1), 100, 10, 0),
		tx(model.ActionSell, day(2), 120, 15, 0),
	}, 1)

	assert.InDelta(t, 200.0, pos.RealizedPL, 1e-9)
	assert.InDelta(t, -5.0, pos.Quantity, 1e-9)
	// Short convention: accumulated short-sale proceeds serve as the basis.
	assert.InDelta(t, 120.0, pos.AvgCost, 1e-9)
	// Short unrealized: (avg_cost - current) * |quantity|.
	assert.InDelta(t, (120.0-90.0)*5, pos.UnrealizedPL, 1e-9)
	assert.InDelta(t, 5*90.0, pos.ShortMarketValue, 1e-9)
	assert.Zero(t, pos.LongMarketValue)
	assert.InDelta(t, -5*90.0, pos.MarketValue, 1e-9)
}

func TestComputePosition_ShortCoverFIFO(t *testing.T) {
	// Two short opens at distinct prices, partial cover matches the oldest.
	// Cover 6 @ 45: closes 5 @ 50 and 1 @ 55, so (50-45)*5 + (55-45)*1 = 35.
	asset := usdAsset("AMD", 48)
	pos := ledger.ComputePosition(asset, []model.Transaction{
		tx(model.ActionSell, day(1), 50, 5, 0),
		tx(model.ActionSell, day(2), 55, 5, 0),
		tx(model.ActionBuy, day(3), 45, 6, 0),
	}, 1)

	assert.InDelta(t, 35.0, pos.RealizedPL, 1e-9)
	assert.InDelta(t, -4.0, pos.Quantity, 1e-9)
	assert.InDelta(t, 55.0, pos.AvgCost, 1e-9)
}

func TestComputePosition_DividendAccumulates(t *testing.T) {
	// Dividends never touch lots or realized P&L.
	asset := usdAsset("KO", 60)
	pos := ledger.ComputePosition(asset, []model.Transaction{
		tx(model.ActionBuy, day(1), 55, 100, 0),
		tx(model.ActionDividend, day(10), 0.46, 100, 0),
		tx(model.ActionDividend, day(20), 0.46, 100, 0),
	}, 1)

	assert.InDelta(t, 92.0, pos.TotalDividends, 1e-9)
	assert.Zero(t, pos.RealizedPL)
	assert.InDelta(t, 100.0, pos.Quantity, 1e-9)
}

func TestComputePosition_FlatPositionZeroLaw(t *testing.T) {
	// After returning to exactly zero quantity, avg cost, unrealized P&L and
	// market value are all zero while realized P&L keeps its value.
	asset := usdAsset("META", 300)
	pos := ledger.ComputePosition(asset, []model.Transaction{
		tx(model.ActionBuy, day(1), 200, 4, 2),
		tx(model.ActionSell, day(5), 250, 4, 2),
	}, 1)

	assert.Zero(t, pos.Quantity)
	assert.Zero(t, pos.AvgCost)
	assert.Zero(t, pos.UnrealizedPL)
	assert.Zero(t, pos.MarketValue)
	assert.InDelta(t, (250.0-200.0)*4-4, pos.RealizedPL, 1e-9)
}

func TestComputePosition_CurrencyNormalization(t *testing.T) {
	// An HKD position is reported in USD using the pass's single rate.
	rate := 7.8
	asset := hkdAsset("0700.HK", 390)
	txs := []model.Transaction{
		{Action: model.ActionBuy, Date: day(1), Price: 312, Quantity: 100, Fee: 78, Currency: fx.HKD},
		{Action: model.ActionSell, Date: day(2), Price: 390, Quantity: 40, Currency: fx.HKD},
	}
	pos := ledger.ComputePosition(asset, txs, rate)

	assert.InDelta(t, ((390.0-312.0)*40-78)/rate, pos.RealizedPL, 1e-9)
	assert.InDelta(t, 60*390.0/rate, pos.MarketValue, 1e-9)
	assert.InDelta(t, 312.0/rate, pos.AvgCost, 1e-9)

	// Currency closure: converting inputs before replay gives the same result
	// as converting inside the replay, within rounding tolerance.
	preconverted := make([]model.Transaction, len(txs))
	for i, typed := range txs {
		typed.Price /= rate
		typed.Fee /= rate
		typed.Currency = fx.USD
		preconverted[i] = typed
	}
	usdEquivalent := asset
	usdEquivalent.Currency = fx.USD
	usdEquivalent.CurrentPrice = asset.CurrentPrice / rate
	posPre := ledger.ComputePosition(usdEquivalent, preconverted, rate)

	assert.InDelta(t, pos.RealizedPL, posPre.RealizedPL, 1e-6)
	assert.InDelta(t, pos.MarketValue, posPre.MarketValue, 1e-6)
	assert.InDelta(t, pos.UnrealizedPL, posPre.UnrealizedPL, 1e-6)
}

func TestBook_QuantityConservation(t *testing.T) {
	// Net quantity equals longTotal - shortTotal after every replay step, and
	// queue totals never go negative.
	asset := usdAsset("NFLX", 500)
	txs := []model.Transaction{
		tx(model.ActionBuy, day(1), 400, 10, 0),
		tx(model.ActionSell, day(2), 420, 15, 0),
		tx(model.ActionBuy, day(3), 410, 3, 0),
		tx(model.ActionSell, day(4), 430, 1, 0),
		tx(model.ActionBuy, day(5), 405, 10, 0),
	}

	b := ledger.NewBook(asset, 1)
	net := 0.0
	for _, typed := range txs {
		b.Apply(typed)
		switch typed.Action {
		case model.ActionBuy:
			net += typed.Quantity
		case model.ActionSell:
			net -= typed.Quantity
		}
		pos := b.Position()
		require.InDelta(t, net, pos.Quantity, 1e-9)
		require.GreaterOrEqual(t, pos.LongMarketValue, 0.0)
		require.GreaterOrEqual(t, pos.ShortMarketValue, 0.0)
	}
}

func TestBook_TradeEvents(t *testing.T) {
	asset := usdAsset("AAPL", 150)
	b := ledger.NewBook(asset, 1)
	b.ApplyAll([]model.Transaction{
		tx(model.ActionBuy, day(1), 100, 10, 0),
		tx(model.ActionSell, day(11), 120, 10, 0),
		tx(model.ActionSell, day(12), 130, 5, 0),
	})

	events := b.Events()
	require.Len(t, events, 2)

	// Long close: profit against the matched lot's cost basis.
	assert.InDelta(t, 200.0, events[0].Profit, 1e-9)
	assert.InDelta(t, 20.0, events[0].ProfitPercent, 1e-9)
	assert.Equal(t, 10, events[0].HoldingDays)
	assert.False(t, events[0].Unrealized)

	// Short open: proceeds recorded with zero cost basis and holding period.
	assert.InDelta(t, 650.0, events[1].Profit, 1e-9)
	assert.Zero(t, events[1].ProfitPercent)
	assert.Zero(t, events[1].HoldingDays)
}

func TestBook_MarkOpenLots(t *testing.T) {
	asset := usdAsset("GOOG", 110)
	b := ledger.NewBook(asset, 1)
	b.ApplyAll([]model.Transaction{
		tx(model.ActionBuy, day(3), 100, 10, 0),
	})

	events := b.MarkOpenLots()
	require.Len(t, events, 1)
	assert.True(t, events[0].Unrealized)
	assert.InDelta(t, 100.0, events[0].Profit, 1e-9)
	assert.InDelta(t, 10.0, events[0].ProfitPercent, 1e-9)
	assert.Equal(t, day(3), events[0].Date)
	assert.Zero(t, events[0].HoldingDays)
}

func TestComputePosition_MissingPriceValuesAtZero(t *testing.T) {
	asset := usdAsset("IPO", 0)
	pos := ledger.ComputePosition(asset, []model.Transaction{
		tx(model.ActionBuy, day(1), 10, 100, 0),
	}, 1)

	assert.Zero(t, pos.MarketValue)
	assert.InDelta(t, -1000.0, pos.UnrealizedPL, 1e-9)
	assert.InDelta(t, 10.0, pos.AvgCost, 1e-9)
}
