// Package ledger implements the position and cash accounting engine: FIFO lot
// matching over an ordered transaction log, cash-balance reconstruction, and
// monthly performance aggregation.
//
// Every computation here is a pure, synchronous replay over immutable input
// slices; nothing is persisted and different accounts or assets may be
// replayed concurrently without coordination. Callers supply transactions
// pre-sorted by (date, creation-sequence) ascending and one USD/HKD rate that
// is reused for every conversion within the pass.
package ledger

import (
	"time"

	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/model"
)

// lot is one open inventory entry. Lots live in two ordered queues (long and
// short) per asset, are created during replay, shrink as they are matched,
// and are dropped when their quantity reaches zero.
type lot struct {
	price    float64
	quantity float64
	openDate time.Time
}

// TradeEvent records one realized close (long-close, short-cover, short-open)
// or, after MarkOpenLots, one still-open lot marked to the current price.
// Profit is in the base currency. Date is the closing date for realized
// events and the lot's open date for unrealized ones; the event is attributed
// to that date's month.
type TradeEvent struct {
	Symbol        string
	Profit        float64
	ProfitPercent float64
	HoldingDays   int
	Date          time.Time
	Unrealized    bool
}

// Book replays one asset's transactions for one account through two FIFO
// inventories. The zero value is not usable; construct with NewBook.
type Book struct {
	asset    model.Asset
	usdToHKD float64

	longLots  []lot
	shortLots []lot

	realizedPL     float64
	totalDividends float64

	events []TradeEvent
}

// NewBook creates an empty book for the given asset. usdToHKD is the single
// conversion rate used for the whole replay pass.
func NewBook(asset model.Asset, usdToHKD float64) *Book {
	return &Book{asset: asset, usdToHKD: usdToHKD}
}

// normalize converts an amount in the transaction's currency to the base
// currency, falling back to the asset's currency when the transaction does
// not carry one.
func (b *Book) normalize(amount float64, c fx.Currency) float64 {
	if c == "" {
		c = b.asset.Currency
	}
	return fx.Convert(amount, c, b.usdToHKD)
}

// Apply replays a single transaction. Transactions must be applied in
// (date, creation-sequence) ascending order; the engine is total over
// well-formed input; malformed rows are rejected by validation upstream.
func (b *Book) Apply(t model.Transaction) {
	switch t.Action {
	case model.ActionBuy:
		b.applyBuy(t)
	case model.ActionSell:
		b.applySell(t)
	case model.ActionDividend:
		b.totalDividends += b.normalize(t.GrossAmount(), t.Currency)
	}
}

// ApplyAll replays a transaction sequence in order.
func (b *Book) ApplyAll(txs []model.Transaction) {
	for _, t := range txs {
		b.Apply(t)
	}
}

// applyBuy covers existing short lots FIFO first; any leftover quantity opens
// a long lot at the tail. The buy fee is deducted from realized P&L.
func (b *Book) applyBuy(t model.Transaction) {
	remaining := t.Quantity

	for remaining > 0 && len(b.shortLots) > 0 {
		sl := &b.shortLots[0]
		closed := min(sl.quantity, remaining)

		gain := b.normalize((sl.price-t.Price)*closed, t.Currency)
		b.realizedPL += gain
		b.events = append(b.events, TradeEvent{
			Symbol:        b.asset.Symbol,
			Profit:        gain,
			ProfitPercent: percentOf(gain, b.normalize(sl.price*closed, t.Currency)),
			HoldingDays:   daysBetween(sl.openDate, t.Date),
			Date:          t.Date,
		})

		sl.quantity -= closed
		remaining -= closed
		if sl.quantity <= 0 {
			b.shortLots = b.shortLots[1:]
		}
	}

	if remaining > 0 {
		b.longLots = append(b.longLots, lot{price: t.Price, quantity: remaining, openDate: t.Date})
	}

	b.realizedPL -= b.normalize(t.Fee, t.Currency)
}

// applySell closes existing long lots FIFO first. If the long inventory is
// exhausted before the sell quantity is consumed, the remainder opens a short
// lot. Selling past inventory is a defined case, never an error. The sell
// fee is deducted from realized P&L.
func (b *Book) applySell(t model.Transaction) {
	remaining := t.Quantity

	for remaining > 0 && len(b.longLots) > 0 {
		ll := &b.longLots[0]
		closed := min(ll.quantity, remaining)

		gain := b.normalize((t.Price-ll.price)*closed, t.Currency)
		b.realizedPL += gain
		b.events = append(b.events, TradeEvent{
			Symbol:        b.asset.Symbol,
			Profit:        gain,
			ProfitPercent: percentOf(gain, b.normalize(ll.price*closed, t.Currency)),
			HoldingDays:   daysBetween(ll.openDate, t.Date),
			Date:          t.Date,
		})

		ll.quantity -= closed
		remaining -= closed
		if ll.quantity <= 0 {
			b.longLots = b.longLots[1:]
		}
	}

	if remaining > 0 {
		b.shortLots = append(b.shortLots, lot{price: t.Price, quantity: remaining, openDate: t.Date})

		// A short open has no matched lot: the proceeds are recorded as the
		// event's profit with a zero cost basis and zero holding period.
		b.events = append(b.events, TradeEvent{
			Symbol: b.asset.Symbol,
			Profit: b.normalize(remaining*t.Price, t.Currency),
			Date:   t.Date,
		})
	}

	b.realizedPL -= b.normalize(t.Fee, t.Currency)
}

// Events returns the trade events recorded so far, in replay order.
func (b *Book) Events() []TradeEvent {
	return b.events
}

// MarkOpenLots emits one unrealized trade event per still-open lot, valued at
// the asset's current price and attributed to the month the lot was opened.
// Holding days are left at zero so open positions never skew the holding-day
// averages.
func (b *Book) MarkOpenLots() []TradeEvent {
	price := b.asset.CurrentPrice
	events := make([]TradeEvent, 0, len(b.longLots)+len(b.shortLots))

	for _, ll := range b.longLots {
		profit := b.normalize((price-ll.price)*ll.quantity, b.asset.Currency)
		events = append(events, TradeEvent{
			Symbol:        b.asset.Symbol,
			Profit:        profit,
			ProfitPercent: percentOf(profit, b.normalize(ll.price*ll.quantity, b.asset.Currency)),
			Date:          ll.openDate,
			Unrealized:    true,
		})
	}
	for _, sl := range b.shortLots {
		profit := b.normalize((sl.price-price)*sl.quantity, b.asset.Currency)
		events = append(events, TradeEvent{
			Symbol:        b.asset.Symbol,
			Profit:        profit,
			ProfitPercent: percentOf(profit, b.normalize(sl.price*sl.quantity, b.asset.Currency)),
			Date:          sl.openDate,
			Unrealized:    true,
		})
	}

	return events
}

// Position computes the snapshot of the book's current state. Net quantity is
// longTotal − shortTotal; avg cost follows the net side (short-sale proceeds
// serve as the basis when net short); all monetary fields are in the base
// currency. A missing current price values the position at 0.
func (b *Book) Position() model.Position {
	var longQty, longCost, shortQty, shortProceeds float64
	for _, ll := range b.longLots {
		longQty += ll.quantity
		longCost += ll.price * ll.quantity
	}
	for _, sl := range b.shortLots {
		shortQty += sl.quantity
		shortProceeds += sl.price * sl.quantity
	}

	quantity := longQty - shortQty
	price := b.asset.CurrentPrice

	var avgCost, unrealized float64
	switch {
	case quantity > 0:
		avgCost = longCost / longQty
		unrealized = b.normalize(quantity*price-longCost, b.asset.Currency)
	case quantity < 0:
		avgCost = shortProceeds / shortQty
		unrealized = b.normalize((avgCost-price)*-quantity, b.asset.Currency)
	}

	return model.Position{
		Symbol:           b.asset.Symbol,
		Currency:         b.asset.Currency,
		Quantity:         quantity,
		AvgCost:          b.normalize(avgCost, b.asset.Currency),
		RealizedPL:       b.realizedPL,
		TotalDividends:   b.totalDividends,
		MarketValue:      b.normalize(quantity*price, b.asset.Currency),
		UnrealizedPL:     unrealized,
		LongMarketValue:  b.normalize(longQty*price, b.asset.Currency),
		ShortMarketValue: b.normalize(shortQty*price, b.asset.Currency),
	}
}

// ComputePosition replays an asset's full transaction history and returns its
// position snapshot.
func ComputePosition(asset model.Asset, txs []model.Transaction, usdToHKD float64) model.Position {
	b := NewBook(asset, usdToHKD)
	b.ApplyAll(txs)
	return b.Position()
}

// percentOf returns profit relative to basis as a percentage, 0 when the
// basis is degenerate (e.g. a short open with no cost basis).
func percentOf(profit, basis float64) float64 {
	if basis == 0 {
		return 0
	}
	return profit / basis * 100
}

// daysBetween counts whole calendar days from open to close, never negative.
func daysBetween(open, close time.Time) int {
	d := int(close.Sub(open).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
