package model

import "github.com/stocker-hk/stocker-backend/internal/fx"

// Position is the computed snapshot of one asset's holding after a full FIFO
// replay. It is never stored. Quantity is signed: positive long, negative
// short, zero flat. All monetary fields are expressed in the base currency.
//
// AvgCost follows the source convention for short positions: accumulated
// short-sale proceeds divided by the short quantity, reported as the basis.
type Position struct {
	Symbol           string      `json:"symbol"`
	Currency         fx.Currency `json:"currency"`
	Quantity         float64     `json:"quantity"`
	AvgCost          float64     `json:"avgCost"`
	RealizedPL       float64     `json:"realizedPl"`
	TotalDividends   float64     `json:"totalDividends"`
	MarketValue      float64     `json:"currentMarketValue"`
	UnrealizedPL     float64     `json:"unrealizedPl"`
	LongMarketValue  float64     `json:"longMarketValue"`
	ShortMarketValue float64     `json:"shortMarketValue"`
}

// GrossExposure is the capital at risk regardless of direction: the sum of
// absolute long and short market values.
func (p Position) GrossExposure() float64 {
	return p.LongMarketValue + p.ShortMarketValue
}
