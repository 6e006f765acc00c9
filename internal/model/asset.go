package model

import (
	"time"

	"github.com/stocker-hk/stocker-backend/internal/fx"
)

// Asset represents a tradable instrument (e.g. AAPL, 0700.HK).
// CurrentPrice is a single cached point value refreshed by the market data
// client; staleness is tolerated and an absent price is treated as 0.
type Asset struct {
	ID               string      `json:"id"`
	Symbol           string      `json:"symbol"`
	Name             string      `json:"name"`
	Currency         fx.Currency `json:"currency"`
	Sector           string      `json:"sector,omitempty"`
	CurrentPrice     float64     `json:"currentPrice"`
	LastPriceUpdated time.Time   `json:"lastPriceUpdated,omitempty"`
}
