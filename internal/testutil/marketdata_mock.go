package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/stocker-hk/stocker-backend/internal/marketdata"
)

// MockMarketData is an in-memory marketdata.Client for tests. Prices and the
// exchange rate are settable; unknown symbols return an error, mimicking a
// failed fetch.
type MockMarketData struct {
	mu     sync.Mutex
	prices map[string]marketdata.Quote
	rate   float64
	calls  int
}

// NewMockMarketData creates a mock with a default 7.8 USD/HKD rate.
func NewMockMarketData() *MockMarketData {
	return &MockMarketData{
		prices: make(map[string]marketdata.Quote),
		rate:   7.8,
	}
}

// SetPrice registers a quote for a symbol.
func (m *MockMarketData) SetPrice(symbol string, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[symbol] = marketdata.Quote{Symbol: symbol, Price: price}
}

// SetRate sets the USD/HKD rate.
func (m *MockMarketData) SetRate(rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rate = rate
}

// Calls reports how many price fetches have been made.
func (m *MockMarketData) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// CurrentPrice implements marketdata.Client.
func (m *MockMarketData) CurrentPrice(_ context.Context, symbol string) (marketdata.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	quote, ok := m.prices[symbol]
	if !ok {
		return marketdata.Quote{}, fmt.Errorf("no quote for %s", symbol)
	}
	return quote, nil
}

// USDToHKD implements marketdata.Client.
func (m *MockMarketData) USDToHKD(_ context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rate, nil
}
