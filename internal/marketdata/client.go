// Package marketdata fetches current prices and the USD/HKD exchange rate
// from the Yahoo Finance chart API. The accounting engine never calls this
// directly; prices are cached on the asset rows and the rate flows through
// the fx rate provider, so a provider outage degrades to stale values
// instead of failing computations.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// hkdPerUSDSymbol is Yahoo's ticker for the USD/HKD exchange rate.
const hkdPerUSDSymbol = "HKD=X"

// Client fetches market data for a symbol. Implementations must honor the
// context's deadline; the production client also applies its own timeout.
type Client interface {
	// CurrentPrice returns the latest known price for symbol. A symbol with
	// no price data returns an error; callers tolerate that and keep the
	// previous cached price.
	CurrentPrice(ctx context.Context, symbol string) (Quote, error)

	// USDToHKD returns the current HKD-per-USD exchange rate.
	USDToHKD(ctx context.Context) (float64, error)
}

// YahooClient queries the public Yahoo Finance chart endpoint.
type YahooClient struct {
	httpClient *http.Client
	baseURL    string

	// tokenSource supplies an optional API token per request, so a token
	// stored through the settings endpoint takes effect without a restart.
	tokenSource func() string
}

// SetTokenSource installs a per-request token supplier. An empty returned
// token leaves the request unauthenticated.
func (c *YahooClient) SetTokenSource(source func() string) {
	c.tokenSource = source
}

// NewYahooClient creates a Yahoo Finance client with a bounded request timeout.
func NewYahooClient() *YahooClient {
	return &YahooClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://query1.finance.yahoo.com",
	}
}

// NewYahooClientWithBaseURL creates a client against a custom endpoint.
// Used by tests to point at an httptest server.
func NewYahooClientWithBaseURL(baseURL string) *YahooClient {
	c := NewYahooClient()
	c.baseURL = baseURL
	return c
}

// CurrentPrice fetches the latest price for a symbol. It prefers the chart
// meta's regular market price, falling back to the previous close and then
// to the most recent non-nil daily close.
func (c *YahooClient) CurrentPrice(ctx context.Context, symbol string) (Quote, error) {
	response, err := c.queryChart(ctx, symbol)
	if err != nil {
		return Quote{}, err
	}
	if len(response.Chart.Result) == 0 {
		return Quote{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	result := response.Chart.Result[0]

	price := result.Meta.RegularMarketPrice
	if price == 0 {
		price = result.Meta.PreviousClose
	}
	if price == 0 {
		price = lastClose(response)
	}
	if price == 0 {
		return Quote{}, fmt.Errorf("no price data returned for symbol %s", symbol)
	}

	return Quote{
		Symbol:   result.Meta.Symbol,
		Currency: result.Meta.Currency,
		Price:    price,
	}, nil
}

// USDToHKD fetches the current HKD-per-USD rate via the HKD=X chart.
func (c *YahooClient) USDToHKD(ctx context.Context) (float64, error) {
	quote, err := c.CurrentPrice(ctx, hkdPerUSDSymbol)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch USD/HKD rate: %w", err)
	}
	return quote.Price, nil
}

// lastClose walks the daily closes backwards for the newest non-nil value.
func lastClose(response Response) float64 {
	result := response.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return 0
	}
	closes := result.Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil && *closes[i] > 0 {
			return *closes[i]
		}
	}
	return 0
}

// queryChart executes the HTTP request against the chart endpoint. Sets a
// browser-like User-Agent, which Yahoo requires to serve the request.
func (c *YahooClient) queryChart(ctx context.Context, symbol string) (Response, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}
