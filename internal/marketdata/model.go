package marketdata

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API. Only the fields this application reads are mapped: symbol
// metadata with the current market price, plus daily close prices used as a
// fallback when the meta price is absent.
type Response struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				ExchangeName       string  `json:"exchangeName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// Quote is the price for one symbol at the time of the query.
type Quote struct {
	Symbol   string
	Currency string
	Price    float64
}
