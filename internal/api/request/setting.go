package request

type UpdateSettingsRequest struct {
	MarketDataToken *string `json:"marketDataToken,omitempty"`
}
