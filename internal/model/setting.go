package model

import "time"

// Well-known system setting keys.
const (
	SettingMarketDataToken = "market_data_token"
)

// SystemSetting is a key/value configuration row. Secret values (the market
// data API token) are stored fernet-encrypted; see the secrets package.
type SystemSetting struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
