package request

type CreateTransactionRequest struct {
	Symbol   string  `json:"symbol"`
	Date     string  `json:"date"`
	Action   string  `json:"action"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Fee      float64 `json:"fee"`
	Currency string  `json:"currency,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

type UpdateTransactionRequest struct {
	Symbol   *string  `json:"symbol,omitempty"`
	Date     *string  `json:"date,omitempty"`
	Action   *string  `json:"action,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Fee      *float64 `json:"fee,omitempty"`
	Currency *string  `json:"currency,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
}
