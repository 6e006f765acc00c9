// Package fx handles currency normalization for the portfolio engine.
// All monetary aggregates in the system are expressed in the base currency (USD);
// HKD amounts are converted using a single USD/HKD rate supplied per computation
// pass. The rate must not change mid-pass.
package fx

// Currency is an ISO 4217 currency code from the closed set this system tracks.
type Currency string

// Supported currencies. Base is the currency every cross-currency monetary
// output is normalized into before aggregation.
const (
	USD Currency = "USD"
	HKD Currency = "HKD"

	Base = USD
)

// Supported reports whether c is one of the tracked currencies.
func Supported(c Currency) bool {
	return c == USD || c == HKD
}

// Currencies returns the closed set of tracked currencies.
func Currencies() []Currency {
	return []Currency{USD, HKD}
}

// Convert converts amount from the given currency into the base currency (USD).
// usdToHKD is the number of HKD per 1 USD. Identity when from is already the
// base currency. A non-positive rate yields 0 for HKD amounts rather than a
// division blow-up; validation upstream rejects unsupported currencies.
func Convert(amount float64, from Currency, usdToHKD float64) float64 {
	if from == Base {
		return amount
	}
	if usdToHKD <= 0 {
		return 0
	}
	return amount / usdToHKD
}
