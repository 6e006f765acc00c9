package repository

import (
	"fmt"
	"time"

	"github.com/stocker-hk/stocker-backend/internal/fx"
)

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// currencyOf maps a stored currency code to its fx.Currency value.
// Unknown or empty codes pass through unchanged so the ledger's
// asset-currency fallback can resolve them.
func currencyOf(code string) fx.Currency {
	return fx.Currency(code)
}

// formatNullableTime renders a time as RFC3339, or empty for the zero value.
func formatNullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
