package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/stocker-hk/stocker-backend/internal/api/request"
	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/model"
)

// ValidTransactionAction contains the allowed transaction action values.
// The engine is total over well-formed input, so malformed rows must be
// rejected here, before they can reach a replay.
var ValidTransactionAction = map[string]bool{
	model.ActionBuy: true, model.ActionSell: true, model.ActionDividend: true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - symbol: Must be non-empty
//   - date: Must be in YYYY-MM-DD format
//   - action: Must be one of: BUY, SELL, DIVIDEND
//   - price: Must be non-negative
//   - quantity: Must be strictly positive (direction comes from action, not sign)
//   - fee: Must be non-negative
//   - currency: Optional; must be in the tracked set if provided
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Action) == "" {
		errors["action"] = "action is required"
	} else if !ValidTransactionAction[req.Action] {
		errors["action"] = fmt.Sprintf("invalid action: %s", req.Action)
	}

	if req.Price < 0 {
		errors["price"] = "price cannot be negative"
	}

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.Fee < 0 {
		errors["fee"] = "fee cannot be negative"
	}

	if req.Currency != "" && !fx.Supported(fx.Currency(req.Currency)) {
		errors["currency"] = fmt.Sprintf("unsupported currency: %s", req.Currency)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}
	if req.Action != nil {
		if strings.TrimSpace(*req.Action) == "" {
			errors["action"] = "action is required"
		} else if !ValidTransactionAction[*req.Action] {
			errors["action"] = fmt.Sprintf("invalid action: %s", *req.Action)
		}
	}
	if req.Price != nil && *req.Price < 0 {
		errors["price"] = "price cannot be negative"
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.Fee != nil && *req.Fee < 0 {
		errors["fee"] = "fee cannot be negative"
	}
	if req.Currency != nil && *req.Currency != "" && !fx.Supported(fx.Currency(*req.Currency)) {
		errors["currency"] = fmt.Sprintf("unsupported currency: %s", *req.Currency)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
