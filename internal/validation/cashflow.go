package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/stocker-hk/stocker-backend/internal/api/request"
	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/model"
)

// ValidCashFlowType contains the allowed cash flow type values.
var ValidCashFlowType = map[string]bool{
	model.FlowDeposit: true, model.FlowWithdraw: true,
}

// ValidateCreateCashFlow validates a cash flow creation request.
//
// Required fields:
//   - type: Must be DEPOSIT or WITHDRAW
//   - amount: Must be strictly positive
//   - currency: Must be in the tracked set
//   - date: Must be in YYYY-MM-DD format
func ValidateCreateCashFlow(req request.CreateCashFlowRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidCashFlowType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}

	if !fx.Supported(fx.Currency(req.Currency)) {
		errors["currency"] = fmt.Sprintf("unsupported currency: %s", req.Currency)
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateCashFlow validates a cash flow update request. All fields are
// optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateCashFlow(req request.UpdateCashFlowRequest) error {
	errors := make(map[string]string)

	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			errors["type"] = "type is required"
		} else if !ValidCashFlowType[*req.Type] {
			errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}
	if req.Amount != nil && *req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}
	if req.Currency != nil && !fx.Supported(fx.Currency(*req.Currency)) {
		errors["currency"] = fmt.Sprintf("unsupported currency: %s", *req.Currency)
	}
	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
