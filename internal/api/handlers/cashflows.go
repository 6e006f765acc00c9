package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stocker-hk/stocker-backend/internal/api/request"
	"github.com/stocker-hk/stocker-backend/internal/api/response"
	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/service"
	"github.com/stocker-hk/stocker-backend/internal/validation"
)

// CashFlowHandler handles HTTP requests for deposit and withdrawal endpoints.
type CashFlowHandler struct {
	cashFlowService *service.CashFlowService
	accountID       string
}

// NewCashFlowHandler creates a new CashFlowHandler with the provided service dependency.
func NewCashFlowHandler(cashFlowService *service.CashFlowService, accountID string) *CashFlowHandler {
	return &CashFlowHandler{
		cashFlowService: cashFlowService,
		accountID:       accountID,
	}
}

// AllCashFlows handles GET requests to retrieve all cash flows ordered by date.
//
// Endpoint: GET /api/cashflow
// Response: 200 OK with array of CashFlow
// Error: 500 Internal Server Error if retrieval fails
func (h *CashFlowHandler) AllCashFlows(w http.ResponseWriter, _ *http.Request) {
	flows, err := h.cashFlowService.GetCashFlows(h.accountID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCashFlows.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, flows)
}

// GetCashFlow handles GET requests to retrieve a single cash flow by ID.
//
// Endpoint: GET /api/cashflow/{uuid}
// Response: 200 OK with CashFlow
// Error: 404 Not Found if the cash flow does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *CashFlowHandler) GetCashFlow(w http.ResponseWriter, r *http.Request) {
	flowID := chi.URLParam(r, "uuid")

	flow, err := h.cashFlowService.GetCashFlow(flowID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCashFlowNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCashFlowNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCashFlow.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, flow)
}

// CreateCashFlow handles POST requests to record a deposit or withdrawal.
//
// Endpoint: POST /api/cashflow
// Request Body: CreateCashFlowRequest (type, amount, currency, date)
// Response: 201 Created with CashFlow
// Error: 400 Bad Request if validation fails or the body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *CashFlowHandler) CreateCashFlow(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateCashFlowRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateCashFlow(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	flow, err := h.cashFlowService.CreateCashFlow(r.Context(), h.accountID, req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create cash flow", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, flow)
}

// UpdateCashFlow handles PUT requests to update an existing cash flow.
//
// Endpoint: PUT /api/cashflow/{uuid}
// Request Body: UpdateCashFlowRequest (all fields optional)
// Response: 200 OK with the updated CashFlow
// Error: 400 Bad Request if validation fails or the body is invalid
// Error: 404 Not Found if the cash flow does not exist
// Error: 500 Internal Server Error if the update fails
func (h *CashFlowHandler) UpdateCashFlow(w http.ResponseWriter, r *http.Request) {
	flowID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateCashFlowRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateCashFlow(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	flow, err := h.cashFlowService.UpdateCashFlow(r.Context(), flowID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrCashFlowNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCashFlowNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update cash flow", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, flow)
}

// DeleteCashFlow handles DELETE requests to remove a cash flow.
//
// Endpoint: DELETE /api/cashflow/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the cash flow does not exist
// Error: 500 Internal Server Error if the delete fails
func (h *CashFlowHandler) DeleteCashFlow(w http.ResponseWriter, r *http.Request) {
	flowID := chi.URLParam(r, "uuid")

	if err := h.cashFlowService.DeleteCashFlow(r.Context(), flowID); err != nil {
		if errors.Is(err, apperrors.ErrCashFlowNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCashFlowNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete cash flow", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
