package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stocker-hk/stocker-backend/internal/api/response"
	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/service"
)

// PortfolioHandler handles HTTP requests for the dashboard, balance, and
// performance read endpoints. All three are pure reads over replayed state.
type PortfolioHandler struct {
	portfolioService   *service.PortfolioService
	balanceService     *service.BalanceService
	performanceService *service.PerformanceService
	accountID          string
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependencies.
func NewPortfolioHandler(
	portfolioService *service.PortfolioService,
	balanceService *service.BalanceService,
	performanceService *service.PerformanceService,
	accountID string,
) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService:   portfolioService,
		balanceService:     balanceService,
		performanceService: performanceService,
		accountID:          accountID,
	}
}

// Dashboard handles GET requests for the position table and account summary.
//
// Endpoint: GET /api/dashboard
// Response: 200 OK with Dashboard
// Error: 500 Internal Server Error if the replay fails
func (h *PortfolioHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.portfolioService.GetDashboard(r.Context(), h.accountID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDashboard.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, dashboard)
}

// Balance handles GET requests for the cached per-currency cash balances.
//
// Endpoint: GET /api/balance
// Response: 200 OK with AccountBalance
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.balanceService.GetBalance(r.Context(), h.accountID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveBalance.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, balance)
}

// Performance handles GET requests for the monthly performance report.
//
// Endpoint: GET /api/performance/{year}
// Response: 200 OK with YearlyPerformance
// Error: 400 Bad Request if the year is not a valid number
// Error: 500 Internal Server Error if the computation fails
func (h *PortfolioHandler) Performance(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidYear.Error(), err.Error())
		return
	}

	report, err := h.performanceService.GetYearlyPerformance(r.Context(), h.accountID, year)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidYear) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidYear.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePerformance.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
