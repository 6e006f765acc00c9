package handlers

import (
	"net/http"

	"github.com/stocker-hk/stocker-backend/internal/api/response"
	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/service"
)

// AdminHandler handles the operational endpoints: manual price refresh and
// manual snapshot runs. Both are also triggered by the scheduler.
type AdminHandler struct {
	assetService    *service.AssetService
	snapshotService *service.SnapshotService
	accountID       string
}

// NewAdminHandler creates a new AdminHandler with the provided service dependencies.
func NewAdminHandler(assetService *service.AssetService, snapshotService *service.SnapshotService, accountID string) *AdminHandler {
	return &AdminHandler{
		assetService:    assetService,
		snapshotService: snapshotService,
		accountID:       accountID,
	}
}

// UpdatePrices handles POST requests to refresh every asset's cached price.
//
// Endpoint: POST /api/prices/update
// Response: 200 OK with PriceRefreshResult
// Error: 500 Internal Server Error if the refresh pass fails outright
func (h *AdminHandler) UpdatePrices(w http.ResponseWriter, r *http.Request) {
	result, err := h.assetService.RefreshPrices(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdatePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// RunSnapshot handles POST requests to write today's account snapshot.
//
// Endpoint: POST /api/snapshot/run
// Response: 200 OK with DailySnapshot
// Error: 500 Internal Server Error if the snapshot fails
func (h *AdminHandler) RunSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotService.RunSnapshot(r.Context(), h.accountID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRunSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}
