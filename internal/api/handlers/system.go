package handlers

import (
	"net/http"

	"github.com/stocker-hk/stocker-backend/internal/api/request"
	"github.com/stocker-hk/stocker-backend/internal/api/response"
	"github.com/stocker-hk/stocker-backend/internal/apperrors"
	"github.com/stocker-hk/stocker-backend/internal/service"
)

// SystemHandler handles HTTP requests for system endpoints: health, version,
// and the settings administration.
type SystemHandler struct {
	systemService  *service.SystemService
	settingService *service.SettingService
}

// NewSystemHandler creates a new SystemHandler with the provided service dependencies.
func NewSystemHandler(systemService *service.SystemService, settingService *service.SettingService) *SystemHandler {
	return &SystemHandler{
		systemService:  systemService,
		settingService: settingService,
	}
}

// Health handles GET requests to check system health.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with {"status": "ok"}
// Error: 503 Service Unavailable if the database is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, "unhealthy", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Version handles GET requests for the application and schema versions.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfo
// Error: 500 Internal Server Error if the schema version cannot be read
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	info, err := h.systemService.GetVersionInfo()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetVersionInfo.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, info)
}

// GetSettings handles GET requests for the redacted system settings.
//
// Endpoint: GET /api/system/settings (API-key protected)
// Response: 200 OK with SettingsView
// Error: 500 Internal Server Error if retrieval fails
func (h *SystemHandler) GetSettings(w http.ResponseWriter, _ *http.Request) {
	settings, err := h.settingService.GetSettings()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT requests to update system settings.
//
// Endpoint: PUT /api/system/settings (API-key protected)
// Request Body: UpdateSettingsRequest
// Response: 200 OK with the redacted SettingsView
// Error: 400 Bad Request if the body is invalid
// Error: 500 Internal Server Error if the update fails
func (h *SystemHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateSettingsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.MarketDataToken != nil {
		if err := h.settingService.SetMarketDataToken(r.Context(), *req.MarketDataToken); err != nil {
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateSettings.Error(), err.Error())
			return
		}
	}

	settings, err := h.settingService.GetSettings()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, settings)
}
