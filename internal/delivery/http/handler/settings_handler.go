package handler

import (
	"encoding/json"
	"net/http"

	"clinic-outreach-service/internal/delivery/dto"
	"clinic-outreach-service/internal/usecase"
	"clinic-outreach-service/pkg/response"
)

type SettingsHandler struct {
	settingsUsecase usecase.SettingsUsecase
}

func NewSettingsHandler(settingsUsecase usecase.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{settingsUsecase: settingsUsecase}
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUsecase.GetSettings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings retrieved successfully", settings)
}

func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	settings, err := h.settingsUsecase.UpdateSettings(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSyncFrequency, usecase.ErrInvalidTheme:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update settings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Settings updated successfully", settings)
}

func (h *SettingsHandler) ResetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUsecase.ResetSettings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to reset settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings reset successfully", settings)
}
