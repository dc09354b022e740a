package handler

import (
	"net/http"

	"clinic-outreach-service/internal/delivery/dto"
	"clinic-outreach-service/internal/service"
	"clinic-outreach-service/pkg/response"
)

type SyncHandler struct {
	syncService *service.SyncService
}

func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// TriggerSync runs one sync pass immediately, regardless of the configured
// frequency
func (h *SyncHandler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	if err := h.syncService.SyncAll(r.Context()); err != nil {
		switch err {
		case service.ErrSyncInProgress:
			response.Error(w, http.StatusConflict, "Sync is already in progress", nil)
		case service.ErrNoActingUser:
			response.Error(w, http.StatusConflict, "No signed-in user to attribute sync to", nil)
		default:
			// Detail stays in the logs and in the status endpoint's last_error
			response.Error(w, http.StatusBadGateway, "Sync failed", nil)
		}
		return
	}

	response.Success(w, http.StatusOK, "Sync completed successfully", h.statusResponse())
}

func (h *SyncHandler) GetSyncStatus(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Sync status retrieved successfully", h.statusResponse())
}

func (h *SyncHandler) statusResponse() *dto.SyncStatusResponse {
	status := h.syncService.Status()
	return &dto.SyncStatusResponse{
		IsSyncing:    status.Syncing,
		LastSyncTime: status.LastSyncTime,
		LastError:    status.LastError,
	}
}
