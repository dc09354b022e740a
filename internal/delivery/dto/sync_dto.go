package dto

import "time"

type SyncStatusResponse struct {
	IsSyncing    bool       `json:"is_syncing"`
	LastSyncTime *time.Time `json:"last_sync_time,omitempty"`
	LastError    string     `json:"last_error,omitempty"`
}
