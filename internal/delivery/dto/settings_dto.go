package dto

type SettingsResponse struct {
	OfflineMode       bool   `json:"offline_mode"`
	SyncFrequency     string `json:"sync_frequency"`
	ShowNotifications bool   `json:"show_notifications"`
	Theme             string `json:"theme"`
}

// UpdateSettingsRequest is a partial update: absent fields keep their value
type UpdateSettingsRequest struct {
	OfflineMode       *bool   `json:"offline_mode"`
	SyncFrequency     *string `json:"sync_frequency"`
	ShowNotifications *bool   `json:"show_notifications"`
	Theme             *string `json:"theme"`
}
