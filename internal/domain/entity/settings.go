package entity

import "time"

// SyncFrequency controls how often the background sync runs
type SyncFrequency string

const (
	SyncManual     SyncFrequency = "manual"
	SyncEvery15Min SyncFrequency = "15min"
	SyncEvery30Min SyncFrequency = "30min"
	SyncEveryHour  SyncFrequency = "1hr"
)

// Interval returns the sync interval for the frequency. The second return
// value is false for manual (and unknown) frequencies, which never sync
// automatically.
func (f SyncFrequency) Interval() (time.Duration, bool) {
	switch f {
	case SyncEvery15Min:
		return 15 * time.Minute, true
	case SyncEvery30Min:
		return 30 * time.Minute, true
	case SyncEveryHour:
		return time.Hour, true
	default:
		return 0, false
	}
}

// ValidSyncFrequency reports whether f is a known frequency setting
func ValidSyncFrequency(f SyncFrequency) bool {
	switch f {
	case SyncManual, SyncEvery15Min, SyncEvery30Min, SyncEveryHour:
		return true
	}
	return false
}

// Theme values
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Settings holds the device-level application settings
type Settings struct {
	OfflineMode       bool          `json:"offline_mode"`
	SyncFrequency     SyncFrequency `json:"sync_frequency"`
	ShowNotifications bool          `json:"show_notifications"`
	Theme             string        `json:"theme"`
}

// DefaultSettings returns the factory settings
func DefaultSettings() Settings {
	return Settings{
		OfflineMode:       false,
		SyncFrequency:     SyncEvery30Min,
		ShowNotifications: true,
		Theme:             ThemeLight,
	}
}
