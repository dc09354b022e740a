package usecase

import (
	"context"
	"errors"
	"sync"

	"clinic-outreach-service/internal/delivery/dto"
	"clinic-outreach-service/internal/domain/entity"
	"clinic-outreach-service/internal/infrastructure/storage"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidSyncFrequency = errors.New("sync frequency must be manual, 15min, 30min or 1hr")
	ErrInvalidTheme         = errors.New("theme must be light or dark")
)

type SettingsUsecase interface {
	Load() error
	GetSettings(ctx context.Context) (*dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	ResetSettings(ctx context.Context) (*dto.SettingsResponse, error)

	// Current is read by the background sync loop
	Current() entity.Settings
}

type settingsUsecase struct {
	log   *logrus.Logger
	store storage.Store

	mu       sync.RWMutex
	settings entity.Settings
}

func NewSettingsUsecase(log *logrus.Logger, store storage.Store) SettingsUsecase {
	return &settingsUsecase{
		log:      log,
		store:    store,
		settings: entity.DefaultSettings(),
	}
}

// Load reads the persisted settings snapshot. A missing snapshot keeps the
// defaults.
func (u *settingsUsecase) Load() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	var settings entity.Settings
	if err := u.store.Read(storage.NamespaceSettings, &settings); err != nil {
		if errors.Is(err, storage.ErrNamespaceNotFound) {
			u.settings = entity.DefaultSettings()
			return nil
		}
		return err
	}
	u.settings = settings
	return nil
}

func (u *settingsUsecase) Current() entity.Settings {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.settings
}

func (u *settingsUsecase) GetSettings(ctx context.Context) (*dto.SettingsResponse, error) {
	return settingsToResponse(u.Current()), nil
}

func (u *settingsUsecase) UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	updated := u.settings
	if req.OfflineMode != nil {
		updated.OfflineMode = *req.OfflineMode
	}
	if req.SyncFrequency != nil {
		frequency := entity.SyncFrequency(*req.SyncFrequency)
		if !entity.ValidSyncFrequency(frequency) {
			return nil, ErrInvalidSyncFrequency
		}
		updated.SyncFrequency = frequency
	}
	if req.ShowNotifications != nil {
		updated.ShowNotifications = *req.ShowNotifications
	}
	if req.Theme != nil {
		if *req.Theme != entity.ThemeLight && *req.Theme != entity.ThemeDark {
			return nil, ErrInvalidTheme
		}
		updated.Theme = *req.Theme
	}

	if err := u.store.Write(storage.NamespaceSettings, updated); err != nil {
		u.log.Warnf("Failed to persist settings: %+v", err)
		return nil, err
	}
	u.settings = updated

	return settingsToResponse(updated), nil
}

func (u *settingsUsecase) ResetSettings(ctx context.Context) (*dto.SettingsResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	defaults := entity.DefaultSettings()
	if err := u.store.Write(storage.NamespaceSettings, defaults); err != nil {
		u.log.Warnf("Failed to persist settings reset: %+v", err)
		return nil, err
	}
	u.settings = defaults

	u.log.Info("Settings reset to defaults")
	return settingsToResponse(defaults), nil
}

func settingsToResponse(settings entity.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		OfflineMode:       settings.OfflineMode,
		SyncFrequency:     string(settings.SyncFrequency),
		ShowNotifications: settings.ShowNotifications,
		Theme:             settings.Theme,
	}
}
