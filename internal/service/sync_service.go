package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"clinic-outreach-service/internal/domain/entity"
	"clinic-outreach-service/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSyncInProgress is returned when a sync is requested while one is running
var ErrSyncInProgress = errors.New("sync is already in progress")

// ErrNoActingUser is returned when sync is requested with nobody signed in
var ErrNoActingUser = errors.New("no signed-in user to attribute sync to")

const (
	// Redis key prefixes for the outward mirror
	redisPatientKeyPrefix     = "sync:patients:"
	redisAppointmentKeyPrefix = "sync:appointments:"

	// Timeout for one full sync pass
	syncRunTimeout = 30 * time.Second

	// Records per pipeline execution
	syncBatchSize = 200

	// How often the background loop re-reads settings and checks whether
	// the configured interval has elapsed
	syncLoopTick = time.Minute
)

// SettingsSource provides the current device settings to the sync loop
type SettingsSource interface {
	Current() entity.Settings
}

// SyncStatus is a point-in-time snapshot of the sync service state
type SyncStatus struct {
	Syncing      bool
	LastSyncTime *time.Time
	LastError    string
}

// SyncService mirrors unsynced patient and appointment records to Redis in
// the background, at the frequency configured in settings. The mirror is
// last-write-wins per record id; there is no conflict resolution and no
// ordering guarantee with respect to the engine's reads and writes.
//
// Records are marked synced locally only after the mirror write succeeds, so
// a failed pass is retried in full on the next run.
type SyncService struct {
	redisClient     *redis.Client
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	settings        SettingsSource

	// Acting user id, set at login. Sync is skipped while empty.
	actingUser atomic.Value // string

	syncing atomic.Bool

	stateMu      sync.Mutex
	lastSyncTime *time.Time
	lastError    string

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewSyncService(
	redisClient *redis.Client,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	settings SettingsSource,
) *SyncService {
	svc := &SyncService{
		redisClient:     redisClient,
		log:             log,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		settings:        settings,
		stopChan:        make(chan struct{}),
	}
	svc.actingUser.Store("")
	return svc
}

// Start launches the background sync loop. Call Stop during shutdown.
func (s *SyncService) Start() {
	s.wg.Add(1)
	go s.loop()
}

// Stop shuts the background loop down. Safe to call multiple times.
func (s *SyncService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SyncService stopped")
	}
}

// SetActingUser records who sync writes are attributed to. An empty id
// (logout) pauses automatic sync.
func (s *SyncService) SetActingUser(userID string) {
	s.actingUser.Store(userID)
}

// Status returns the current sync state for the settings screen
func (s *SyncService) Status() SyncStatus {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	var last *time.Time
	if s.lastSyncTime != nil {
		t := *s.lastSyncTime
		last = &t
	}
	return SyncStatus{
		Syncing:      s.syncing.Load(),
		LastSyncTime: last,
		LastError:    s.lastError,
	}
}

// SyncAll runs one full mirror pass: all unsynced patients, then all
// unsynced appointments. Only one pass runs at a time.
func (s *SyncService) SyncAll(ctx context.Context) error {
	if !s.syncing.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer s.syncing.Store(false)

	userID, _ := s.actingUser.Load().(string)
	if userID == "" {
		return ErrNoActingUser
	}

	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Sync aborted, redis unreachable: %+v", err)
		s.recordError(fmt.Errorf("redis ping failed: %w", err))
		return fmt.Errorf("redis ping failed: %w", err)
	}

	patientCount, err := s.syncPatients(ctx, userID)
	if err != nil {
		s.recordError(err)
		return err
	}

	appointmentCount, err := s.syncAppointments(ctx, userID)
	if err != nil {
		s.recordError(err)
		return err
	}

	now := time.Now()
	s.stateMu.Lock()
	s.lastSyncTime = &now
	s.lastError = ""
	s.stateMu.Unlock()

	s.log.Infof("Sync completed: %d patients, %d appointments in %v",
		patientCount, appointmentCount, time.Since(startTime))
	return nil
}

func (s *SyncService) syncPatients(ctx context.Context, userID string) (int, error) {
	patients := s.patientRepo.FindUnsynced()

	for start := 0; start < len(patients); start += syncBatchSize {
		end := start + syncBatchSize
		if end > len(patients) {
			end = len(patients)
		}
		batch := patients[start:end]

		pipe := s.redisClient.TxPipeline()
		ids := make([]string, 0, len(batch))
		for _, p := range batch {
			key := redisPatientKeyPrefix + p.ID
			pipe.HSet(ctx, key, map[string]interface{}{
				"id":                p.ID,
				"first_name":        p.FirstName,
				"surname":           p.Surname,
				"gender":            string(p.Gender),
				"date_of_birth":     p.DateOfBirth,
				"id_type":           string(p.IDType),
				"id_number":         p.IDNumber,
				"address":           p.Address,
				"primary_contact":   p.PrimaryContact,
				"secondary_contact": p.SecondaryContact,
				"created_by":        userID,
				"synced":            true,
			})
			ids = append(ids, p.ID)
		}

		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Warnf("Failed to mirror patient batch at offset %d: %+v", start, err)
			return start, fmt.Errorf("mirror patients at offset %d: %w", start, err)
		}
		if err := s.patientRepo.MarkSynced(ids); err != nil {
			s.log.Warnf("Failed to mark patients synced: %+v", err)
			return start, fmt.Errorf("mark patients synced: %w", err)
		}
	}
	return len(patients), nil
}

func (s *SyncService) syncAppointments(ctx context.Context, userID string) (int, error) {
	appointments := s.appointmentRepo.FindUnsynced()

	for start := 0; start < len(appointments); start += syncBatchSize {
		end := start + syncBatchSize
		if end > len(appointments) {
			end = len(appointments)
		}
		batch := appointments[start:end]

		pipe := s.redisClient.TxPipeline()
		ids := make([]string, 0, len(batch))
		for _, a := range batch {
			key := redisAppointmentKeyPrefix + a.ID
			pipe.HSet(ctx, key, map[string]interface{}{
				"id":         a.ID,
				"patient_id": a.PatientID,
				"date":       a.Date,
				"time_slot":  a.TimeSlot,
				"category":   a.Category,
				"notes":      a.Notes,
				"created_by": userID,
				"synced":     true,
			})
			ids = append(ids, a.ID)
		}

		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Warnf("Failed to mirror appointment batch at offset %d: %+v", start, err)
			return start, fmt.Errorf("mirror appointments at offset %d: %w", start, err)
		}
		if err := s.appointmentRepo.MarkSynced(ids); err != nil {
			s.log.Warnf("Failed to mark appointments synced: %+v", err)
			return start, fmt.Errorf("mark appointments synced: %w", err)
		}
	}
	return len(appointments), nil
}

func (s *SyncService) recordError(err error) {
	s.stateMu.Lock()
	s.lastError = err.Error()
	s.stateMu.Unlock()
}

// loop wakes up every syncLoopTick and runs a pass once the configured
// interval has elapsed. The frequency setting is re-read on every tick so
// changes take effect without a restart.
func (s *SyncService) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(syncLoopTick)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Sync loop stopping")
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *SyncService) tick() {
	settings := s.settings.Current()
	if settings.OfflineMode {
		return
	}
	interval, ok := settings.SyncFrequency.Interval()
	if !ok {
		// Manual frequency: only the explicit trigger syncs
		return
	}
	if userID, _ := s.actingUser.Load().(string); userID == "" {
		return
	}

	s.stateMu.Lock()
	last := s.lastSyncTime
	s.stateMu.Unlock()
	if last != nil && time.Since(*last) < interval {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), syncRunTimeout)
	defer cancel()
	if err := s.SyncAll(ctx); err != nil && !errors.Is(err, ErrSyncInProgress) {
		s.log.Warnf("Background sync failed: %+v", err)
	}
}
