package repository

import (
	"errors"
	"sync"

	"clinic-outreach-service/internal/domain/entity"
	domainRepo "clinic-outreach-service/internal/domain/repository"
	"clinic-outreach-service/internal/infrastructure/storage"
)

type appointmentRepository struct {
	store storage.Store

	mu           sync.RWMutex
	appointments []entity.Appointment
}

func NewAppointmentRepository(store storage.Store) domainRepo.AppointmentRepository {
	return &appointmentRepository{store: store}
}

// Load replaces the in-memory collection with the persisted snapshot.
// A missing snapshot means a fresh install and starts empty.
func (r *appointmentRepository) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var appointments []entity.Appointment
	if err := r.store.Read(storage.NamespaceAppointments, &appointments); err != nil {
		if errors.Is(err, storage.ErrNamespaceNotFound) {
			r.appointments = nil
			return nil
		}
		return err
	}
	r.appointments = appointments
	return nil
}

func (r *appointmentRepository) Add(appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appointments = append(r.appointments, *appointment)
	return r.persist()
}

func (r *appointmentRepository) Update(id string, patch entity.AppointmentPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appointments {
		if r.appointments[i].ID == id {
			patch.Apply(&r.appointments[i])
			return r.persist()
		}
	}
	// Unknown id: nothing to do
	return nil
}

func (r *appointmentRepository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appointments {
		if r.appointments[i].ID == id {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return r.persist()
		}
	}
	return nil
}

func (r *appointmentRepository) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appointments = nil
	return r.persist()
}

func (r *appointmentRepository) MarkSynced(ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	changed := false
	for i := range r.appointments {
		if _, ok := idSet[r.appointments[i].ID]; ok && !r.appointments[i].Synced {
			r.appointments[i].Synced = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.persist()
}

func (r *appointmentRepository) FindByID(id string) *entity.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.appointments {
		if r.appointments[i].ID == id {
			appointment := r.appointments[i]
			return &appointment
		}
	}
	return nil
}

func (r *appointmentRepository) FindAll() []entity.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Appointment, len(r.appointments))
	copy(out, r.appointments)
	return out
}

func (r *appointmentRepository) FindByDate(date string) []entity.Appointment {
	return r.findBy(func(a *entity.Appointment) bool { return a.Date == date })
}

func (r *appointmentRepository) FindByPatientID(patientID string) []entity.Appointment {
	return r.findBy(func(a *entity.Appointment) bool { return a.PatientID == patientID })
}

func (r *appointmentRepository) FindUnsynced() []entity.Appointment {
	return r.findBy(func(a *entity.Appointment) bool { return !a.Synced })
}

func (r *appointmentRepository) findBy(match func(*entity.Appointment) bool) []entity.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Appointment, 0)
	for i := range r.appointments {
		if match(&r.appointments[i]) {
			out = append(out, r.appointments[i])
		}
	}
	return out
}

// persist snapshots the full collection. Caller must hold the write lock.
// The in-memory state stays authoritative even if the snapshot fails; the
// next successful mutation rewrites the whole set.
func (r *appointmentRepository) persist() error {
	return r.store.Write(storage.NamespaceAppointments, r.appointments)
}
