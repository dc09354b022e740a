package repository

import (
	"errors"
	"sync"

	"clinic-outreach-service/internal/domain/entity"
	domainRepo "clinic-outreach-service/internal/domain/repository"
	"clinic-outreach-service/internal/infrastructure/storage"
)

type patientRepository struct {
	store storage.Store

	mu       sync.RWMutex
	patients []entity.Patient
}

func NewPatientRepository(store storage.Store) domainRepo.PatientRepository {
	return &patientRepository{store: store}
}

func (r *patientRepository) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var patients []entity.Patient
	if err := r.store.Read(storage.NamespacePatients, &patients); err != nil {
		if errors.Is(err, storage.ErrNamespaceNotFound) {
			r.patients = nil
			return nil
		}
		return err
	}
	r.patients = patients
	return nil
}

func (r *patientRepository) Add(patient *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.patients = append(r.patients, *patient)
	return r.persist()
}

func (r *patientRepository) Update(id string, patch entity.PatientPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.patients {
		if r.patients[i].ID == id {
			patch.Apply(&r.patients[i])
			return r.persist()
		}
	}
	// Unknown id: nothing to do
	return nil
}

func (r *patientRepository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.patients {
		if r.patients[i].ID == id {
			r.patients = append(r.patients[:i], r.patients[i+1:]...)
			return r.persist()
		}
	}
	return nil
}

func (r *patientRepository) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.patients = nil
	return r.persist()
}

func (r *patientRepository) MarkSynced(ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	changed := false
	for i := range r.patients {
		if _, ok := idSet[r.patients[i].ID]; ok && !r.patients[i].Synced {
			r.patients[i].Synced = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.persist()
}

func (r *patientRepository) FindByID(id string) *entity.Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.patients {
		if r.patients[i].ID == id {
			patient := r.patients[i]
			return &patient
		}
	}
	return nil
}

func (r *patientRepository) FindAll() []entity.Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Patient, len(r.patients))
	copy(out, r.patients)
	return out
}

func (r *patientRepository) FindUnsynced() []entity.Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Patient, 0)
	for i := range r.patients {
		if !r.patients[i].Synced {
			out = append(out, r.patients[i])
		}
	}
	return out
}

// persist snapshots the full collection. Caller must hold the write lock.
func (r *patientRepository) persist() error {
	return r.store.Write(storage.NamespacePatients, r.patients)
}
