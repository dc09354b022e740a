package repository

import (
	"clinic-outreach-service/internal/domain/entity"
)

// PatientRepository is the patient directory. Same operation shape as the
// appointment repository: ordered records, silent no-ops on unknown ids,
// errors only from the persistence collaborator.
//
// Removing a patient does not cascade to appointments; readers must tolerate
// dangling patient references.
type PatientRepository interface {
	Load() error

	Add(patient *entity.Patient) error
	Update(id string, patch entity.PatientPatch) error
	Remove(id string) error
	Reset() error
	MarkSynced(ids []string) error

	FindByID(id string) *entity.Patient
	FindAll() []entity.Patient
	FindUnsynced() []entity.Patient
}
