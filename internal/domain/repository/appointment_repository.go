package repository

import (
	"clinic-outreach-service/internal/domain/entity"
)

// AppointmentRepository is the single source of truth for appointment
// records. Insertion order is preserved for stable list rendering. The
// repository does not enforce slot capacity; the availability checker is
// consulted before Add.
//
// Update and Remove against an unknown id are silent no-ops. Errors come
// only from the persistence collaborator.
type AppointmentRepository interface {
	Load() error

	Add(appointment *entity.Appointment) error
	Update(id string, patch entity.AppointmentPatch) error
	Remove(id string) error
	Reset() error
	MarkSynced(ids []string) error

	FindByID(id string) *entity.Appointment
	FindAll() []entity.Appointment
	FindByDate(date string) []entity.Appointment
	FindByPatientID(patientID string) []entity.Appointment
	FindUnsynced() []entity.Appointment
}
