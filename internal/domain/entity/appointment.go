package entity

import (
	"time"
)

// AppointmentStatus is a presentation-only classification derived from the
// appointment's date, time slot and the current wall-clock time. It is never
// stored.
type AppointmentStatus string

const (
	StatusUpcoming   AppointmentStatus = "Upcoming"
	StatusToday      AppointmentStatus = "Today"
	StatusInProgress AppointmentStatus = "In Progress"
	StatusCompleted  AppointmentStatus = "Completed"
	StatusMissed     AppointmentStatus = "Missed"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// Appointment represents a booking on the daily scheduling grid.
// PatientName is a snapshot of the patient's display name at booking time
// and is intentionally not kept in sync with later patient renames.
// PatientID is a weak reference: it may dangle once the patient is deleted.
type Appointment struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	TimeSlot    string    `json:"time_slot"`
	Category    string    `json:"category"`
	PatientID   string    `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	Notes       string    `json:"notes,omitempty"`
	Synced      bool      `json:"synced"`
	CreatedAt   time.Time `json:"created_at"`
}

// StartTime returns the slot start on the appointment's date, interpreted in
// the given location
func (a *Appointment) StartTime(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateTimeLayout, a.Date+" "+a.TimeSlot, loc)
}

// StatusAt derives the presentation status for the given instant.
// A slot lasts one hour: the appointment is In Progress within
// [start, start+1h), Completed once now reaches the slot end, Today when the
// date matches but the slot has not started, Upcoming for future dates, and
// Missed otherwise.
func (a *Appointment) StatusAt(now time.Time) AppointmentStatus {
	start, err := a.StartTime(now.Location())
	if err != nil {
		return StatusMissed
	}
	end := start.Add(time.Hour)

	switch {
	case !now.Before(end):
		return StatusCompleted
	case !now.Before(start):
		return StatusInProgress
	case a.Date == now.Format(dateLayout):
		return StatusToday
	case start.After(now):
		return StatusUpcoming
	default:
		return StatusMissed
	}
}

// AppointmentPatch carries a partial-field update for an appointment.
// Nil fields are left untouched by Apply.
type AppointmentPatch struct {
	Date        *string
	TimeSlot    *string
	Category    *string
	PatientID   *string
	PatientName *string
	Notes       *string
	Synced      *bool
}

// Apply merges the set fields of the patch into the appointment record
func (p AppointmentPatch) Apply(a *Appointment) {
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.TimeSlot != nil {
		a.TimeSlot = *p.TimeSlot
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.PatientID != nil {
		a.PatientID = *p.PatientID
	}
	if p.PatientName != nil {
		a.PatientName = *p.PatientName
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	if p.Synced != nil {
		a.Synced = *p.Synced
	}
}

// MovesCell reports whether the patch changes any of the three fields that
// identify the appointment's grid cell
func (p AppointmentPatch) MovesCell() bool {
	return p.Date != nil || p.TimeSlot != nil || p.Category != nil
}
