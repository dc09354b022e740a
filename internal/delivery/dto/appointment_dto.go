package dto

import "time"

// Request DTOs

type CreateAppointmentRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot  string `json:"time_slot" validate:"required"`
	Category  string `json:"category" validate:"required"`
	PatientID string `json:"patient_id" validate:"required"`
	Notes     string `json:"notes"`
}

// UpdateAppointmentRequest is a partial update: absent fields are left
// unchanged. Changing patient_id refreshes the patient name snapshot.
type UpdateAppointmentRequest struct {
	Date      *string `json:"date"`
	TimeSlot  *string `json:"time_slot"`
	Category  *string `json:"category"`
	PatientID *string `json:"patient_id"`
	Notes     *string `json:"notes"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	TimeSlot    string    `json:"time_slot"`
	Category    string    `json:"category"`
	PatientID   string    `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
