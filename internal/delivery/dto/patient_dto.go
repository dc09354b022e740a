package dto

import "time"

// Request DTOs

type CreatePatientRequest struct {
	FirstName        string `json:"first_name" validate:"required"`
	Surname          string `json:"surname" validate:"required"`
	Gender           string `json:"gender" validate:"required"`
	DateOfBirth      string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	IDType           string `json:"id_type" validate:"required"`
	IDNumber         string `json:"id_number" validate:"required"`
	Address          string `json:"address" validate:"required"`
	PrimaryContact   string `json:"primary_contact" validate:"required"`
	SecondaryContact string `json:"secondary_contact"`
}

// UpdatePatientRequest is a partial update: absent fields are left unchanged
type UpdatePatientRequest struct {
	FirstName        *string `json:"first_name"`
	Surname          *string `json:"surname"`
	Gender           *string `json:"gender"`
	DateOfBirth      *string `json:"date_of_birth"`
	IDType           *string `json:"id_type"`
	IDNumber         *string `json:"id_number"`
	Address          *string `json:"address"`
	PrimaryContact   *string `json:"primary_contact"`
	SecondaryContact *string `json:"secondary_contact"`
}

// Response DTOs

type PatientResponse struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"first_name"`
	Surname          string    `json:"surname"`
	Gender           string    `json:"gender"`
	DateOfBirth      string    `json:"date_of_birth"`
	IDType           string    `json:"id_type"`
	IDNumber         string    `json:"id_number"`
	Address          string    `json:"address"`
	PrimaryContact   string    `json:"primary_contact"`
	SecondaryContact string    `json:"secondary_contact,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
