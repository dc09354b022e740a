package entity

import (
	"regexp"
	"time"
)

// Gender values accepted on patient records
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// IDType represents the kind of identity document captured for a patient
type IDType string

const (
	IDTypeNationalID IDType = "National ID"
	IDTypePassport   IDType = "Passport"
)

// South African ID numbers are exactly 13 digits
var nationalIDPattern = regexp.MustCompile(`^\d{13}$`)

// Patient represents a clinic outreach patient record
type Patient struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"first_name"`
	Surname          string    `json:"surname"`
	Gender           Gender    `json:"gender"`
	DateOfBirth      string    `json:"date_of_birth"` // YYYY-MM-DD
	IDType           IDType    `json:"id_type"`
	IDNumber         string    `json:"id_number"`
	Address          string    `json:"address"`
	PrimaryContact   string    `json:"primary_contact"`
	SecondaryContact string    `json:"secondary_contact,omitempty"`
	Synced           bool      `json:"synced"`
	CreatedAt        time.Time `json:"created_at"`
}

// DisplayName returns the name shown on appointment cards and lists
func (p *Patient) DisplayName() string {
	return p.FirstName + " " + p.Surname
}

// ValidIDNumber checks the IDNumber format against the record's IDType.
// National IDs must be exactly 13 digits; passports at least 6 characters.
func (p *Patient) ValidIDNumber() bool {
	if p.IDType == IDTypeNationalID {
		return nationalIDPattern.MatchString(p.IDNumber)
	}
	return len(p.IDNumber) >= 6
}

// ValidGender checks gender is one of the accepted values
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ValidIDType checks the identity document type is a known one
func ValidIDType(t IDType) bool {
	return t == IDTypeNationalID || t == IDTypePassport
}

// PatientPatch carries a partial-field update for a patient record.
// Nil fields are left untouched by Apply.
type PatientPatch struct {
	FirstName        *string
	Surname          *string
	Gender           *Gender
	DateOfBirth      *string
	IDType           *IDType
	IDNumber         *string
	Address          *string
	PrimaryContact   *string
	SecondaryContact *string
	Synced           *bool
}

// Apply merges the set fields of the patch into the patient record
func (p PatientPatch) Apply(patient *Patient) {
	if p.FirstName != nil {
		patient.FirstName = *p.FirstName
	}
	if p.Surname != nil {
		patient.Surname = *p.Surname
	}
	if p.Gender != nil {
		patient.Gender = *p.Gender
	}
	if p.DateOfBirth != nil {
		patient.DateOfBirth = *p.DateOfBirth
	}
	if p.IDType != nil {
		patient.IDType = *p.IDType
	}
	if p.IDNumber != nil {
		patient.IDNumber = *p.IDNumber
	}
	if p.Address != nil {
		patient.Address = *p.Address
	}
	if p.PrimaryContact != nil {
		patient.PrimaryContact = *p.PrimaryContact
	}
	if p.SecondaryContact != nil {
		patient.SecondaryContact = *p.SecondaryContact
	}
	if p.Synced != nil {
		patient.Synced = *p.Synced
	}
}
