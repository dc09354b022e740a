package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-outreach-service/internal/converter"
	"clinic-outreach-service/internal/delivery/dto"
	"clinic-outreach-service/internal/domain/entity"
	"clinic-outreach-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrMissingRequiredField = errors.New("first name, surname, address and primary contact must not be empty")
	ErrInvalidGender        = errors.New("gender must be Male, Female or Other")
	ErrInvalidIDType        = errors.New("id type must be National ID or Passport")
	ErrInvalidIDNumber      = errors.New("id number format does not match id type")
	ErrDateOfBirthInFuture  = errors.New("date of birth must be in the past")
	ErrInvalidDateFormat    = errors.New("invalid date format, use YYYY-MM-DD")
)

// UnknownPatientName is the placeholder shown when an appointment references
// a patient that has since been deleted
const UnknownPatientName = "Unknown patient"

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id string) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, id string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, id string) error
	ResetPatients(ctx context.Context) error
	ResolveDisplayName(patientID string) string
}

type patientUsecase struct {
	log         *logrus.Logger
	patientRepo repository.PatientRepository
}

func NewPatientUsecase(log *logrus.Logger, patientRepo repository.PatientRepository) PatientUsecase {
	return &patientUsecase{
		log:         log,
		patientRepo: patientRepo,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	patient := &entity.Patient{
		ID:               uuid.New().String(),
		FirstName:        req.FirstName,
		Surname:          req.Surname,
		Gender:           entity.Gender(req.Gender),
		DateOfBirth:      req.DateOfBirth,
		IDType:           entity.IDType(req.IDType),
		IDNumber:         req.IDNumber,
		Address:          req.Address,
		PrimaryContact:   req.PrimaryContact,
		SecondaryContact: req.SecondaryContact,
		CreatedAt:        time.Now(),
	}

	if err := validatePatient(patient); err != nil {
		return nil, err
	}

	if err := u.patientRepo.Add(patient); err != nil {
		u.log.Warnf("Failed to persist patient %s: %+v", patient.ID, err)
		return nil, err
	}

	u.log.Infof("Patient created: id=%s", patient.ID)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id string) (*dto.PatientResponse, error) {
	patient := u.patientRepo.FindByID(id)
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) ListPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients := u.patientRepo.FindAll()
	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

// UpdatePatient merges the given fields into the record. The merged record
// is re-validated in full, so an update can never leave the id number and id
// type inconsistent.
func (u *patientUsecase) UpdatePatient(ctx context.Context, id string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	existing := u.patientRepo.FindByID(id)
	if existing == nil {
		return nil, ErrPatientNotFound
	}

	patch := entity.PatientPatch{
		FirstName:        req.FirstName,
		Surname:          req.Surname,
		Gender:           (*entity.Gender)(req.Gender),
		DateOfBirth:      req.DateOfBirth,
		IDType:           (*entity.IDType)(req.IDType),
		IDNumber:         req.IDNumber,
		Address:          req.Address,
		PrimaryContact:   req.PrimaryContact,
		SecondaryContact: req.SecondaryContact,
	}

	merged := *existing
	patch.Apply(&merged)
	if err := validatePatient(&merged); err != nil {
		return nil, err
	}

	if err := u.patientRepo.Update(id, patch); err != nil {
		u.log.Warnf("Failed to persist patient update %s: %+v", id, err)
		return nil, err
	}

	return converter.PatientToResponse(&merged), nil
}

// DeletePatient removes the record. Appointments referencing the patient are
// left untouched; their patient_id dangles and readers fall back to the
// placeholder name.
func (u *patientUsecase) DeletePatient(ctx context.Context, id string) error {
	if u.patientRepo.FindByID(id) == nil {
		return ErrPatientNotFound
	}

	if err := u.patientRepo.Remove(id); err != nil {
		u.log.Warnf("Failed to persist patient removal %s: %+v", id, err)
		return err
	}

	u.log.Infof("Patient deleted: id=%s", id)
	return nil
}

func (u *patientUsecase) ResetPatients(ctx context.Context) error {
	if err := u.patientRepo.Reset(); err != nil {
		u.log.Warnf("Failed to reset patients: %+v", err)
		return err
	}
	u.log.Info("Patient directory wiped")
	return nil
}

// ResolveDisplayName returns the patient's display name, or the placeholder
// when the id does not resolve (dangling reference case).
func (u *patientUsecase) ResolveDisplayName(patientID string) string {
	patient := u.patientRepo.FindByID(patientID)
	if patient == nil {
		return UnknownPatientName
	}
	return patient.DisplayName()
}

// validatePatient checks the full record, so both create and partial update
// go through the same rules
func validatePatient(patient *entity.Patient) error {
	if strings.TrimSpace(patient.FirstName) == "" ||
		strings.TrimSpace(patient.Surname) == "" ||
		strings.TrimSpace(patient.Address) == "" ||
		strings.TrimSpace(patient.PrimaryContact) == "" {
		return ErrMissingRequiredField
	}
	if !entity.ValidGender(patient.Gender) {
		return ErrInvalidGender
	}
	if !entity.ValidIDType(patient.IDType) {
		return ErrInvalidIDType
	}
	if !patient.ValidIDNumber() {
		return ErrInvalidIDNumber
	}

	dob, err := time.Parse("2006-01-02", patient.DateOfBirth)
	if err != nil {
		return ErrInvalidDateFormat
	}
	if !dob.Before(time.Now()) {
		return ErrDateOfBirthInFuture
	}
	return nil
}
