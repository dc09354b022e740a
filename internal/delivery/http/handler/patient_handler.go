package handler

import (
	"encoding/json"
	"net/http"

	"clinic-outreach-service/internal/delivery/dto"
	"clinic-outreach-service/internal/usecase"
	"clinic-outreach-service/pkg/response"
	"clinic-outreach-service/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.CreatePatient(r.Context(), &req)
	if err != nil {
		writePatientError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Patient added successfully", patient)
}

func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.ListPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	patient, err := h.patientUsecase.GetPatient(r.Context(), vars["id"])
	if err != nil {
		if err == usecase.ErrPatientNotFound {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	patient, err := h.patientUsecase.UpdatePatient(r.Context(), vars["id"], &req)
	if err != nil {
		writePatientError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.patientUsecase.DeletePatient(r.Context(), vars["id"]); err != nil {
		if err == usecase.ErrPatientNotFound {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}

func (h *PatientHandler) ResetPatients(w http.ResponseWriter, r *http.Request) {
	if err := h.patientUsecase.ResetPatients(r.Context()); err != nil {
		response.InternalServerError(w, "Failed to reset patients")
		return
	}

	response.Success(w, http.StatusOK, "Patient data wiped successfully", nil)
}

func writePatientError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrMissingRequiredField,
		usecase.ErrInvalidGender,
		usecase.ErrInvalidIDType,
		usecase.ErrInvalidIDNumber,
		usecase.ErrDateOfBirthInFuture,
		usecase.ErrInvalidDateFormat:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, "Failed to save patient")
	}
}
