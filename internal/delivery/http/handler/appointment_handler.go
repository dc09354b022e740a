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

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req)
	if err != nil {
		writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	appointments, err := h.appointmentUsecase.ListAppointments(r.Context(), date)
	if err != nil {
		writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), vars["id"])
	if err != nil {
		if err == usecase.ErrAppointmentNotFound {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	appointment, err := h.appointmentUsecase.UpdateAppointment(r.Context(), vars["id"], &req)
	if err != nil {
		writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.appointmentUsecase.DeleteAppointment(r.Context(), vars["id"]); err != nil {
		if err == usecase.ErrAppointmentNotFound {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *AppointmentHandler) ResetAppointments(w http.ResponseWriter, r *http.Request) {
	if err := h.appointmentUsecase.ResetAppointments(r.Context()); err != nil {
		response.InternalServerError(w, "Failed to reset appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointment data wiped successfully", nil)
}

func writeAppointmentError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrSlotUnavailable:
		response.Error(w, http.StatusConflict, "This time slot is already full. Please select another time or category.", nil)
	case usecase.ErrInvalidDateFormat,
		usecase.ErrInvalidTimeSlot,
		usecase.ErrInvalidCategory:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, "Failed to save appointment")
	}
}
