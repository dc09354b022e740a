package handler

import (
	"net/http"

	"clinic-outreach-service/internal/usecase"
	"clinic-outreach-service/pkg/response"
)

// ScheduleHandler serves the day grid and availability reads used by the
// booking screens
type ScheduleHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
}

func NewScheduleHandler(appointmentUsecase usecase.AppointmentUsecase) *ScheduleHandler {
	return &ScheduleHandler{appointmentUsecase: appointmentUsecase}
}

func (h *ScheduleHandler) GetDayGrid(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	grid, err := h.appointmentUsecase.GetDayGrid(r.Context(), date)
	if err != nil {
		writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule grid retrieved successfully", grid)
}

func (h *ScheduleHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	date := query.Get("date")
	timeSlot := query.Get("time_slot")
	category := query.Get("category")

	if date == "" || timeSlot == "" || category == "" {
		response.Error(w, http.StatusBadRequest, "date, time_slot and category query parameters are required", nil)
		return
	}

	availability, err := h.appointmentUsecase.CheckAvailability(r.Context(), date, timeSlot, category)
	if err != nil {
		writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}
