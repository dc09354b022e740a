package converter

import (
	"time"

	"clinic-outreach-service/internal/delivery/dto"
	"clinic-outreach-service/internal/domain/entity"
	"clinic-outreach-service/internal/service"
)

// AppointmentToResponse converts an Appointment entity to a DTO. The status
// field is derived from the given instant, never read from storage.
func AppointmentToResponse(appointment *entity.Appointment, now time.Time) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          appointment.ID,
		Date:        appointment.Date,
		TimeSlot:    appointment.TimeSlot,
		Category:    appointment.Category,
		PatientID:   appointment.PatientID,
		PatientName: appointment.PatientName,
		Notes:       appointment.Notes,
		Status:      string(appointment.StatusAt(now)),
		CreatedAt:   appointment.CreatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment, now time.Time) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment, now)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// SlotCellsToGridResponse converts a day's slot cells to the grid DTO
func SlotCellsToGridResponse(date string, cells []service.SlotCell, now time.Time) *dto.DayGridResponse {
	cellResponses := make([]dto.SlotCellResponse, len(cells))
	for i, cell := range cells {
		cellResponses[i] = dto.SlotCellResponse{
			TimeSlot:     cell.TimeSlot,
			Category:     cell.Category,
			Appointments: AppointmentsToResponses(cell.Appointments, now),
			Remaining:    cell.Remaining,
			Capacity:     entity.SlotCapacity,
		}
	}

	return &dto.DayGridResponse{
		Date:       date,
		TimeSlots:  entity.TimeSlots,
		Categories: entity.ServiceCategories,
		Cells:      cellResponses,
	}
}
