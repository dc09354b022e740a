package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"clinic-outreach-service/internal/converter"
	"clinic-outreach-service/internal/delivery/dto"
	"clinic-outreach-service/internal/domain/entity"
	"clinic-outreach-service/internal/domain/repository"
	"clinic-outreach-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotUnavailable     = errors.New("time slot is already full")
	ErrInvalidTimeSlot     = errors.New("unknown time slot")
	ErrInvalidCategory     = errors.New("unknown service category")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, date string) (*dto.AppointmentListResponse, error)
	UpdateAppointment(ctx context.Context, id string, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id string) error
	ResetAppointments(ctx context.Context) error
	GetDayGrid(ctx context.Context, date string) (*dto.DayGridResponse, error)
	CheckAvailability(ctx context.Context, date, timeSlot, category string) (*dto.AvailabilityResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	slotIndex       *service.SlotIndex
	checker         *service.AvailabilityChecker

	// bookMu serializes every capacity check with the mutation it gates, so
	// two submissions for the last place in a cell cannot interleave.
	bookMu sync.Mutex
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	slotIndex *service.SlotIndex,
	checker *service.AvailabilityChecker,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		slotIndex:       slotIndex,
		checker:         checker,
	}
}

// CreateAppointment books a new appointment.
//
// Flow:
// 1. Validate the cell coordinates against the grid configuration
// 2. Resolve the patient and snapshot the display name
// 3. Re-check availability and insert as one step under the booking lock
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := validateCell(req.Date, req.TimeSlot, req.Category); err != nil {
		return nil, err
	}

	patient := u.patientRepo.FindByID(req.PatientID)
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	u.bookMu.Lock()
	defer u.bookMu.Unlock()

	if !u.checker.IsAvailable(req.Date, req.TimeSlot, req.Category) {
		return nil, ErrSlotUnavailable
	}

	appointment := &entity.Appointment{
		ID:          uuid.New().String(),
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
		Category:    req.Category,
		PatientID:   patient.ID,
		PatientName: patient.DisplayName(),
		Notes:       req.Notes,
		CreatedAt:   time.Now(),
	}

	if err := u.appointmentRepo.Add(appointment); err != nil {
		u.log.Warnf("Failed to persist appointment %s: %+v", appointment.ID, err)
		return nil, err
	}

	u.log.Infof("Appointment created: id=%s, cell=(%s,%s,%s)",
		appointment.ID, req.Date, req.TimeSlot, req.Category)
	return converter.AppointmentToResponse(appointment, time.Now()), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	appointment := u.appointmentRepo.FindByID(id)
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment, time.Now()), nil
}

// ListAppointments returns all appointments, or only those on the given
// date when one is supplied.
func (u *appointmentUsecase) ListAppointments(ctx context.Context, date string) (*dto.AppointmentListResponse, error) {
	var appointments []entity.Appointment
	if date != "" {
		if err := validateDate(date); err != nil {
			return nil, err
		}
		appointments = u.appointmentRepo.FindByDate(date)
	} else {
		appointments = u.appointmentRepo.FindAll()
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, time.Now()),
		Total:        len(appointments),
	}, nil
}

// UpdateAppointment merges the given fields into the record. Moving the
// appointment to another cell re-runs the capacity check against the target
// cell, ignoring the appointment itself.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id string, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	existing := u.appointmentRepo.FindByID(id)
	if existing == nil {
		return nil, ErrAppointmentNotFound
	}

	patch := entity.AppointmentPatch{
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		Category: req.Category,
		Notes:    req.Notes,
	}

	// Re-pointing at another patient refreshes the name snapshot
	if req.PatientID != nil {
		patient := u.patientRepo.FindByID(*req.PatientID)
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		patch.PatientID = req.PatientID
		name := patient.DisplayName()
		patch.PatientName = &name
	}

	merged := *existing
	patch.Apply(&merged)
	if err := validateCell(merged.Date, merged.TimeSlot, merged.Category); err != nil {
		return nil, err
	}

	u.bookMu.Lock()
	defer u.bookMu.Unlock()

	if patch.MovesCell() {
		if u.occupancyExcluding(merged.Date, merged.TimeSlot, merged.Category, id) >= entity.SlotCapacity {
			return nil, ErrSlotUnavailable
		}
	}

	if err := u.appointmentRepo.Update(id, patch); err != nil {
		u.log.Warnf("Failed to persist appointment update %s: %+v", id, err)
		return nil, err
	}

	return converter.AppointmentToResponse(&merged, time.Now()), nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id string) error {
	if u.appointmentRepo.FindByID(id) == nil {
		return ErrAppointmentNotFound
	}

	if err := u.appointmentRepo.Remove(id); err != nil {
		u.log.Warnf("Failed to persist appointment removal %s: %+v", id, err)
		return err
	}

	u.log.Infof("Appointment deleted: id=%s", id)
	return nil
}

func (u *appointmentUsecase) ResetAppointments(ctx context.Context) error {
	if err := u.appointmentRepo.Reset(); err != nil {
		u.log.Warnf("Failed to reset appointments: %+v", err)
		return err
	}
	u.log.Info("Appointment collection wiped")
	return nil
}

func (u *appointmentUsecase) GetDayGrid(ctx context.Context, date string) (*dto.DayGridResponse, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	return converter.SlotCellsToGridResponse(date, u.slotIndex.DayGrid(date), time.Now()), nil
}

func (u *appointmentUsecase) CheckAvailability(ctx context.Context, date, timeSlot, category string) (*dto.AvailabilityResponse, error) {
	if err := validateCell(date, timeSlot, category); err != nil {
		return nil, err
	}

	return &dto.AvailabilityResponse{
		Date:      date,
		TimeSlot:  timeSlot,
		Category:  category,
		Available: u.checker.IsAvailable(date, timeSlot, category),
		Remaining: u.slotIndex.RemainingCapacity(date, timeSlot, category),
		Capacity:  entity.SlotCapacity,
	}, nil
}

// occupancyExcluding counts the cell's occupants, ignoring one appointment.
// Used when an edit moves a booking into another cell.
func (u *appointmentUsecase) occupancyExcluding(date, timeSlot, category, excludeID string) int {
	count := 0
	for _, a := range u.slotIndex.Occupancy(date, timeSlot, category) {
		if a.ID != excludeID {
			count++
		}
	}
	return count
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDateFormat
	}
	return nil
}

func validateCell(date, timeSlot, category string) error {
	if err := validateDate(date); err != nil {
		return err
	}
	if !entity.ValidTimeSlot(timeSlot) {
		return ErrInvalidTimeSlot
	}
	if !entity.ValidCategory(category) {
		return ErrInvalidCategory
	}
	return nil
}
