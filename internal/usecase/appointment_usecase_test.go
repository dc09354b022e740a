package usecase

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-outreach-service/internal/delivery/dto"
	"clinic-outreach-service/internal/domain/entity"
	"clinic-outreach-service/internal/infrastructure/storage"
	"clinic-outreach-service/internal/repository"
	"clinic-outreach-service/internal/service"
)

type fixture struct {
	patients     PatientUsecase
	appointments AppointmentUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	patientRepo := repository.NewPatientRepository(store)
	require.NoError(t, patientRepo.Load())
	appointmentRepo := repository.NewAppointmentRepository(store)
	require.NoError(t, appointmentRepo.Load())

	slotIndex := service.NewSlotIndex(appointmentRepo)
	checker := service.NewAvailabilityChecker(slotIndex)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return &fixture{
		patients:     NewPatientUsecase(log, patientRepo),
		appointments: NewAppointmentUsecase(log, appointmentRepo, patientRepo, slotIndex, checker),
	}
}

func (f *fixture) createPatient(t *testing.T, firstName, surname string) *dto.PatientResponse {
	t.Helper()
	patient, err := f.patients.CreatePatient(context.Background(), &dto.CreatePatientRequest{
		FirstName:      firstName,
		Surname:        surname,
		Gender:         "Female",
		DateOfBirth:    "1990-06-15",
		IDType:         "National ID",
		IDNumber:       "9006150000000",
		Address:        "12 Main Rd",
		PrimaryContact: "0821234567",
	})
	require.NoError(t, err)
	return patient
}

func (f *fixture) book(t *testing.T, patientID, date, timeSlot, category string) *dto.AppointmentResponse {
	t.Helper()
	appointment, err := f.appointments.CreateAppointment(context.Background(), &dto.CreateAppointmentRequest{
		Date:      date,
		TimeSlot:  timeSlot,
		Category:  category,
		PatientID: patientID,
	})
	require.NoError(t, err)
	return appointment
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)
	patient := f.createPatient(t, "Naledi", "Khumalo")

	got := f.book(t, patient.ID, "2025-03-10", "09:00", "Vaccination")

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, patient.ID, got.PatientID)
	assert.Equal(t, "Naledi Khumalo", got.PatientName)
	assert.Equal(t, "Vaccination", got.Category)
}

func TestCreateAppointmentUnknownPatient(t *testing.T) {
	f := newFixture(t)

	_, err := f.appointments.CreateAppointment(context.Background(), &dto.CreateAppointmentRequest{
		Date:      "2025-03-10",
		TimeSlot:  "09:00",
		Category:  "Vaccination",
		PatientID: "missing",
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestCreateAppointmentInvalidCell(t *testing.T) {
	f := newFixture(t)
	patient := f.createPatient(t, "Naledi", "Khumalo")

	tests := []struct {
		name     string
		date     string
		timeSlot string
		category string
		want     error
	}{
		{"bad date", "10-03-2025", "09:00", "Vaccination", ErrInvalidDateFormat},
		{"unknown slot", "2025-03-10", "07:30", "Vaccination", ErrInvalidTimeSlot},
		{"after hours", "2025-03-10", "16:00", "Vaccination", ErrInvalidTimeSlot},
		{"unknown category", "2025-03-10", "09:00", "Dentistry", ErrInvalidCategory},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.appointments.CreateAppointment(context.Background(), &dto.CreateAppointmentRequest{
				Date:      tc.date,
				TimeSlot:  tc.timeSlot,
				Category:  tc.category,
				PatientID: patient.ID,
			})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateAppointmentFullCellRejected(t *testing.T) {
	f := newFixture(t)
	patient := f.createPatient(t, "Naledi", "Khumalo")

	for i := 0; i < entity.SlotCapacity; i++ {
		f.book(t, patient.ID, "2025-03-10", "09:00", "Vaccination")
	}

	_, err := f.appointments.CreateAppointment(context.Background(), &dto.CreateAppointmentRequest{
		Date:      "2025-03-10",
		TimeSlot:  "09:00",
		Category:  "Vaccination",
		PatientID: patient.ID,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// The neighbouring cells still accept bookings
	f.book(t, patient.ID, "2025-03-10", "10:00", "Vaccination")
	f.book(t, patient.ID, "2025-03-10", "09:00", "Prenatal")
}

func TestUpdateAppointmentMoveToFullCellRejected(t *testing.T) {
	f := newFixture(t)
	patient := f.createPatient(t, "Naledi", "Khumalo")

	for i := 0; i < entity.SlotCapacity; i++ {
		f.book(t, patient.ID, "2025-03-10", "09:00", "Vaccination")
	}
	moving := f.book(t, patient.ID, "2025-03-10", "10:00", "Vaccination")

	slot := "09:00"
	_, err := f.appointments.UpdateAppointment(context.Background(), moving.ID, &dto.UpdateAppointmentRequest{
		TimeSlot: &slot,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// The record stays in its original cell
	got, err := f.appointments.GetAppointment(context.Background(), moving.ID)
	require.NoError(t, err)
	assert.Equal(t, "10:00", got.TimeSlot)
}

func TestUpdateAppointmentInFullCellWithoutMoving(t *testing.T) {
	f := newFixture(t)
	patient := f.createPatient(t, "Naledi", "Khumalo")

	var last *dto.AppointmentResponse
	for i := 0; i < entity.SlotCapacity; i++ {
		last = f.book(t, patient.ID, "2025-03-10", "09:00", "Vaccination")
	}

	// Editing notes does not move the appointment, so the full cell is fine
	notes := "follow-up dose"
	got, err := f.appointments.UpdateAppointment(context.Background(), last.ID, &dto.UpdateAppointmentRequest{
		Notes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, "follow-up dose", got.Notes)
	assert.Equal(t, "09:00", got.TimeSlot)
}

func TestUpdateAppointmentRepointsPatient(t *testing.T) {
	f := newFixture(t)
	first := f.createPatient(t, "Naledi", "Khumalo")
	second := f.createPatient(t, "Sipho", "Dlamini")

	appointment := f.book(t, first.ID, "2025-03-10", "09:00", "Vaccination")

	got, err := f.appointments.UpdateAppointment(context.Background(), appointment.ID, &dto.UpdateAppointmentRequest{
		PatientID: &second.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.PatientID)
	assert.Equal(t, "Sipho Dlamini", got.PatientName)
}

func TestUpdateAppointmentUnknownID(t *testing.T) {
	f := newFixture(t)

	notes := "x"
	_, err := f.appointments.UpdateAppointment(context.Background(), "missing", &dto.UpdateAppointmentRequest{
		Notes: &notes,
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestDeleteAppointment(t *testing.T) {
	f := newFixture(t)
	patient := f.createPatient(t, "Naledi", "Khumalo")
	appointment := f.book(t, patient.ID, "2025-03-10", "09:00", "Vaccination")

	require.NoError(t, f.appointments.DeleteAppointment(context.Background(), appointment.ID))

	_, err := f.appointments.GetAppointment(context.Background(), appointment.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	assert.ErrorIs(t, f.appointments.DeleteAppointment(context.Background(), appointment.ID), ErrAppointmentNotFound)
}

func TestListAppointmentsByDate(t *testing.T) {
	f := newFixture(t)
	patient := f.createPatient(t, "Naledi", "Khumalo")
	f.book(t, patient.ID, "2025-03-10", "09:00", "Vaccination")
	f.book(t, patient.ID, "2025-03-10", "10:00", "Vaccination")
	f.book(t, patient.ID, "2025-03-11", "09:00", "Prenatal")

	all, err := f.appointments.ListAppointments(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	day, err := f.appointments.ListAppointments(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 2, day.Total)

	_, err = f.appointments.ListAppointments(context.Background(), "not-a-date")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t)
	patient := f.createPatient(t, "Naledi", "Khumalo")
	f.book(t, patient.ID, "2025-03-10", "09:00", "Vaccination")

	got, err := f.appointments.CheckAvailability(context.Background(), "2025-03-10", "09:00", "Vaccination")
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Equal(t, entity.SlotCapacity-1, got.Remaining)
	assert.Equal(t, entity.SlotCapacity, got.Capacity)

	_, err = f.appointments.CheckAvailability(context.Background(), "2025-03-10", "09:15", "Vaccination")
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestGetDayGrid(t *testing.T) {
	f := newFixture(t)
	patient := f.createPatient(t, "Naledi", "Khumalo")
	f.book(t, patient.ID, "2025-03-10", "09:00", "Vaccination")

	grid, err := f.appointments.GetDayGrid(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", grid.Date)
	assert.Equal(t, entity.TimeSlots, grid.TimeSlots)
	assert.Equal(t, entity.ServiceCategories, grid.Categories)
	require.Len(t, grid.Cells, len(entity.TimeSlots)*len(entity.ServiceCategories))

	_, err = f.appointments.GetDayGrid(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
