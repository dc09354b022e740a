package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-outreach-service/internal/delivery/dto"
)

func validCreatePatientRequest() *dto.CreatePatientRequest {
	return &dto.CreatePatientRequest{
		FirstName:      "Naledi",
		Surname:        "Khumalo",
		Gender:         "Female",
		DateOfBirth:    "1990-06-15",
		IDType:         "National ID",
		IDNumber:       "9006150000000",
		Address:        "12 Main Rd",
		PrimaryContact: "0821234567",
	}
}

func TestCreatePatient(t *testing.T) {
	f := newFixture(t)

	got, err := f.patients.CreatePatient(context.Background(), validCreatePatientRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Naledi", got.FirstName)
	assert.Equal(t, "Khumalo", got.Surname)
}

func TestCreatePatientValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*dto.CreatePatientRequest)
		want   error
	}{
		{"unknown gender", func(r *dto.CreatePatientRequest) { r.Gender = "Unknown" }, ErrInvalidGender},
		{"unknown id type", func(r *dto.CreatePatientRequest) { r.IDType = "Drivers Licence" }, ErrInvalidIDType},
		{"national id too short", func(r *dto.CreatePatientRequest) { r.IDNumber = "12345" }, ErrInvalidIDNumber},
		{"national id with letters", func(r *dto.CreatePatientRequest) { r.IDNumber = "90061500A0000" }, ErrInvalidIDNumber},
		{"passport too short", func(r *dto.CreatePatientRequest) {
			r.IDType = "Passport"
			r.IDNumber = "AB12"
		}, ErrInvalidIDNumber},
		{"dob in the future", func(r *dto.CreatePatientRequest) { r.DateOfBirth = "2099-01-01" }, ErrDateOfBirthInFuture},
		{"dob malformed", func(r *dto.CreatePatientRequest) { r.DateOfBirth = "15/06/1990" }, ErrInvalidDateFormat},
		{"blank first name", func(r *dto.CreatePatientRequest) { r.FirstName = "   " }, ErrMissingRequiredField},
		{"empty address", func(r *dto.CreatePatientRequest) { r.Address = "" }, ErrMissingRequiredField},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreatePatientRequest()
			tc.mutate(req)
			_, err := f.patients.CreatePatient(context.Background(), req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreatePatientPassport(t *testing.T) {
	f := newFixture(t)

	req := validCreatePatientRequest()
	req.IDType = "Passport"
	req.IDNumber = "AB1234"

	got, err := f.patients.CreatePatient(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Passport", got.IDType)
}

func TestUpdatePatientRevalidatesMergedRecord(t *testing.T) {
	f := newFixture(t)

	req := validCreatePatientRequest()
	req.IDType = "Passport"
	req.IDNumber = "AB1234"
	created, err := f.patients.CreatePatient(context.Background(), req)
	require.NoError(t, err)

	// Switching to National ID while keeping the passport number must fail:
	// the merged record is validated as a whole.
	idType := "National ID"
	_, err = f.patients.UpdatePatient(context.Background(), created.ID, &dto.UpdatePatientRequest{
		IDType: &idType,
	})
	assert.ErrorIs(t, err, ErrInvalidIDNumber)

	// The stored record is untouched
	got, err := f.patients.GetPatient(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Passport", got.IDType)
	assert.Equal(t, "AB1234", got.IDNumber)
}

func TestUpdatePatientRejectsEmptyRequiredFields(t *testing.T) {
	f := newFixture(t)
	created := f.createPatient(t, "Naledi", "Khumalo")

	empty := ""
	_, err := f.patients.UpdatePatient(context.Background(), created.ID, &dto.UpdatePatientRequest{
		FirstName: &empty,
		Surname:   &empty,
		Address:   &empty,
	})
	assert.ErrorIs(t, err, ErrMissingRequiredField)

	// The stored record is untouched
	got, err := f.patients.GetPatient(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Naledi", got.FirstName)
	assert.Equal(t, "Khumalo", got.Surname)
	assert.NotEmpty(t, got.Address)
}

func TestUpdatePatientPartial(t *testing.T) {
	f := newFixture(t)
	created := f.createPatient(t, "Naledi", "Khumalo")

	surname := "Mokoena"
	got, err := f.patients.UpdatePatient(context.Background(), created.ID, &dto.UpdatePatientRequest{
		Surname: &surname,
	})
	require.NoError(t, err)
	assert.Equal(t, "Naledi", got.FirstName)
	assert.Equal(t, "Mokoena", got.Surname)
}

func TestUpdatePatientUnknownID(t *testing.T) {
	f := newFixture(t)

	surname := "Mokoena"
	_, err := f.patients.UpdatePatient(context.Background(), "missing", &dto.UpdatePatientRequest{
		Surname: &surname,
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestDeletePatientLeavesAppointmentsIntact(t *testing.T) {
	f := newFixture(t)
	patient := f.createPatient(t, "Naledi", "Khumalo")
	appointment := f.book(t, patient.ID, "2025-03-10", "09:00", "Vaccination")

	require.NoError(t, f.patients.DeletePatient(context.Background(), patient.ID))

	// The appointment survives with its name snapshot and dangling patient id
	got, err := f.appointments.GetAppointment(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, patient.ID, got.PatientID)
	assert.Equal(t, "Naledi Khumalo", got.PatientName)

	assert.Equal(t, UnknownPatientName, f.patients.ResolveDisplayName(patient.ID))
}

func TestDeletePatientUnknownID(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.patients.DeletePatient(context.Background(), "missing"), ErrPatientNotFound)
}

func TestResolveDisplayName(t *testing.T) {
	f := newFixture(t)
	patient := f.createPatient(t, "Sipho", "Dlamini")

	assert.Equal(t, "Sipho Dlamini", f.patients.ResolveDisplayName(patient.ID))
	assert.Equal(t, UnknownPatientName, f.patients.ResolveDisplayName("missing"))
}

func TestListAndResetPatients(t *testing.T) {
	f := newFixture(t)
	f.createPatient(t, "Naledi", "Khumalo")
	f.createPatient(t, "Sipho", "Dlamini")

	list, err := f.patients.ListPatients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	require.Len(t, list.Patients, 2)
	assert.Equal(t, "Naledi", list.Patients[0].FirstName)

	require.NoError(t, f.patients.ResetPatients(context.Background()))

	list, err = f.patients.ListPatients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
}
