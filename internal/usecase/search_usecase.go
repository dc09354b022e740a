package usecase

import (
	"context"
	"strings"
	"time"

	"clinic-outreach-service/internal/converter"
	"clinic-outreach-service/internal/delivery/dto"
	"clinic-outreach-service/internal/domain/entity"
	"clinic-outreach-service/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// Search types
const (
	SearchTypeAll          = "all"
	SearchTypePatients     = "patients"
	SearchTypeAppointments = "appointments"
)

type SearchUsecase interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

type searchUsecase struct {
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
}

func NewSearchUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
) SearchUsecase {
	return &searchUsecase{
		log:             log,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
	}
}

// Search filters patients by name or id number and appointments by patient
// name, with optional date-range and category filters on appointments. An
// empty query returns no results.
func (u *searchUsecase) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return &dto.SearchResponse{
			Patients:     []dto.PatientResponse{},
			Appointments: []dto.AppointmentResponse{},
		}, nil
	}

	searchType := req.Type
	if searchType == "" {
		searchType = SearchTypeAll
	}

	var patients []entity.Patient
	if searchType != SearchTypeAppointments {
		patients = u.filterPatients(query)
	}

	var appointments []entity.Appointment
	if searchType != SearchTypePatients {
		appointments = u.filterAppointments(query, req)
	}

	return &dto.SearchResponse{
		Patients:     converter.PatientsToResponses(patients),
		Appointments: converter.AppointmentsToResponses(appointments, time.Now()),
	}, nil
}

func (u *searchUsecase) filterPatients(query string) []entity.Patient {
	lowered := strings.ToLower(query)

	out := make([]entity.Patient, 0)
	for _, patient := range u.patientRepo.FindAll() {
		nameMatch := strings.Contains(strings.ToLower(patient.DisplayName()), lowered)
		idMatch := strings.Contains(patient.IDNumber, query)
		if nameMatch || idMatch {
			out = append(out, patient)
		}
	}
	return out
}

func (u *searchUsecase) filterAppointments(query string, req *dto.SearchRequest) []entity.Appointment {
	lowered := strings.ToLower(query)

	out := make([]entity.Appointment, 0)
	for _, appointment := range u.appointmentRepo.FindAll() {
		if !strings.Contains(strings.ToLower(appointment.PatientName), lowered) {
			continue
		}

		// Date range applies only when both bounds are set; ISO dates
		// compare correctly as strings
		if req.StartDate != "" && req.EndDate != "" {
			if appointment.Date < req.StartDate || appointment.Date > req.EndDate {
				continue
			}
		}

		if len(req.Categories) > 0 && !containsString(req.Categories, appointment.Category) {
			continue
		}

		out = append(out, appointment)
	}
	return out
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
