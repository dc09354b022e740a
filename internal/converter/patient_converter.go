package converter

import (
	"clinic-outreach-service/internal/delivery/dto"
	"clinic-outreach-service/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to a PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:               patient.ID,
		FirstName:        patient.FirstName,
		Surname:          patient.Surname,
		Gender:           string(patient.Gender),
		DateOfBirth:      patient.DateOfBirth,
		IDType:           string(patient.IDType),
		IDNumber:         patient.IDNumber,
		Address:          patient.Address,
		PrimaryContact:   patient.PrimaryContact,
		SecondaryContact: patient.SecondaryContact,
		CreatedAt:        patient.CreatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i, patient := range patients {
		resp := PatientToResponse(&patient)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
