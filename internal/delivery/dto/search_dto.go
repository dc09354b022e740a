package dto

// SearchRequest is built by the handler from query parameters
type SearchRequest struct {
	Query      string
	Type       string // all | patients | appointments
	StartDate  string // YYYY-MM-DD, optional
	EndDate    string // YYYY-MM-DD, optional
	Categories []string
}

type SearchResponse struct {
	Patients     []PatientResponse     `json:"patients"`
	Appointments []AppointmentResponse `json:"appointments"`
}
