package dto

// SlotCellResponse is one (time slot, category) cell of a day's grid
type SlotCellResponse struct {
	TimeSlot     string                `json:"time_slot"`
	Category     string                `json:"category"`
	Appointments []AppointmentResponse `json:"appointments"`
	Remaining    int                   `json:"remaining"`
	Capacity     int                   `json:"capacity"`
}

type DayGridResponse struct {
	Date       string             `json:"date"`
	TimeSlots  []string           `json:"time_slots"`
	Categories []string           `json:"categories"`
	Cells      []SlotCellResponse `json:"cells"`
}

type AvailabilityResponse struct {
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
	Category  string `json:"category"`
	Available bool   `json:"available"`
	Remaining int    `json:"remaining"`
	Capacity  int    `json:"capacity"`
}
