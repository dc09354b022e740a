package service

import (
	"clinic-outreach-service/internal/domain/entity"
	"clinic-outreach-service/internal/domain/repository"
)

// SlotIndex derives per-cell occupancy of the daily scheduling grid from the
// appointment repository. All reads are pure and recomputed from the
// repository's current state on every call; at clinic data volumes a cache
// would only buy stale-view bugs.
type SlotIndex struct {
	appointmentRepo repository.AppointmentRepository
}

func NewSlotIndex(appointmentRepo repository.AppointmentRepository) *SlotIndex {
	return &SlotIndex{appointmentRepo: appointmentRepo}
}

// Occupancy returns the appointments occupying the (date, timeSlot, category)
// cell, oldest booking first (repository insertion order).
func (s *SlotIndex) Occupancy(date, timeSlot, category string) []entity.Appointment {
	out := make([]entity.Appointment, 0)
	for _, a := range s.appointmentRepo.FindByDate(date) {
		if a.TimeSlot == timeSlot && a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// RemainingCapacity returns how many more appointments the cell can take.
// Clamped at zero: occupancy above capacity cannot happen through gated
// bookings, but a negative remainder must never be reported.
func (s *SlotIndex) RemainingCapacity(date, timeSlot, category string) int {
	remaining := entity.SlotCapacity - len(s.Occupancy(date, timeSlot, category))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SlotCell is one (timeSlot, category) cell of a day's grid
type SlotCell struct {
	TimeSlot     string
	Category     string
	Appointments []entity.Appointment
	Remaining    int
}

// DayGrid returns every (timeSlot, category) cell for the date, in grid
// configuration order, with occupants in insertion order.
func (s *SlotIndex) DayGrid(date string) []SlotCell {
	dayAppointments := s.appointmentRepo.FindByDate(date)

	type cellKey struct{ timeSlot, category string }
	buckets := make(map[cellKey][]entity.Appointment)
	for _, a := range dayAppointments {
		key := cellKey{a.TimeSlot, a.Category}
		buckets[key] = append(buckets[key], a)
	}

	cells := make([]SlotCell, 0, len(entity.TimeSlots)*len(entity.ServiceCategories))
	for _, timeSlot := range entity.TimeSlots {
		for _, category := range entity.ServiceCategories {
			occupants := buckets[cellKey{timeSlot, category}]
			if occupants == nil {
				occupants = []entity.Appointment{}
			}
			remaining := entity.SlotCapacity - len(occupants)
			if remaining < 0 {
				remaining = 0
			}
			cells = append(cells, SlotCell{
				TimeSlot:     timeSlot,
				Category:     category,
				Appointments: occupants,
				Remaining:    remaining,
			})
		}
	}
	return cells
}
