package entity

// Grid configuration for the daily scheduling grid. Shared read-only state:
// every (date, time slot, category) cell holds at most SlotCapacity
// appointments.

// SlotCapacity is the maximum number of appointments per grid cell
const SlotCapacity = 4

// ServiceCategories is the ordered list of service categories offered
var ServiceCategories = []string{
	"General Checkup",
	"Vaccination",
	"Prenatal",
	"HIV Treatment",
	"TB Screening",
	"Child Health",
}

// TimeSlots is the ordered list of daily slots (hourly, 8 AM to 4 PM)
var TimeSlots = []string{
	"08:00", "09:00", "10:00", "11:00",
	"12:00", "13:00", "14:00", "15:00",
}

// ValidCategory reports whether the category is part of the grid
func ValidCategory(category string) bool {
	for _, c := range ServiceCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ValidTimeSlot reports whether the time slot is part of the grid
func ValidTimeSlot(timeSlot string) bool {
	for _, t := range TimeSlots {
		if t == timeSlot {
			return true
		}
	}
	return false
}
