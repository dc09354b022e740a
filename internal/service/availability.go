package service

import (
	"clinic-outreach-service/internal/domain/entity"
)

// AvailabilityChecker is the single gate all booking flows consult before
// inserting into the appointment repository. The result must be re-evaluated
// immediately before the insert, under the same writer lock, never cached
// from an earlier read.
type AvailabilityChecker struct {
	slotIndex *SlotIndex
}

func NewAvailabilityChecker(slotIndex *SlotIndex) *AvailabilityChecker {
	return &AvailabilityChecker{slotIndex: slotIndex}
}

// IsAvailable reports whether a new booking may be placed in the cell.
// Capacity is an exclusive upper bound: a cell holding SlotCapacity
// appointments is full.
func (c *AvailabilityChecker) IsAvailable(date, timeSlot, category string) bool {
	return len(c.slotIndex.Occupancy(date, timeSlot, category)) < entity.SlotCapacity
}
