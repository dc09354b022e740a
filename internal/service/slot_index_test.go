package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-outreach-service/internal/domain/entity"
	domainRepo "clinic-outreach-service/internal/domain/repository"
	"clinic-outreach-service/internal/infrastructure/storage"
	repoimpl "clinic-outreach-service/internal/repository"
)

func newTestRepo(t *testing.T) domainRepo.AppointmentRepository {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	repo := repoimpl.NewAppointmentRepository(store)
	require.NoError(t, repo.Load())
	return repo
}

func addN(t *testing.T, repo domainRepo.AppointmentRepository, n int, date, timeSlot, category string) {
	t.Helper()
	for i := 0; i < n; i++ {
		a := entity.Appointment{
			ID:          fmt.Sprintf("%s-%s-%s-%d", date, timeSlot, category, i),
			Date:        date,
			TimeSlot:    timeSlot,
			Category:    category,
			PatientID:   fmt.Sprintf("patient-%d", i),
			PatientName: fmt.Sprintf("Patient %d", i),
		}
		require.NoError(t, repo.Add(&a))
	}
}

func TestOccupancyFiltersByCell(t *testing.T) {
	repo := newTestRepo(t)
	idx := NewSlotIndex(repo)

	addN(t, repo, 2, "2025-03-10", "09:00", "Vaccination")
	addN(t, repo, 1, "2025-03-10", "09:00", "Prenatal")
	addN(t, repo, 1, "2025-03-10", "10:00", "Vaccination")
	addN(t, repo, 1, "2025-03-11", "09:00", "Vaccination")

	occ := idx.Occupancy("2025-03-10", "09:00", "Vaccination")
	require.Len(t, occ, 2)
	assert.Equal(t, "2025-03-10-09:00-Vaccination-0", occ[0].ID)
	assert.Equal(t, "2025-03-10-09:00-Vaccination-1", occ[1].ID)

	assert.Empty(t, idx.Occupancy("2025-03-12", "09:00", "Vaccination"))
}

func TestRemainingCapacity(t *testing.T) {
	repo := newTestRepo(t)
	idx := NewSlotIndex(repo)

	assert.Equal(t, entity.SlotCapacity, idx.RemainingCapacity("2025-03-10", "09:00", "Vaccination"))

	addN(t, repo, 3, "2025-03-10", "09:00", "Vaccination")
	assert.Equal(t, 1, idx.RemainingCapacity("2025-03-10", "09:00", "Vaccination"))

	addN(t, repo, 1, "2025-03-10", "09:00", "Vaccination")
	assert.Equal(t, 0, idx.RemainingCapacity("2025-03-10", "09:00", "Vaccination"))
}

func TestRemainingCapacityClampsAtZero(t *testing.T) {
	repo := newTestRepo(t)
	idx := NewSlotIndex(repo)

	// A fifth record can only exist by writing to the repository directly,
	// bypassing the booking gate. The index must still not report a negative
	// remainder.
	addN(t, repo, entity.SlotCapacity+1, "2025-03-10", "09:00", "Vaccination")
	assert.Equal(t, 0, idx.RemainingCapacity("2025-03-10", "09:00", "Vaccination"))
}

func TestOccupancyReadsAreIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	idx := NewSlotIndex(repo)

	addN(t, repo, 2, "2025-03-10", "09:00", "Vaccination")

	first := idx.Occupancy("2025-03-10", "09:00", "Vaccination")
	second := idx.Occupancy("2025-03-10", "09:00", "Vaccination")
	assert.Equal(t, first, second)
}

func TestOccupancyReflectsRemoval(t *testing.T) {
	repo := newTestRepo(t)
	idx := NewSlotIndex(repo)

	addN(t, repo, entity.SlotCapacity, "2025-03-10", "09:00", "Vaccination")
	assert.Equal(t, 0, idx.RemainingCapacity("2025-03-10", "09:00", "Vaccination"))

	require.NoError(t, repo.Remove("2025-03-10-09:00-Vaccination-2"))
	assert.Equal(t, 1, idx.RemainingCapacity("2025-03-10", "09:00", "Vaccination"))

	occ := idx.Occupancy("2025-03-10", "09:00", "Vaccination")
	require.Len(t, occ, entity.SlotCapacity-1)
	for _, a := range occ {
		assert.NotEqual(t, "2025-03-10-09:00-Vaccination-2", a.ID)
	}
}

func TestDayGridDimensions(t *testing.T) {
	repo := newTestRepo(t)
	idx := NewSlotIndex(repo)

	addN(t, repo, 2, "2025-03-10", "09:00", "Vaccination")

	cells := idx.DayGrid("2025-03-10")
	require.Len(t, cells, len(entity.TimeSlots)*len(entity.ServiceCategories))

	// First cell is the first slot and first category
	assert.Equal(t, entity.TimeSlots[0], cells[0].TimeSlot)
	assert.Equal(t, entity.ServiceCategories[0], cells[0].Category)

	occupied := 0
	for _, cell := range cells {
		require.NotNil(t, cell.Appointments)
		if cell.TimeSlot == "09:00" && cell.Category == "Vaccination" {
			assert.Len(t, cell.Appointments, 2)
			assert.Equal(t, entity.SlotCapacity-2, cell.Remaining)
			occupied++
		} else {
			assert.Empty(t, cell.Appointments)
			assert.Equal(t, entity.SlotCapacity, cell.Remaining)
		}
	}
	assert.Equal(t, 1, occupied)
}

func TestAvailabilityChecker(t *testing.T) {
	repo := newTestRepo(t)
	idx := NewSlotIndex(repo)
	checker := NewAvailabilityChecker(idx)

	assert.True(t, checker.IsAvailable("2025-03-10", "09:00", "Vaccination"))

	addN(t, repo, entity.SlotCapacity-1, "2025-03-10", "09:00", "Vaccination")
	assert.True(t, checker.IsAvailable("2025-03-10", "09:00", "Vaccination"))

	addN(t, repo, 1, "2025-03-10", "09:00", "Vaccination")
	assert.False(t, checker.IsAvailable("2025-03-10", "09:00", "Vaccination"))

	// Other cells are unaffected by a full neighbour
	assert.True(t, checker.IsAvailable("2025-03-10", "10:00", "Vaccination"))
	assert.True(t, checker.IsAvailable("2025-03-10", "09:00", "Prenatal"))
}
