package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airline-ops/schedule-search-service/internal/domain"
	"github.com/airline-ops/schedule-search-service/test/mock"
)

func TestAvailability_Check_SingleLeg(t *testing.T) {
	repo := mock.NewLegRepository().WithLegs(
		catalogLeg(1, "SU-100", "AAA", "CCC", 9, 240, "5000"),
	)
	inventory := mock.NewSeatInventory().
		WithAircraft(1, 10).
		WithBooked(1, 7)
	uc := NewAvailability(repo, inventory)

	available, err := uc.Check(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.True(t, available)

	available, err = uc.Check(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.False(t, available)
}

func TestAvailability_Check_InvalidPassengerCount(t *testing.T) {
	repo := mock.NewLegRepository()
	uc := NewAvailability(repo, mock.NewSeatInventory())

	for _, count := range []int{0, -1} {
		_, err := uc.Check(context.Background(), 1, count)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	}
	assert.Empty(t, repo.Calls(), "invalid passenger count must fail before any lookup")
}

func TestAvailability_Check_ScheduleNotFound(t *testing.T) {
	uc := NewAvailability(mock.NewLegRepository(), mock.NewSeatInventory())

	_, err := uc.Check(context.Background(), 42, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAvailability_CheckItinerary_BottleneckedByNarrowestLeg(t *testing.T) {
	// Leg A has 5 free seats (10 - 5), leg B has 2 (5 - 3). The itinerary
	// seats min(5, 2) = 2 passengers.
	legA := catalogLeg(1, "SU-100", "AAA", "BBB", 8, 120, "1000")
	legB := catalogLeg(2, "SU-200", "BBB", "CCC", 11, 180, "2000")
	legB.AircraftID = 2

	repo := mock.NewLegRepository().WithLegs(legA, legB)
	inventory := mock.NewSeatInventory().
		WithAircraft(1, 10).WithBooked(1, 5).
		WithAircraft(2, 5).WithBooked(2, 3)
	uc := NewAvailability(repo, inventory)

	itinerary := domain.NewDirectItinerary(legA).Extend(legB)

	available, err := uc.CheckItinerary(context.Background(), itinerary, 3)
	require.NoError(t, err)
	assert.False(t, available, "leg B only has 2 free seats")

	available, err = uc.CheckItinerary(context.Background(), itinerary, 2)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestAvailability_CheckItinerary_UnresolvableLeg(t *testing.T) {
	legA := catalogLeg(1, "SU-100", "AAA", "BBB", 8, 120, "1000")
	legB := catalogLeg(2, "SU-200", "BBB", "CCC", 11, 180, "2000")

	// Only leg A still resolves against the current schedule.
	repo := mock.NewLegRepository().WithLegs(legA)
	inventory := mock.NewSeatInventory().WithAircraft(1, 10)
	uc := NewAvailability(repo, inventory)

	itinerary := domain.NewDirectItinerary(legA).Extend(legB)

	_, err := uc.CheckItinerary(context.Background(), itinerary, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "SU-200")
}

func TestAvailability_CheckItinerary_InvalidPassengerCount(t *testing.T) {
	uc := NewAvailability(mock.NewLegRepository(), mock.NewSeatInventory())

	_, err := uc.CheckItinerary(context.Background(), domain.Itinerary{}, 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
