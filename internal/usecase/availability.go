package usecase

import (
	"context"
	"fmt"

	"github.com/airline-ops/schedule-search-service/internal/domain"
)

// AvailabilityUseCase computes seat availability for schedules and
// itineraries.
type AvailabilityUseCase interface {
	// Check reports whether the schedule identified by scheduleID can
	// accommodate passengerCount passengers.
	Check(ctx context.Context, scheduleID int64, passengerCount int) (bool, error)

	// CheckItinerary reports whether every constituent leg of the
	// itinerary can accommodate passengerCount passengers. The narrowest
	// leg bottlenecks the whole itinerary.
	CheckItinerary(ctx context.Context, itinerary domain.Itinerary, passengerCount int) (bool, error)
}

// availability implements AvailabilityUseCase on top of the leg repository
// and the seat inventory reader.
type availability struct {
	repo      domain.LegRepository
	inventory domain.SeatInventory
}

// NewAvailability creates an AvailabilityUseCase.
func NewAvailability(repo domain.LegRepository, inventory domain.SeatInventory) AvailabilityUseCase {
	return &availability{
		repo:      repo,
		inventory: inventory,
	}
}

// Check implements AvailabilityUseCase. The passenger count is validated
// before any lookup occurs.
func (a *availability) Check(ctx context.Context, scheduleID int64, passengerCount int) (bool, error) {
	if passengerCount <= 0 {
		return false, fmt.Errorf("%w: number of passengers must be greater than 0", domain.ErrInvalidRequest)
	}

	legs, err := a.repo.FindLegs(ctx, domain.LegFilter{ID: &scheduleID})
	if err != nil {
		return false, fmt.Errorf("%w: resolve schedule %d: %v", domain.ErrRepository, scheduleID, err)
	}
	if len(legs) == 0 {
		return false, fmt.Errorf("%w: schedule %d", domain.ErrNotFound, scheduleID)
	}

	free, err := a.availableSeats(ctx, legs[0])
	if err != nil {
		return false, err
	}
	return free >= passengerCount, nil
}

// CheckItinerary implements AvailabilityUseCase. Each leg is re-resolved by
// flight number against the current schedule before its availability is
// computed; a leg that no longer resolves fails the whole check with a
// not-found error.
func (a *availability) CheckItinerary(ctx context.Context, itinerary domain.Itinerary, passengerCount int) (bool, error) {
	if passengerCount <= 0 {
		return false, fmt.Errorf("%w: number of passengers must be greater than 0", domain.ErrInvalidRequest)
	}

	for _, flightNumber := range itinerary.FlightNumbers {
		legs, err := a.repo.FindLegs(ctx, domain.LegFilter{FlightNumber: flightNumber})
		if err != nil {
			return false, fmt.Errorf("%w: resolve flight %s: %v", domain.ErrRepository, flightNumber, err)
		}
		if len(legs) == 0 {
			return false, fmt.Errorf("%w: flight leg %s", domain.ErrNotFound, flightNumber)
		}

		free, err := a.availableSeats(ctx, legs[0])
		if err != nil {
			return false, err
		}
		if free < passengerCount {
			return false, nil
		}
	}

	return true, nil
}

// availableSeats is the per-leg capacity: total seats of the serving
// aircraft minus tickets already sold.
func (a *availability) availableSeats(ctx context.Context, leg domain.FlightLeg) (int, error) {
	total, err := a.inventory.AircraftCapacity(ctx, leg.AircraftID)
	if err != nil {
		return 0, fmt.Errorf("%w: aircraft capacity for leg %d: %v", domain.ErrRepository, leg.ID, err)
	}

	booked, err := a.inventory.BookedCount(ctx, leg.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: booked count for leg %d: %v", domain.ErrRepository, leg.ID, err)
	}

	return total - booked, nil
}
