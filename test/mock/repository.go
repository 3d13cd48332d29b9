// Package mock provides test doubles for the schedule search system.
// The doubles are configurable in-memory implementations of the domain
// repository interfaces, built for unit and integration tests that need
// a seeded flight catalog, injected errors, or call inspection.
package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/airline-ops/schedule-search-service/internal/domain"
)

// LegRepository is an in-memory implementation of domain.LegRepository.
// It filters a seeded leg catalog the way the real repository would, which
// lets the connection engine run genuine multi-step searches against it.
type LegRepository struct {
	mu    sync.Mutex
	legs  []domain.FlightLeg
	err   error
	calls []domain.LegFilter
}

// NewLegRepository creates an empty repository. Configure it with the
// builder methods.
func NewLegRepository() *LegRepository {
	return &LegRepository{}
}

// WithLegs seeds the repository catalog.
func (r *LegRepository) WithLegs(legs ...domain.FlightLeg) *LegRepository {
	r.legs = append(r.legs, legs...)
	return r
}

// WithError makes every FindLegs call fail with the given error.
func (r *LegRepository) WithError(err error) *LegRepository {
	r.err = err
	return r
}

// Calls returns the filters passed to FindLegs, in order.
func (r *LegRepository) Calls() []domain.LegFilter {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([]domain.LegFilter, len(r.calls))
	copy(calls, r.calls)
	return calls
}

// FindLegs implements domain.LegRepository against the seeded catalog.
func (r *LegRepository) FindLegs(ctx context.Context, filter domain.LegFilter) ([]domain.FlightLeg, error) {
	r.mu.Lock()
	r.calls = append(r.calls, filter)
	err := r.err
	legs := make([]domain.FlightLeg, len(r.legs))
	copy(legs, r.legs)
	r.mu.Unlock()

	if err != nil {
		return nil, err
	}

	var matched []domain.FlightLeg
	for _, leg := range legs {
		if !matches(leg, filter) {
			continue
		}
		matched = append(matched, leg)
	}

	sortLegs(matched, filter.SortBy)
	return matched, nil
}

func matches(leg domain.FlightLeg, f domain.LegFilter) bool {
	if f.ID != nil && leg.ID != *f.ID {
		return false
	}
	if f.DepartureAirport != "" && leg.DepartureAirport != f.DepartureAirport {
		return false
	}
	if f.ArrivalAirport != "" && leg.ArrivalAirport != f.ArrivalAirport {
		return false
	}
	if f.FlightNumber != "" && leg.FlightNumber != f.FlightNumber {
		return false
	}
	if f.DateFrom != nil && leg.DepartureTime.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && !leg.DepartureTime.Before(*f.DateTo) {
		return false
	}
	return true
}

func sortLegs(legs []domain.FlightLeg, by domain.SortOption) {
	switch by {
	case domain.SortByPrice:
		sort.SliceStable(legs, func(i, j int) bool {
			return legs[i].BasePrice.LessThan(legs[j].BasePrice)
		})
	case domain.SortByConfirmed:
		sort.SliceStable(legs, func(i, j int) bool {
			return legs[i].Confirmed && !legs[j].Confirmed
		})
	case domain.SortByDate:
		sort.SliceStable(legs, func(i, j int) bool {
			return legs[i].DepartureTime.Before(legs[j].DepartureTime)
		})
	}
}

// SeatInventory is a configurable in-memory domain.SeatInventory.
type SeatInventory struct {
	capacities map[int64]int
	booked     map[int64]int
	err        error
}

// NewSeatInventory creates an empty inventory.
func NewSeatInventory() *SeatInventory {
	return &SeatInventory{
		capacities: make(map[int64]int),
		booked:     make(map[int64]int),
	}
}

// WithAircraft records the total seat count of an aircraft.
func (s *SeatInventory) WithAircraft(aircraftID int64, totalSeats int) *SeatInventory {
	s.capacities[aircraftID] = totalSeats
	return s
}

// WithBooked records the sold ticket count of a leg.
func (s *SeatInventory) WithBooked(legID int64, count int) *SeatInventory {
	s.booked[legID] = count
	return s
}

// WithError makes every inventory call fail with the given error.
func (s *SeatInventory) WithError(err error) *SeatInventory {
	s.err = err
	return s
}

// AircraftCapacity implements domain.SeatInventory.
func (s *SeatInventory) AircraftCapacity(ctx context.Context, aircraftID int64) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.capacities[aircraftID], nil
}

// BookedCount implements domain.SeatInventory.
func (s *SeatInventory) BookedCount(ctx context.Context, legID int64) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.booked[legID], nil
}

// LegStore is an in-memory domain.LegStore with auto-assigned IDs.
type LegStore struct {
	mu     sync.Mutex
	nextID int64
	legs   map[int64]domain.FlightLeg
	err    error
}

// NewLegStore creates an empty store.
func NewLegStore() *LegStore {
	return &LegStore{
		nextID: 1,
		legs:   make(map[int64]domain.FlightLeg),
	}
}

// WithError makes every store call fail with the given error.
func (s *LegStore) WithError(err error) *LegStore {
	s.err = err
	return s
}

// CreateLeg implements domain.LegStore.
func (s *LegStore) CreateLeg(ctx context.Context, leg domain.FlightLeg) (domain.FlightLeg, error) {
	if s.err != nil {
		return domain.FlightLeg{}, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	leg.ID = s.nextID
	s.nextID++
	s.legs[leg.ID] = leg
	return leg, nil
}

// GetLeg implements domain.LegStore.
func (s *LegStore) GetLeg(ctx context.Context, id int64) (domain.FlightLeg, error) {
	if s.err != nil {
		return domain.FlightLeg{}, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	leg, ok := s.legs[id]
	if !ok {
		return domain.FlightLeg{}, domain.ErrNotFound
	}
	return leg, nil
}

// UpdateLeg implements domain.LegStore.
func (s *LegStore) UpdateLeg(ctx context.Context, leg domain.FlightLeg) (domain.FlightLeg, error) {
	if s.err != nil {
		return domain.FlightLeg{}, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.legs[leg.ID]; !ok {
		return domain.FlightLeg{}, domain.ErrNotFound
	}
	s.legs[leg.ID] = leg
	return leg, nil
}

// SetConfirmed implements domain.LegStore.
func (s *LegStore) SetConfirmed(ctx context.Context, id int64, confirmed bool) (domain.FlightLeg, error) {
	if s.err != nil {
		return domain.FlightLeg{}, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	leg, ok := s.legs[id]
	if !ok {
		return domain.FlightLeg{}, domain.ErrNotFound
	}
	leg.Confirmed = confirmed
	s.legs[id] = leg
	return leg, nil
}

// DeleteLeg implements domain.LegStore.
func (s *LegStore) DeleteLeg(ctx context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.legs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.legs, id)
	return nil
}
