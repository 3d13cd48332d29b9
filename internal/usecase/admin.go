package usecase

import (
	"context"
	"fmt"

	"github.com/airline-ops/schedule-search-service/internal/domain"
)

// ScheduleAdminUseCase covers schedule administration: the write path that
// creates and maintains the legs the search core reads.
type ScheduleAdminUseCase interface {
	Create(ctx context.Context, leg domain.FlightLeg) (domain.FlightLeg, error)
	Get(ctx context.Context, id int64) (domain.FlightLeg, error)
	List(ctx context.Context) ([]domain.FlightLeg, error)
	Update(ctx context.Context, leg domain.FlightLeg) (domain.FlightLeg, error)
	ToggleStatus(ctx context.Context, id int64) (domain.FlightLeg, error)
	Delete(ctx context.Context, id int64) error
}

type scheduleAdmin struct {
	store domain.LegStore
	repo  domain.LegRepository
}

// NewScheduleAdmin creates a ScheduleAdminUseCase.
func NewScheduleAdmin(store domain.LegStore, repo domain.LegRepository) ScheduleAdminUseCase {
	return &scheduleAdmin{
		store: store,
		repo:  repo,
	}
}

func (s *scheduleAdmin) Create(ctx context.Context, leg domain.FlightLeg) (domain.FlightLeg, error) {
	if err := validateLeg(leg); err != nil {
		return domain.FlightLeg{}, err
	}
	return s.store.CreateLeg(ctx, leg)
}

func (s *scheduleAdmin) Get(ctx context.Context, id int64) (domain.FlightLeg, error) {
	return s.store.GetLeg(ctx, id)
}

func (s *scheduleAdmin) List(ctx context.Context) ([]domain.FlightLeg, error) {
	return s.repo.FindLegs(ctx, domain.LegFilter{SortBy: domain.SortByDate})
}

func (s *scheduleAdmin) Update(ctx context.Context, leg domain.FlightLeg) (domain.FlightLeg, error) {
	if err := validateLeg(leg); err != nil {
		return domain.FlightLeg{}, err
	}
	return s.store.UpdateLeg(ctx, leg)
}

// ToggleStatus flips the confirmed flag, switching a flight between active
// and cancelled.
func (s *scheduleAdmin) ToggleStatus(ctx context.Context, id int64) (domain.FlightLeg, error) {
	leg, err := s.store.GetLeg(ctx, id)
	if err != nil {
		return domain.FlightLeg{}, err
	}
	return s.store.SetConfirmed(ctx, id, !leg.Confirmed)
}

func (s *scheduleAdmin) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteLeg(ctx, id)
}

// validateLeg enforces the leg invariants on the write path.
func validateLeg(leg domain.FlightLeg) error {
	if leg.DepartureAirport == "" || leg.ArrivalAirport == "" {
		return fmt.Errorf("%w: departure and arrival airports are required", domain.ErrInvalidRequest)
	}
	if leg.DepartureAirport == leg.ArrivalAirport {
		return fmt.Errorf("%w: departure and arrival airports cannot be the same", domain.ErrConflict)
	}
	if leg.FlightNumber == "" {
		return fmt.Errorf("%w: flight number is required", domain.ErrInvalidRequest)
	}
	if leg.FlightDurationMinutes < 0 {
		return fmt.Errorf("%w: flight duration must be non-negative", domain.ErrInvalidRequest)
	}
	if leg.BasePrice.IsNegative() {
		return fmt.Errorf("%w: base price must be non-negative", domain.ErrInvalidRequest)
	}
	return nil
}
