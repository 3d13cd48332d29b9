package domain

import (
	"context"
	"time"
)

// LegFilter narrows a flight-leg lookup. Nil pointer and empty string
// fields are simply not applied.
type LegFilter struct {
	// ID matches a single schedule by identity.
	ID *int64

	// DepartureAirport matches legs departing from this IATA code.
	DepartureAirport string

	// ArrivalAirport matches legs arriving at this IATA code.
	ArrivalAirport string

	// FlightNumber matches a single flight number.
	FlightNumber string

	// DateFrom is the inclusive lower bound on departure time.
	DateFrom *time.Time

	// DateTo is the exclusive upper bound on departure time. Date windows
	// are half-open: [DateFrom, DateTo).
	DateTo *time.Time

	// SortBy orders the result set. Empty means repository natural order.
	SortBy SortOption
}

// LegRepository supplies scheduled flight legs matching airport, date and
// flight-number filters. Used by the direct search and by the connection
// engine's per-step fetch.
type LegRepository interface {
	FindLegs(ctx context.Context, filter LegFilter) ([]FlightLeg, error)
}

// SeatInventory supplies aircraft seat capacity and the current booked
// ticket count for a leg. Read-only from the search core's perspective.
type SeatInventory interface {
	// AircraftCapacity returns the total seat count of an aircraft.
	AircraftCapacity(ctx context.Context, aircraftID int64) (int, error)

	// BookedCount returns the number of tickets already sold for a leg.
	BookedCount(ctx context.Context, legID int64) (int, error)
}

// LegStore is the write side of schedule administration. The search core
// never uses it.
type LegStore interface {
	CreateLeg(ctx context.Context, leg FlightLeg) (FlightLeg, error)
	GetLeg(ctx context.Context, id int64) (FlightLeg, error)
	UpdateLeg(ctx context.Context, leg FlightLeg) (FlightLeg, error)
	SetConfirmed(ctx context.Context, id int64, confirmed bool) (FlightLeg, error)
	DeleteLeg(ctx context.Context, id int64) error
}
