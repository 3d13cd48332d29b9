package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlightLeg represents a single scheduled point-to-point flight segment.
// Legs are created by schedule administration and are read-only to the
// search and pricing core.
type FlightLeg struct {
	// ID is the schedule's unique identifier.
	ID int64 `json:"id"`

	// FlightNumber is the airline's flight number (e.g., "SU-1402").
	FlightNumber string `json:"flightNumber"`

	// DepartureAirport is the IATA code of the departure airport.
	DepartureAirport string `json:"departureAirport"`

	// ArrivalAirport is the IATA code of the arrival airport.
	// Always differs from DepartureAirport.
	ArrivalAirport string `json:"arrivalAirport"`

	// DepartureTime is the scheduled departure date-time (UTC).
	DepartureTime time.Time `json:"departureTime"`

	// FlightDurationMinutes is the scheduled time in the air.
	FlightDurationMinutes int `json:"flightDurationMinutes"`

	// BasePrice is the economy fare. Cabin-class multipliers are applied
	// on top of it at pricing time.
	BasePrice decimal.Decimal `json:"basePrice"`

	// AircraftID identifies the aircraft serving this leg; seat capacity
	// is resolved through it.
	AircraftID int64 `json:"aircraftId"`

	// Confirmed is false for cancelled flights.
	Confirmed bool `json:"confirmed"`
}

// Duration returns the leg's flight time as a time.Duration.
func (l FlightLeg) Duration() time.Duration {
	return time.Duration(l.FlightDurationMinutes) * time.Minute
}

// ArrivalTime returns the scheduled arrival time derived from the
// departure time and flight duration.
func (l FlightLeg) ArrivalTime() time.Time {
	return l.DepartureTime.Add(l.Duration())
}
