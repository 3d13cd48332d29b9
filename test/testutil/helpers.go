// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/airline-ops/schedule-search-service/internal/domain"
)

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", dateStr, err)
	}
	return parsed
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}

// Leg builds a confirmed flight leg for test catalogs. The price string
// must parse as a decimal.
func Leg(id int64, number, dep, arr string, departure time.Time, durationMin int, price string) domain.FlightLeg {
	return domain.FlightLeg{
		ID:                    id,
		FlightNumber:          number,
		DepartureAirport:      dep,
		ArrivalAirport:        arr,
		DepartureTime:         departure,
		FlightDurationMinutes: durationMin,
		BasePrice:             decimal.RequireFromString(price),
		AircraftID:            1,
		Confirmed:             true,
	}
}
