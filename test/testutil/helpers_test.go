package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMustParseTime(t *testing.T) {
	parsed := MustParseTime(t, "2026-03-10T09:30:00Z")

	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 10, parsed.Day())
	assert.Equal(t, 9, parsed.Hour())
	assert.Equal(t, 30, parsed.Minute())
}

func TestMustParseDate(t *testing.T) {
	parsed := MustParseDate(t, "2026-03-10")

	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 10, parsed.Day())
	assert.Equal(t, 0, parsed.Hour())
}

func TestPtr(t *testing.T) {
	intPtr := Ptr(42)
	assert.NotNil(t, intPtr)
	assert.Equal(t, 42, *intPtr)

	strPtr := Ptr("SVO")
	assert.NotNil(t, strPtr)
	assert.Equal(t, "SVO", *strPtr)
}

func TestLeg(t *testing.T) {
	departure := MustParseTime(t, "2026-03-10T09:30:00Z")

	leg := Leg(7, "SU-100", "SVO", "LED", departure, 90, "1000.50")

	assert.Equal(t, int64(7), leg.ID)
	assert.Equal(t, "SU-100", leg.FlightNumber)
	assert.Equal(t, "SVO", leg.DepartureAirport)
	assert.Equal(t, "LED", leg.ArrivalAirport)
	assert.Equal(t, departure, leg.DepartureTime)
	assert.Equal(t, 90, leg.FlightDurationMinutes)
	assert.Equal(t, "1000.5", leg.BasePrice.String())
	assert.True(t, leg.Confirmed)
}
