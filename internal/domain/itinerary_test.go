package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLeg builds a leg for itinerary tests.
func testLeg(id int64, number, dep, arr string, departure time.Time, durationMin int, price string) FlightLeg {
	return FlightLeg{
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

func TestFlightLeg_ArrivalTime(t *testing.T) {
	departure := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	leg := testLeg(1, "SU-100", "SVO", "LED", departure, 90, "4500")

	assert.Equal(t, departure.Add(90*time.Minute), leg.ArrivalTime())
	assert.Equal(t, 90*time.Minute, leg.Duration())
}

func TestNewDirectItinerary(t *testing.T) {
	departure := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	leg := testLeg(7, "SU-100", "SVO", "LED", departure, 90, "4500")

	it := NewDirectItinerary(leg)

	assert.Equal(t, 0, it.Connections)
	assert.Equal(t, []string{"SU-100"}, it.FlightNumbers)
	assert.True(t, it.AggregateBasePrice.Equal(decimal.RequireFromString("4500")))
	assert.Len(t, it.Legs, 1)
}

func TestItinerary_Extend(t *testing.T) {
	departure := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	first := testLeg(1, "SU-100", "AAA", "BBB", departure, 120, "1000.50")
	second := testLeg(2, "SU-200", "BBB", "CCC", departure.Add(3*time.Hour), 180, "2000.25")

	base := NewDirectItinerary(first)
	extended := base.Extend(second)

	// Base itinerary must be untouched: sibling branches clone path state.
	assert.Equal(t, 0, base.Connections)
	assert.Len(t, base.Legs, 1)
	assert.Equal(t, []string{"SU-100"}, base.FlightNumbers)

	assert.Equal(t, 1, extended.Connections)
	assert.Equal(t, []string{"SU-100", "SU-200"}, extended.FlightNumbers)
	assert.True(t, extended.AggregateBasePrice.Equal(decimal.RequireFromString("3000.75")),
		"aggregate price must be the decimal-exact sum, got %s", extended.AggregateBasePrice)
	require.Len(t, extended.Legs, 2)
	assert.Equal(t, extended.Legs[0].ArrivalAirport, extended.Legs[1].DepartureAirport)
}

func TestItinerary_Extend_SharedBaseBranches(t *testing.T) {
	departure := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	first := testLeg(1, "SU-100", "AAA", "BBB", departure, 120, "1000")
	viaC := testLeg(2, "SU-200", "BBB", "CCC", departure.Add(3*time.Hour), 60, "500")
	viaD := testLeg(3, "SU-300", "BBB", "DDD", departure.Add(4*time.Hour), 60, "700")

	base := NewDirectItinerary(first)
	left := base.Extend(viaC)
	right := base.Extend(viaD)

	assert.Equal(t, "CCC", left.Last().ArrivalAirport)
	assert.Equal(t, "DDD", right.Last().ArrivalAirport)
	assert.Equal(t, []string{"SU-100", "SU-200"}, left.FlightNumbers)
	assert.Equal(t, []string{"SU-100", "SU-300"}, right.FlightNumbers)
}

func TestItinerary_Key(t *testing.T) {
	departure := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	first := testLeg(12, "SU-100", "AAA", "BBB", departure, 120, "1000")
	second := testLeg(45, "SU-200", "BBB", "CCC", departure.Add(3*time.Hour), 60, "500")

	direct := NewDirectItinerary(first)
	connecting := direct.Extend(second)

	assert.Equal(t, "12", direct.Key())
	assert.Equal(t, "12:45", connecting.Key())

	// Identity is the leg sequence, not the object reference.
	rediscovered := NewDirectItinerary(first).Extend(second)
	assert.Equal(t, connecting.Key(), rediscovered.Key())
}

func TestItinerary_ElapsedTime(t *testing.T) {
	departure := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	first := testLeg(1, "SU-100", "AAA", "BBB", departure, 120, "1000")
	// 1h layover, then a 3h leg: total elapsed = 2h + 1h + 3h = 6h.
	second := testLeg(2, "SU-200", "BBB", "CCC", departure.Add(3*time.Hour), 180, "500")

	it := NewDirectItinerary(first).Extend(second)

	assert.Equal(t, 6*time.Hour, it.ElapsedTime())
}

func TestItinerary_DisplayFlightNumber(t *testing.T) {
	departure := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	first := testLeg(1, "SU-100", "AAA", "BBB", departure, 120, "1000")
	second := testLeg(2, "SU-200", "BBB", "CCC", departure.Add(3*time.Hour), 60, "500")

	direct := NewDirectItinerary(first)
	connecting := direct.Extend(second)

	assert.Equal(t, "SU-100", direct.DisplayFlightNumber())
	assert.Equal(t, "SU-100-SU-200", connecting.DisplayFlightNumber())
}
