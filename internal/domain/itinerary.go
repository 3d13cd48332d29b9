package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Itinerary is a candidate travel plan: one or more legs chained into a
// single journey. Each leg's arrival airport equals the next leg's
// departure airport, and no airport appears twice on the path.
//
// FlightNumbers and AggregateBasePrice are accumulated while the itinerary
// is being discovered, not recomputed from the leg slice afterwards.
// Itineraries are computed per search request and never persisted.
type Itinerary struct {
	// Legs is the ordered sequence of constituent flight legs.
	Legs []FlightLeg `json:"legs"`

	// Connections is the number of aircraft changes (len(Legs) - 1).
	Connections int `json:"connections"`

	// FlightNumbers is the ordered sequence of constituent flight numbers.
	FlightNumbers []string `json:"flightNumbers"`

	// AggregateBasePrice is the decimal-exact sum of the constituent legs'
	// base prices.
	AggregateBasePrice decimal.Decimal `json:"aggregateBasePrice"`
}

// NewDirectItinerary wraps a single leg into a 0-connection itinerary.
func NewDirectItinerary(leg FlightLeg) Itinerary {
	return Itinerary{
		Legs:               []FlightLeg{leg},
		Connections:        0,
		FlightNumbers:      []string{leg.FlightNumber},
		AggregateBasePrice: leg.BasePrice,
	}
}

// Extend returns a new itinerary with the given leg appended. The receiver
// is not modified: path state is cloned per branch so that sibling branches
// of a search never share mutable state.
func (it Itinerary) Extend(leg FlightLeg) Itinerary {
	legs := make([]FlightLeg, len(it.Legs), len(it.Legs)+1)
	copy(legs, it.Legs)
	numbers := make([]string, len(it.FlightNumbers), len(it.FlightNumbers)+1)
	copy(numbers, it.FlightNumbers)

	return Itinerary{
		Legs:               append(legs, leg),
		Connections:        it.Connections + 1,
		FlightNumbers:      append(numbers, leg.FlightNumber),
		AggregateBasePrice: it.AggregateBasePrice.Add(leg.BasePrice),
	}
}

// Key returns the itinerary's identity for deduplication: the ordered
// sequence of constituent leg IDs. Two itineraries with the same leg
// sequence are the same itinerary regardless of how they were discovered.
func (it Itinerary) Key() string {
	var sb strings.Builder
	for i, leg := range it.Legs {
		if i > 0 {
			sb.WriteByte(':')
		}
		sb.WriteString(strconv.FormatInt(leg.ID, 10))
	}
	return sb.String()
}

// First returns the initial leg of the itinerary.
func (it Itinerary) First() FlightLeg {
	return it.Legs[0]
}

// Last returns the final leg of the itinerary.
func (it Itinerary) Last() FlightLeg {
	return it.Legs[len(it.Legs)-1]
}

// ElapsedTime is the total journey time from the first leg's departure to
// the last leg's arrival, layovers included.
func (it Itinerary) ElapsedTime() time.Duration {
	if len(it.Legs) == 0 {
		return 0
	}
	return it.Last().ArrivalTime().Sub(it.First().DepartureTime)
}

// DisplayFlightNumber is the flight number shown to clients: the single
// leg's number for direct flights, the constituent numbers joined with "-"
// for connecting itineraries.
func (it Itinerary) DisplayFlightNumber() string {
	if it.Connections > 0 {
		return strings.Join(it.FlightNumbers, "-")
	}
	if len(it.Legs) == 0 {
		return ""
	}
	return it.First().FlightNumber
}
