package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/airline-ops/schedule-search-service/internal/domain"
)

// SearchResponse is the payload of a successful schedule search.
type SearchResponse struct {
	// Schedules holds the outbound itineraries
	Schedules []ItineraryDTO `json:"schedules"`

	// ReturnSchedules holds the return itineraries when a return date was requested
	ReturnSchedules []ItineraryDTO `json:"returnSchedules,omitempty"`
}

// ItineraryDTO is one priced itinerary in a search response. Connecting
// itineraries carry the legs in order and a combined flight number.
type ItineraryDTO struct {
	// ID is the identifier of the first leg's schedule
	ID int64 `json:"id"`

	// FlightNumber is the display flight number; connecting itineraries
	// join the leg numbers with dashes (e.g., "SU-100-SU-205")
	FlightNumber string `json:"flightNumber"`

	// DepartureAirportCode is the origin of the whole journey
	DepartureAirportCode string `json:"departureAirportCode"`

	// ArrivalAirportCode is the final destination of the whole journey
	ArrivalAirportCode string `json:"arrivalAirportCode"`

	// Date is the departure time of the first leg, RFC 3339
	Date time.Time `json:"date"`

	// TicketClass is the priced cabin class
	TicketClass string `json:"ticketClass"`

	// Price is the final rounded price across all legs
	Price int64 `json:"price"`

	// Connections is the number of intermediate stops
	Connections int `json:"connections"`

	// Legs lists the individual flight legs in travel order
	Legs []LegDTO `json:"legs"`
}

// LegDTO is a single flight leg inside an itinerary.
type LegDTO struct {
	ID                   int64     `json:"id"`
	FlightNumber         string    `json:"flightNumber"`
	DepartureAirportCode string    `json:"departureAirportCode"`
	ArrivalAirportCode   string    `json:"arrivalAirportCode"`
	Date                 time.Time `json:"date"`
	FlightTime           int       `json:"flightTime"`
	EconomyPrice         string    `json:"economyPrice"`
	Confirmed            bool      `json:"confirmed"`
}

// ScheduleDTO is the admin view of a single schedule row.
type ScheduleDTO struct {
	ID                   int64     `json:"id"`
	FlightNumber         string    `json:"flightNumber"`
	DepartureAirportCode string    `json:"departureAirportCode"`
	ArrivalAirportCode   string    `json:"arrivalAirportCode"`
	Date                 time.Time `json:"date"`
	FlightTime           int       `json:"flightTime"`
	EconomyPrice         string    `json:"economyPrice"`
	AircraftID           int64     `json:"aircraftId"`
	Confirmed            bool      `json:"confirmed"`
}

// AvailabilityResponse answers an availability check.
type AvailabilityResponse struct {
	// Available reports whether every leg can seat the requested party
	Available bool `json:"available"`
}

// ToSearchResponse converts a domain search result to its response DTO.
func ToSearchResponse(result *domain.SearchResult) *SearchResponse {
	return &SearchResponse{
		Schedules:       toItineraryDTOs(result.Schedules),
		ReturnSchedules: toItineraryDTOs(result.ReturnSchedules),
	}
}

func toItineraryDTOs(priced []domain.PricedItinerary) []ItineraryDTO {
	dtos := make([]ItineraryDTO, 0, len(priced))
	for _, p := range priced {
		dtos = append(dtos, toItineraryDTO(p))
	}
	return dtos
}

func toItineraryDTO(p domain.PricedItinerary) ItineraryDTO {
	first := p.First()
	last := p.Last()

	legs := make([]LegDTO, 0, len(p.Legs))
	for _, leg := range p.Legs {
		legs = append(legs, toLegDTO(leg))
	}

	return ItineraryDTO{
		ID:                   first.ID,
		FlightNumber:         p.DisplayFlightNumber(),
		DepartureAirportCode: first.DepartureAirport,
		ArrivalAirportCode:   last.ArrivalAirport,
		Date:                 first.DepartureTime,
		TicketClass:          string(p.CabinClass),
		Price:                p.FinalPrice,
		Connections:          p.Connections,
		Legs:                 legs,
	}
}

func toLegDTO(leg domain.FlightLeg) LegDTO {
	return LegDTO{
		ID:                   leg.ID,
		FlightNumber:         leg.FlightNumber,
		DepartureAirportCode: leg.DepartureAirport,
		ArrivalAirportCode:   leg.ArrivalAirport,
		Date:                 leg.DepartureTime,
		FlightTime:           leg.FlightDurationMinutes,
		EconomyPrice:         leg.BasePrice.String(),
		Confirmed:            leg.Confirmed,
	}
}

// ToScheduleDTO converts a domain leg to its admin DTO.
func ToScheduleDTO(leg domain.FlightLeg) ScheduleDTO {
	return ScheduleDTO{
		ID:                   leg.ID,
		FlightNumber:         leg.FlightNumber,
		DepartureAirportCode: leg.DepartureAirport,
		ArrivalAirportCode:   leg.ArrivalAirport,
		Date:                 leg.DepartureTime,
		FlightTime:           leg.FlightDurationMinutes,
		EconomyPrice:         leg.BasePrice.String(),
		AircraftID:           leg.AircraftID,
		Confirmed:            leg.Confirmed,
	}
}

// ToDomainLeg converts a validated upsert request to a domain leg. A
// malformed date or price string is reported as an error.
func (r *ScheduleUpsertRequest) ToDomainLeg(id int64) (domain.FlightLeg, error) {
	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return domain.FlightLeg{}, err
	}
	price, err := decimal.NewFromString(r.EconomyPrice)
	if err != nil {
		return domain.FlightLeg{}, err
	}
	return domain.FlightLeg{
		ID:                    id,
		FlightNumber:          r.FlightNumber,
		DepartureAirport:      r.DepartureAirportCode,
		ArrivalAirport:        r.ArrivalAirportCode,
		DepartureTime:         date,
		FlightDurationMinutes: r.FlightTime,
		BasePrice:             price,
		AircraftID:            r.AircraftID,
		Confirmed:             r.Confirmed,
	}, nil
}
