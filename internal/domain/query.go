package domain

import (
	"fmt"
	"time"
)

// SortOption defines the available sort fields for direct-query results.
// Connection-search results inherit no separate sort guarantee.
type SortOption string

// Available sort options.
const (
	// SortByDate sorts by departure date ascending (default).
	SortByDate SortOption = "date"

	// SortByPrice sorts by base price ascending.
	SortByPrice SortOption = "price"

	// SortByConfirmed sorts by confirmed status.
	SortByConfirmed SortOption = "confirmed"
)

// IsValid checks if the sort option is a valid value.
func (s SortOption) IsValid() bool {
	switch s {
	case SortByDate, SortByPrice, SortByConfirmed:
		return true
	default:
		return false
	}
}

// ParseSortOption converts a string to a SortOption.
// Returns SortByDate if the string is empty or invalid.
func ParseSortOption(s string) SortOption {
	option := SortOption(s)
	if option.IsValid() {
		return option
	}
	return SortByDate
}

// DefaultMaxConnections is the connection limit applied when a search
// request does not specify one.
const DefaultMaxConnections = 1

// SearchQuery defines the parameters for a schedule search. Optional
// fields are typed pointers or empty strings; there are no string
// sentinels for "absent".
type SearchQuery struct {
	// ID restricts the search to a single schedule.
	ID *int64

	// DepartureAirport is the IATA code of the departure airport.
	DepartureAirport string

	// ArrivalAirport is the IATA code of the arrival airport.
	ArrivalAirport string

	// FlightDate is the requested outbound calendar date.
	FlightDate *time.Time

	// ReturnFlightDate, when set, triggers a second search pass with the
	// airports swapped. Must be strictly later than FlightDate.
	ReturnFlightDate *time.Time

	// CabinClass selects the fare multiplier (default economy).
	CabinClass CabinClass

	// FlexibleDates widens the outbound date filter to +/- 3 days.
	FlexibleDates bool

	// FlexibleReturnDates widens the return date filter to +/- 3 days.
	FlexibleReturnDates bool

	// FlightNumber restricts the direct query to a single flight number.
	FlightNumber string

	// SortBy is the sort field for the direct-query stage.
	SortBy SortOption

	// MaxConnections bounds the connection search depth. 0 means direct
	// flights only.
	MaxConnections int
}

// Validate rejects contradictory parameters before any query executes.
func (q *SearchQuery) Validate() error {
	if q.DepartureAirport != "" && q.ArrivalAirport != "" &&
		q.DepartureAirport == q.ArrivalAirport {
		return fmt.Errorf("%w: departure and arrival airports cannot be the same", ErrConflict)
	}

	if q.ReturnFlightDate != nil && q.FlightDate != nil &&
		!q.ReturnFlightDate.After(*q.FlightDate) {
		return fmt.Errorf("%w: return flight must be later than the departure date", ErrConflict)
	}

	if q.MaxConnections < 0 {
		return fmt.Errorf("%w: maxConnections must be non-negative", ErrInvalidRequest)
	}

	if q.CabinClass != "" && !q.CabinClass.IsValid() {
		return fmt.Errorf("%w: unknown cabin class %q", ErrInvalidRequest, q.CabinClass)
	}

	return nil
}

// SetDefaults applies default values to empty optional fields.
func (q *SearchQuery) SetDefaults() {
	if q.CabinClass == "" {
		q.CabinClass = ClassEconomy
	}
	if q.SortBy == "" {
		q.SortBy = SortByDate
	}
}

// SearchResult is the response contract of a schedule search: priced
// outbound itineraries plus priced return itineraries when a return date
// was supplied.
type SearchResult struct {
	Schedules       []PricedItinerary `json:"schedules"`
	ReturnSchedules []PricedItinerary `json:"returnSchedules"`
}
