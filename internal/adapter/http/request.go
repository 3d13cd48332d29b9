// Package http provides the HTTP handler layer for the schedule search API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/airline-ops/schedule-search-service/internal/domain"
)

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Valid ticket classes.
var validClasses = map[string]bool{
	"economy":  true,
	"business": true,
	"first":    true,
	"":         true, // Empty is valid (defaults to economy)
}

// Valid sort options.
var validSortOptions = map[string]bool{
	"date":      true,
	"price":     true,
	"confirmed": true,
	"":          true, // Empty is valid (defaults to date)
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// SearchSchedulesRequest carries the query parameters of a schedule search.
type SearchSchedulesRequest struct {
	// DepartureAirportCode is the IATA code of the departure airport (e.g., "SVO")
	DepartureAirportCode string `query:"departureAirportCode"`

	// ArrivalAirportCode is the IATA code of the arrival airport (e.g., "LED")
	ArrivalAirportCode string `query:"arrivalAirportCode"`

	// FlightDate is the outbound date in YYYY-MM-DD format
	FlightDate string `query:"flightDate"`

	// ReturnFlightDate is the optional return date in YYYY-MM-DD format
	ReturnFlightDate string `query:"returnFlightDate"`

	// TicketClass is the cabin class: economy, business, or first (optional)
	TicketClass string `query:"ticketClass"`

	// FlexibleDates widens the outbound window by three days each way
	FlexibleDates string `query:"flexibleDates"`

	// FlexibleReturnDates widens the return window by three days each way
	FlexibleReturnDates string `query:"flexibleReturnDates"`

	// FlightNumber narrows the direct-query stage to one flight number
	FlightNumber string `query:"flightNumber"`

	// SortBy orders direct results: date, price, or confirmed
	SortBy string `query:"sortBy"`

	// MaxConnections caps intermediate stops; empty means the default of one
	MaxConnections string `query:"maxConnections"`

	// ID restricts the search to a single schedule
	ID string `query:"id"`
}

// BindSearchRequest extracts a search request from query parameters.
func BindSearchRequest(c echo.Context) (*SearchSchedulesRequest, error) {
	var req SearchSchedulesRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validate checks the search request and returns any validation errors.
func (r *SearchSchedulesRequest) Validate() error {
	errs := &ValidationErrors{}

	r.validateAirport(errs, "departureAirportCode", &r.DepartureAirportCode)
	r.validateAirport(errs, "arrivalAirportCode", &r.ArrivalAirportCode)
	r.validateDate(errs, "flightDate", r.FlightDate)
	r.validateDate(errs, "returnFlightDate", r.ReturnFlightDate)

	if !validClasses[strings.ToLower(r.TicketClass)] {
		errs.Add("ticketClass", "ticketClass must be one of: economy, business, first")
	}
	if !validSortOptions[strings.ToLower(r.SortBy)] {
		errs.Add("sortBy", "sortBy must be one of: date, price, confirmed")
	}
	r.validateBool(errs, "flexibleDates", r.FlexibleDates)
	r.validateBool(errs, "flexibleReturnDates", r.FlexibleReturnDates)

	if r.MaxConnections != "" {
		n, err := strconv.Atoi(r.MaxConnections)
		if err != nil || n < 0 {
			errs.Add("maxConnections", "maxConnections must be a non-negative integer")
		}
	}
	if r.ID != "" {
		if _, err := strconv.ParseInt(r.ID, 10, 64); err != nil {
			errs.Add("id", "id must be an integer")
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchSchedulesRequest) validateAirport(errs *ValidationErrors, field string, value *string) {
	if *value == "" {
		return
	}
	code := strings.ToUpper(*value)
	if !airportCodePattern.MatchString(code) {
		errs.Add(field, field+" must be a valid 3-letter IATA airport code")
		return
	}
	*value = code
}

func (r *SearchSchedulesRequest) validateDate(errs *ValidationErrors, field, value string) {
	if value == "" {
		return
	}
	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		errs.Add(field, field+" is not a valid date")
	}
}

func (r *SearchSchedulesRequest) validateBool(errs *ValidationErrors, field, value string) {
	switch strings.ToLower(value) {
	case "", "true", "false", "1", "0":
	default:
		errs.Add(field, field+" must be a boolean")
	}
}

// ToDomainQuery converts a validated request to a domain search query.
func (r *SearchSchedulesRequest) ToDomainQuery() domain.SearchQuery {
	query := domain.SearchQuery{
		DepartureAirport: r.DepartureAirportCode,
		ArrivalAirport:   r.ArrivalAirportCode,
		FlightNumber:     r.FlightNumber,
		SortBy:           domain.ParseSortOption(strings.ToLower(r.SortBy)),
	}

	if r.FlightDate != "" {
		d, _ := time.Parse("2006-01-02", r.FlightDate)
		query.FlightDate = &d
	}
	if r.ReturnFlightDate != "" {
		d, _ := time.Parse("2006-01-02", r.ReturnFlightDate)
		query.ReturnFlightDate = &d
	}

	class, _ := domain.ParseCabinClass(strings.ToLower(r.TicketClass))
	query.CabinClass = class

	query.FlexibleDates = parseBool(r.FlexibleDates)
	query.FlexibleReturnDates = parseBool(r.FlexibleReturnDates)

	if r.MaxConnections != "" {
		n, _ := strconv.Atoi(r.MaxConnections)
		query.MaxConnections = n
	} else {
		query.MaxConnections = domain.DefaultMaxConnections
	}

	if r.ID != "" {
		id, _ := strconv.ParseInt(r.ID, 10, 64)
		query.ID = &id
	}

	return query
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1":
		return true
	default:
		return false
	}
}

// ScheduleUpsertRequest is the request body for creating or updating a schedule.
type ScheduleUpsertRequest struct {
	// FlightNumber is the airline-assigned flight number (e.g., "SU-100")
	FlightNumber string `json:"flightNumber"`

	// DepartureAirportCode is the IATA code of the departure airport
	DepartureAirportCode string `json:"departureAirportCode"`

	// ArrivalAirportCode is the IATA code of the arrival airport
	ArrivalAirportCode string `json:"arrivalAirportCode"`

	// Date is the departure timestamp in RFC 3339 format
	Date string `json:"date"`

	// FlightTime is the leg duration in minutes
	FlightTime int `json:"flightTime"`

	// EconomyPrice is the base economy price as a decimal string
	EconomyPrice string `json:"economyPrice"`

	// AircraftID references the operating aircraft
	AircraftID int64 `json:"aircraftId"`

	// Confirmed marks the schedule as active
	Confirmed bool `json:"confirmed"`
}

// Validate checks the upsert request and returns any validation errors.
func (r *ScheduleUpsertRequest) Validate() error {
	errs := &ValidationErrors{}

	if r.FlightNumber == "" {
		errs.Add("flightNumber", "flightNumber is required")
	}
	if r.DepartureAirportCode == "" {
		errs.Add("departureAirportCode", "departureAirportCode is required")
	} else {
		r.validateAirport(errs, "departureAirportCode", &r.DepartureAirportCode)
	}
	if r.ArrivalAirportCode == "" {
		errs.Add("arrivalAirportCode", "arrivalAirportCode is required")
	} else {
		r.validateAirport(errs, "arrivalAirportCode", &r.ArrivalAirportCode)
	}
	if r.DepartureAirportCode != "" && strings.EqualFold(r.DepartureAirportCode, r.ArrivalAirportCode) {
		errs.Add("arrivalAirportCode", "departure and arrival airports must be different")
	}

	if r.Date == "" {
		errs.Add("date", "date is required")
	} else if _, err := time.Parse(time.RFC3339, r.Date); err != nil {
		errs.Add("date", "date must be in RFC 3339 format")
	}

	if r.FlightTime <= 0 {
		errs.Add("flightTime", "flightTime must be a positive number of minutes")
	}
	if r.EconomyPrice == "" {
		errs.Add("economyPrice", "economyPrice is required")
	}
	if r.AircraftID <= 0 {
		errs.Add("aircraftId", "aircraftId is required")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *ScheduleUpsertRequest) validateAirport(errs *ValidationErrors, field string, value *string) {
	code := strings.ToUpper(*value)
	if !airportCodePattern.MatchString(code) {
		errs.Add(field, field+" must be a valid 3-letter IATA airport code")
		return
	}
	*value = code
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
