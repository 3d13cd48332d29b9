package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/airline-ops/schedule-search-service/internal/domain"
)

// searchCacheKey derives a stable cache key from the full search query.
// Every parameter that influences the result participates in the key.
func searchCacheKey(q domain.SearchQuery) string {
	parts := []string{
		"search",
		q.DepartureAirport,
		q.ArrivalAirport,
		formatCacheDate(q.FlightDate),
		formatCacheDate(q.ReturnFlightDate),
		string(q.CabinClass),
		strconv.FormatBool(q.FlexibleDates),
		strconv.FormatBool(q.FlexibleReturnDates),
		q.FlightNumber,
		string(q.SortBy),
		strconv.Itoa(q.MaxConnections),
	}
	if q.ID != nil {
		parts = append(parts, strconv.FormatInt(*q.ID, 10))
	}
	return strings.Join(parts, "|")
}

func formatCacheDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
