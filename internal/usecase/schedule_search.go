package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/airline-ops/schedule-search-service/internal/domain"
	"github.com/airline-ops/schedule-search-service/internal/infrastructure/timeutil"
)

// FlexibleDateDays is the half-width of the widened date window applied
// when a flexible-dates search is requested.
const FlexibleDateDays = 3

// ScheduleSearchUseCase defines the interface for schedule search
// operations.
type ScheduleSearchUseCase interface {
	// Search runs the direct query, merges in connecting itineraries,
	// deduplicates, optionally repeats for the return leg, and prices the
	// result for the requested cabin class.
	Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error)
}

// ResultCache caches assembled search results keyed by the full query.
// Implementations must be safe for concurrent use. A nil cache disables
// caching.
type ResultCache interface {
	Get(ctx context.Context, key string) (*domain.SearchResult, bool)
	Set(ctx context.Context, key string, result *domain.SearchResult)
}

// scheduleSearch implements ScheduleSearchUseCase. It is the assembler:
// the engine discovers connecting itineraries, this type merges them with
// direct results, deduplicates by itinerary identity and applies pricing.
type scheduleSearch struct {
	repo   domain.LegRepository
	engine *ConnectionEngine
	cache  ResultCache
	log    zerolog.Logger
}

// NewScheduleSearch creates a ScheduleSearchUseCase. cache may be nil.
func NewScheduleSearch(repo domain.LegRepository, engine *ConnectionEngine, cache ResultCache, log zerolog.Logger) ScheduleSearchUseCase {
	return &scheduleSearch{
		repo:   repo,
		engine: engine,
		cache:  cache,
		log:    log,
	}
}

// Search implements ScheduleSearchUseCase.
func (s *scheduleSearch) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error) {
	query.SetDefaults()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cacheKey := searchCacheKey(query)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	outbound, err := s.searchLeg(ctx, legRequest{
		departure: query.DepartureAirport,
		arrival:   query.ArrivalAirport,
		date:      query.FlightDate,
		flexible:  query.FlexibleDates,
		query:     query,
	})
	if err != nil {
		return nil, err
	}

	var inbound []domain.Itinerary
	if query.ReturnFlightDate != nil && query.DepartureAirport != "" && query.ArrivalAirport != "" {
		inbound, err = s.searchLeg(ctx, legRequest{
			departure: query.ArrivalAirport,
			arrival:   query.DepartureAirport,
			date:      query.ReturnFlightDate,
			flexible:  query.FlexibleReturnDates,
			query:     query,
		})
		if err != nil {
			return nil, err
		}
	}

	result := &domain.SearchResult{
		Schedules:       ApplyPricing(outbound, query.CabinClass),
		ReturnSchedules: ApplyPricing(inbound, query.CabinClass),
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, result)
	}

	return result, nil
}

// legRequest describes one directed pass of the search (outbound or
// return).
type legRequest struct {
	departure string
	arrival   string
	date      *time.Time
	flexible  bool
	query     domain.SearchQuery
}

// searchLeg runs the direct query plus the connection engine for one
// direction and deduplicates the merged result by itinerary identity.
func (s *scheduleSearch) searchLeg(ctx context.Context, req legRequest) ([]domain.Itinerary, error) {
	filter := domain.LegFilter{
		ID:               req.query.ID,
		DepartureAirport: req.departure,
		ArrivalAirport:   req.arrival,
		FlightNumber:     req.query.FlightNumber,
		SortBy:           req.query.SortBy,
	}
	if req.date != nil {
		var from, to time.Time
		if req.flexible {
			from, to = timeutil.FlexWindow(*req.date, FlexibleDateDays)
		} else {
			from, to = timeutil.DayWindow(*req.date)
		}
		filter.DateFrom = &from
		filter.DateTo = &to
	}

	legs, err := s.repo.FindLegs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: direct schedule query: %v", domain.ErrRepository, err)
	}

	itineraries := make([]domain.Itinerary, 0, len(legs))
	for _, leg := range legs {
		itineraries = append(itineraries, domain.NewDirectItinerary(leg))
	}

	// The engine's recursive branch only runs for maxConnections >= 1; a
	// 0-connection search is fully covered by the direct query above. The
	// connection window stays anchored at the requested date even in
	// flexible mode.
	if req.query.MaxConnections >= 1 && req.departure != "" && req.arrival != "" && req.date != nil {
		connecting := s.engine.FindItineraries(ctx, req.departure, req.arrival, *req.date, req.query.MaxConnections)
		itineraries = append(itineraries, connecting...)
	}

	return dedupeItineraries(itineraries), nil
}

// dedupeItineraries removes duplicates by itinerary identity, keeping the
// first occurrence. Membership is set-keyed by the ordered leg-id sequence.
func dedupeItineraries(itineraries []domain.Itinerary) []domain.Itinerary {
	seen := make(map[string]struct{}, len(itineraries))
	result := make([]domain.Itinerary, 0, len(itineraries))
	for _, it := range itineraries {
		key := it.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, it)
	}
	return result
}

// ApplyPricing annotates each itinerary with its final price for the given
// cabin class.
func ApplyPricing(itineraries []domain.Itinerary, class domain.CabinClass) []domain.PricedItinerary {
	priced := make([]domain.PricedItinerary, 0, len(itineraries))
	for _, it := range itineraries {
		priced = append(priced, domain.Price(it, class))
	}
	return priced
}
