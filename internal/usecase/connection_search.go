// Package usecase contains the business logic for schedule search,
// itinerary pricing and seat availability. The connection engine performs a
// depth-first exhaustive search over flight legs; it is pure computation
// between repository calls and holds no shared mutable state.
package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/airline-ops/schedule-search-service/internal/domain"
)

// TotalTimeBudget caps the total elapsed itinerary time, measured from the
// requested departure date to the final arrival, layovers included.
const TotalTimeBudget = 24 * time.Hour

// ConnectionEngine finds connecting itineraries between two airports within
// the elapsed-time budget and a maximum connection count.
type ConnectionEngine struct {
	repo domain.LegRepository
	log  zerolog.Logger
}

// NewConnectionEngine creates a ConnectionEngine backed by the given leg
// repository.
func NewConnectionEngine(repo domain.LegRepository, log zerolog.Logger) *ConnectionEngine {
	return &ConnectionEngine{
		repo: repo,
		log:  log,
	}
}

// FindItineraries returns every itinerary from origin to destination whose
// first leg departs within the one-day window starting at departureDate and
// whose total elapsed time fits the budget. Direct legs found in the window
// are emitted as 0-connection itineraries; deduplication against the
// caller's direct query is the caller's responsibility.
//
// The engine is deliberately lenient: a zero departure date or a repository
// failure yields an empty result instead of an error, so a broken
// connection branch never sinks the surrounding search.
func (e *ConnectionEngine) FindItineraries(ctx context.Context, origin, destination string, departureDate time.Time, maxConnections int) []domain.Itinerary {
	if departureDate.IsZero() {
		return nil
	}

	windowEnd := departureDate.Add(TotalTimeBudget)
	initial, err := e.repo.FindLegs(ctx, domain.LegFilter{
		DepartureAirport: origin,
		DateFrom:         &departureDate,
		DateTo:           &windowEnd,
	})
	if err != nil {
		e.log.Warn().Err(err).
			Str("origin", origin).
			Str("destination", destination).
			Msg("Connection search aborted: initial leg fetch failed")
		return nil
	}

	var found []domain.Itinerary
	for _, leg := range initial {
		if leg.ArrivalAirport == destination {
			found = append(found, domain.NewDirectItinerary(leg))
			continue
		}

		if maxConnections < 1 {
			continue
		}

		// The budget shrinks by the wait between the requested date and
		// the first departure, then by each leg's flight time as the path
		// extends.
		remaining := TotalTimeBudget - leg.DepartureTime.Sub(departureDate)
		found = e.extendPath(ctx, found, pathState{
			path:        domain.NewDirectItinerary(leg),
			current:     leg.ArrivalAirport,
			visited:     []string{origin, leg.ArrivalAirport},
			connections: 1,
			remaining:   remaining,
		}, destination, departureDate, maxConnections)
	}

	return found
}

// pathState carries one branch of the depth-first exploration. Visited
// airports and the accumulated path are cloned per branch, never shared
// across siblings.
type pathState struct {
	path        domain.Itinerary
	current     string
	visited     []string
	connections int
	remaining   time.Duration
}

// extendPath explores legs departing the current airport and returns the
// accumulated result slice. A candidate leg must depart no earlier than the
// previous leg and no later than the requested date plus the remaining
// budget, and its own flight time must fit the remaining budget.
func (e *ConnectionEngine) extendPath(ctx context.Context, found []domain.Itinerary, state pathState, destination string, departureDate time.Time, maxConnections int) []domain.Itinerary {
	if state.connections > maxConnections {
		return found
	}

	from := state.path.Last().DepartureTime
	to := departureDate.Add(state.remaining)
	legs, err := e.repo.FindLegs(ctx, domain.LegFilter{
		DepartureAirport: state.current,
		DateFrom:         &from,
		DateTo:           &to,
	})
	if err != nil {
		// Drop this branch only, not the whole search.
		e.log.Warn().Err(err).
			Str("airport", state.current).
			Int("connections", state.connections).
			Msg("Connection branch dropped: next leg fetch failed")
		return found
	}

	for _, leg := range legs {
		legTime := leg.Duration()
		if legTime > state.remaining {
			continue
		}

		if leg.ArrivalAirport == destination {
			found = append(found, state.path.Extend(leg))
			continue
		}

		if slices.Contains(state.visited, leg.ArrivalAirport) {
			continue
		}

		visited := make([]string, len(state.visited), len(state.visited)+1)
		copy(visited, state.visited)

		found = e.extendPath(ctx, found, pathState{
			path:        state.path.Extend(leg),
			current:     leg.ArrivalAirport,
			visited:     append(visited, leg.ArrivalAirport),
			connections: state.connections + 1,
			remaining:   state.remaining - legTime,
		}, destination, departureDate, maxConnections)
	}

	return found
}
