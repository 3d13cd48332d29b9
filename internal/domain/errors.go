// Package domain contains the core business entities and rules for the
// schedule search system. These entities are storage-agnostic and form the
// foundation upon which all other components are built.
package domain

import "errors"

// Sentinel errors for the schedule search domain.
// Use errors.Is to classify wrapped errors at the adapter boundary.
var (
	// ErrInvalidRequest indicates a request that fails validation before
	// any query is executed (bad passenger count, malformed date, etc.).
	ErrInvalidRequest = errors.New("invalid request")

	// ErrConflict indicates contradictory request parameters, such as
	// identical departure and arrival airports, or a return date that is
	// not after the outbound date.
	ErrConflict = errors.New("conflicting request parameters")

	// ErrNotFound indicates that a schedule or one of an itinerary's
	// constituent legs could not be resolved.
	ErrNotFound = errors.New("not found")

	// ErrRepository indicates a storage-layer failure. It is propagated as
	// an internal error; retries happen inside the storage adapter, never
	// in the search core.
	ErrRepository = errors.New("repository failure")
)
