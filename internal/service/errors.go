package service

import "errors"

var (
	// ErrInvalidUserID is returned when a user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidTripID is returned when a trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidComponentID is returned when a component ID is empty.
	ErrInvalidComponentID = errors.New("invalid component id")

	// ErrInvalidComponent is returned when a component has a malformed shape
	// (missing kind or leg).
	ErrInvalidComponent = errors.New("invalid component")

	// ErrInvalidDateRange is returned when a trip's end date is not after its
	// start date.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidTravelers is returned when the traveler count is not positive.
	ErrInvalidTravelers = errors.New("invalid traveler count")

	// ErrInvalidBudget is returned when the budget is negative.
	ErrInvalidBudget = errors.New("invalid budget")

	// ErrNoDestinations is returned when a trip has an empty destination set.
	ErrNoDestinations = errors.New("no destinations")

	// ErrNoLegs is returned when a plan request contains no legs.
	ErrNoLegs = errors.New("no legs")

	// ErrNoCandidatesAvailable is returned when a leg's candidate pool is
	// empty. The optimizer reports it per leg rather than dropping the leg.
	ErrNoCandidatesAvailable = errors.New("no candidates available")

	// ErrBenchmarkUnavailable is returned when a signature has no benchmark
	// and no global fallback row exists.
	ErrBenchmarkUnavailable = errors.New("benchmark unavailable")

	// ErrPlanLocked is returned when another writer is mutating the same
	// trip plan.
	ErrPlanLocked = errors.New("trip plan is being modified")

	// ErrActualNotRecorded is returned when comparing a trip whose actual
	// emissions have not been tracked yet.
	ErrActualNotRecorded = errors.New("actual emissions not recorded")

	// ErrInvalidActualCarbon is returned when a recorded actual figure is
	// negative.
	ErrInvalidActualCarbon = errors.New("invalid actual carbon figure")

	// ErrInvalidName is returned when a required name field is empty.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidEmail is returned when a required email field is empty.
	ErrInvalidEmail = errors.New("invalid email")
)
