package advisor

import "errors"

var (
	// ErrNoEligiblePlans means the hard profile constraints filtered out the
	// entire catalog before any reasoning happened.
	ErrNoEligiblePlans = errors.New("no plans match the given profile")

	// ErrNotEnoughPlans means fewer than two of the requested names resolved
	// against the catalog.
	ErrNotEnoughPlans = errors.New("need at least 2 matching plans to compare")

	// ErrAdvisory wraps failures of the reasoning service: not configured,
	// unreachable, or returning output that cannot be used.
	ErrAdvisory = errors.New("advisory service unavailable")
)
