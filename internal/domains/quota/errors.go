package quota

import "errors"

var (
	// ErrSubmissionLimitReached is returned by callers of the policy engine
	// when a Decision comes back with Allowed=false. The engine itself never
	// returns it; a denied check is a normal result, not a failure.
	ErrSubmissionLimitReached = errors.New("submission limit reached for current trust level")

	// ErrInvalidRequestedCount rejects negative submission counts at the API edge
	ErrInvalidRequestedCount = errors.New("requested submission count must not be negative")
)
