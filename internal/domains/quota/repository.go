package quota

import "context"

// TrustRepository exposes the two remote signals the trust resolver needs.
// Implemented against PostgreSQL; faked in tests.
type TrustRepository interface {
	// HasAdminRole reports whether the identity holds the admin role
	HasAdminRole(ctx context.Context, userID string) (bool, error)

	// CountApprovedSubmissions counts the identity's submissions that were
	// approved by moderation
	CountApprovedSubmissions(ctx context.Context, userID string) (int, error)
}

// CounterStore is the durable consumption side of the quota ledger: a
// per-identity tally of submissions recorded since the counter blob was
// created. Injected so tests can fake it; never accessed as a singleton.
type CounterStore interface {
	// GetPendingCount returns the recorded count for userID.
	// A missing entry, missing blob, or corrupt blob reads as 0.
	GetPendingCount(ctx context.Context, userID string) int

	// IncrementPendingCount adds delta to the identity's tally.
	// There is deliberately no decrement: the counter only grows, and no
	// reconciliation against moderation outcomes happens (rejected
	// submissions do not restore quota).
	IncrementPendingCount(ctx context.Context, userID string, delta int) error
}
