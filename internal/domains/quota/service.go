package quota

import "context"

// Service is the single decision point answering "may identity X submit
// Y more items right now, in mode M?".
type Service interface {
	// ResolveTrustLevel maps an identity to its trust tier. Empty userID
	// (anonymous) resolves to New without any lookups. Any lookup error
	// degrades to New: an infrastructure hiccup must never grant elevated
	// submission privileges.
	ResolveTrustLevel(ctx context.Context, userID string) TrustLevel

	// CheckSubmissionLimits decides whether the identity may submit
	// requestedCount more items. Read-only with respect to the counter:
	// callers invoke IncrementPendingCount after a submission is accepted.
	CheckSubmissionLimits(ctx context.Context, userID string, isAdmin, isBulkUpload bool, requestedCount int) Decision

	// GetPendingCount reads the identity's recorded submission tally
	GetPendingCount(ctx context.Context, userID string) int

	// IncrementPendingCount records delta accepted submissions against the
	// identity's quota
	IncrementPendingCount(ctx context.Context, userID string, delta int) error
}
