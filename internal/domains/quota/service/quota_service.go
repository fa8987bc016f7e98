package service

import (
	"context"

	"pvadb-backend/internal/domains/quota"

	"github.com/rs/zerolog/log"
)

type quotaServiceImpl struct {
	trustRepo quota.TrustRepository
	counter   quota.CounterStore
}

func NewQuotaService(trustRepo quota.TrustRepository, counter quota.CounterStore) quota.Service {
	return &quotaServiceImpl{
		trustRepo: trustRepo,
		counter:   counter,
	}
}

// ResolveTrustLevel maps an identity to a tier using two signals: the admin
// role and the count of historically approved submissions.
//
// Failure policy: every lookup error degrades to New and is logged. An
// outage must never hand out a higher tier than the caller has earned.
func (s *quotaServiceImpl) ResolveTrustLevel(ctx context.Context, userID string) quota.TrustLevel {
	if userID == "" {
		return quota.TrustLevelNew
	}

	isAdmin, err := s.trustRepo.HasAdminRole(ctx, userID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("admin role lookup failed, degrading to new tier")
		return quota.TrustLevelNew
	}
	if isAdmin {
		// Admins are maximally trusted for quota purposes, independent of
		// the separate isAdmin bypass in CheckSubmissionLimits
		return quota.TrustLevelVerified
	}

	approved, err := s.trustRepo.CountApprovedSubmissions(ctx, userID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("approved submission count lookup failed, degrading to new tier")
		return quota.TrustLevelNew
	}

	switch {
	case approved >= quota.VerifiedApprovalThreshold:
		return quota.TrustLevelVerified
	case approved >= quota.TrustedApprovalThreshold:
		return quota.TrustLevelTrusted
	default:
		return quota.TrustLevelNew
	}
}

// CheckSubmissionLimits answers "may this identity submit requestedCount
// more items in this mode?". No side effects: the counter is only read,
// never written, so repeated checks return identical results until the
// caller records an accepted submission.
func (s *quotaServiceImpl) CheckSubmissionLimits(ctx context.Context, userID string, isAdmin, isBulkUpload bool, requestedCount int) quota.Decision {
	if requestedCount < 0 {
		requestedCount = 0
	}

	// Admin bypass, checked first and unconditionally. Administrators are
	// never blocked by the quota subsystem, even when trust resolution
	// would fail. No lookups, no counter reads.
	if isAdmin {
		return quota.Decision{
			Allowed:          true,
			RemainingAllowed: quota.Unlimited,
			MaxAllowed:       quota.Unlimited,
			TrustLevel:       quota.TrustLevelVerified,
		}
	}

	// Anonymous callers are stateless: New-tier limits, no persisted
	// counter lookup, consumed count is implicitly zero.
	level := quota.TrustLevelNew
	pending := 0
	if userID != "" {
		level = s.ResolveTrustLevel(ctx, userID)
		pending = s.counter.GetPendingCount(ctx, userID)
	}

	limits := quota.LimitsFor(false, level)
	limit := limits.ForMode(isBulkUpload)

	// RemainingAllowed reports what would be left once this request is
	// consumed, so a caller granted the last unit sees 0 remaining.
	return quota.Decision{
		Allowed:          withinLimit(requestedCount, remaining(limit, pending)),
		RemainingAllowed: remaining(limit, pending+requestedCount),
		MaxAllowed:       limit,
		TrustLevel:       level,
	}
}

func (s *quotaServiceImpl) GetPendingCount(ctx context.Context, userID string) int {
	return s.counter.GetPendingCount(ctx, userID)
}

func (s *quotaServiceImpl) IncrementPendingCount(ctx context.Context, userID string, delta int) error {
	return s.counter.IncrementPendingCount(ctx, userID, delta)
}

func withinLimit(requested int, limit quota.Limit) bool {
	if limit.IsUnlimited() {
		return true
	}
	return requested <= int(limit)
}

func remaining(limit quota.Limit, consumed int) quota.Limit {
	if limit.IsUnlimited() {
		return quota.Unlimited
	}
	left := int(limit) - consumed
	if left < 0 {
		left = 0
	}
	return quota.Limit(left)
}
