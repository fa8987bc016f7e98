package service

import (
	"context"
	"errors"
	"testing"

	"pvadb-backend/internal/domains/quota"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTrustRepo lets each test script the two remote signals
type fakeTrustRepo struct {
	isAdmin       bool
	adminErr      error
	approvedCount int
	approvedErr   error

	adminCalls    int
	approvedCalls int
}

func (f *fakeTrustRepo) HasAdminRole(ctx context.Context, userID string) (bool, error) {
	f.adminCalls++
	return f.isAdmin, f.adminErr
}

func (f *fakeTrustRepo) CountApprovedSubmissions(ctx context.Context, userID string) (int, error) {
	f.approvedCalls++
	return f.approvedCount, f.approvedErr
}

// fakeCounter is an in-memory CounterStore
type fakeCounter struct {
	counts map[string]int
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: make(map[string]int)}
}

func (f *fakeCounter) GetPendingCount(ctx context.Context, userID string) int {
	return f.counts[userID]
}

func (f *fakeCounter) IncrementPendingCount(ctx context.Context, userID string, delta int) error {
	f.counts[userID] += delta
	return nil
}

func TestResolveTrustLevel_Anonymous(t *testing.T) {
	repo := &fakeTrustRepo{}
	svc := NewQuotaService(repo, newFakeCounter())

	level := svc.ResolveTrustLevel(context.Background(), "")

	assert.Equal(t, quota.TrustLevelNew, level)
	assert.Zero(t, repo.adminCalls, "anonymous resolution must not hit the store")
	assert.Zero(t, repo.approvedCalls)
}

func TestResolveTrustLevel_AdminRole(t *testing.T) {
	repo := &fakeTrustRepo{isAdmin: true}
	svc := NewQuotaService(repo, newFakeCounter())

	level := svc.ResolveTrustLevel(context.Background(), "user-1")

	assert.Equal(t, quota.TrustLevelVerified, level)
	assert.Zero(t, repo.approvedCalls, "admin short-circuits the approval count lookup")
}

func TestResolveTrustLevel_ByApprovalCount(t *testing.T) {
	tests := []struct {
		approved int
		want     quota.TrustLevel
	}{
		{0, quota.TrustLevelNew},
		{2, quota.TrustLevelNew},
		{3, quota.TrustLevelTrusted},
		{9, quota.TrustLevelTrusted},
		{10, quota.TrustLevelVerified},
		{250, quota.TrustLevelVerified},
	}

	for _, tt := range tests {
		repo := &fakeTrustRepo{approvedCount: tt.approved}
		svc := NewQuotaService(repo, newFakeCounter())

		level := svc.ResolveTrustLevel(context.Background(), "user-1")

		assert.Equal(t, tt.want, level, "approved count %d", tt.approved)
	}
}

// Lookup failures must degrade to the most restrictive tier, never propagate
func TestResolveTrustLevel_FailsClosed(t *testing.T) {
	t.Run("admin role lookup error", func(t *testing.T) {
		repo := &fakeTrustRepo{adminErr: errors.New("connection refused"), approvedCount: 50}
		svc := NewQuotaService(repo, newFakeCounter())

		assert.Equal(t, quota.TrustLevelNew, svc.ResolveTrustLevel(context.Background(), "user-1"))
	})

	t.Run("approval count lookup error", func(t *testing.T) {
		repo := &fakeTrustRepo{approvedErr: errors.New("timeout")}
		svc := NewQuotaService(repo, newFakeCounter())

		assert.Equal(t, quota.TrustLevelNew, svc.ResolveTrustLevel(context.Background(), "user-1"))
	})
}

func TestCheckSubmissionLimits_AdminBypass(t *testing.T) {
	// Resolution would fail hard here; the bypass must never notice
	repo := &fakeTrustRepo{adminErr: errors.New("db down"), approvedErr: errors.New("db down")}
	svc := NewQuotaService(repo, newFakeCounter())

	for _, requested := range []int{0, 1, 100, 1_000_000} {
		d := svc.CheckSubmissionLimits(context.Background(), "admin-1", true, true, requested)

		assert.True(t, d.Allowed)
		assert.Equal(t, quota.Unlimited, d.RemainingAllowed)
		assert.Equal(t, quota.Unlimited, d.MaxAllowed)
		assert.Equal(t, quota.TrustLevelVerified, d.TrustLevel)
	}

	assert.Zero(t, repo.adminCalls, "admin bypass must not resolve trust")
	assert.Zero(t, repo.approvedCalls)
}

func TestCheckSubmissionLimits_Anonymous(t *testing.T) {
	svc := NewQuotaService(&fakeTrustRepo{}, newFakeCounter())
	ctx := context.Background()

	d := svc.CheckSubmissionLimits(ctx, "", false, false, 3)
	assert.True(t, d.Allowed)
	assert.Equal(t, quota.Limit(0), d.RemainingAllowed)
	assert.Equal(t, quota.Limit(3), d.MaxAllowed)
	assert.Equal(t, quota.TrustLevelNew, d.TrustLevel)

	d = svc.CheckSubmissionLimits(ctx, "", false, false, 4)
	assert.False(t, d.Allowed)
}

func TestCheckSubmissionLimits_NewTierConsumesQuota(t *testing.T) {
	repo := &fakeTrustRepo{} // zero approvals → New
	counter := newFakeCounter()
	counter.counts["user-1"] = 2
	svc := NewQuotaService(repo, counter)
	ctx := context.Background()

	// 2 of 3 consumed: one more fits, two more do not
	d := svc.CheckSubmissionLimits(ctx, "user-1", false, false, 1)
	assert.True(t, d.Allowed)
	assert.Equal(t, quota.Limit(0), d.RemainingAllowed)
	assert.Equal(t, quota.Limit(3), d.MaxAllowed)

	d = svc.CheckSubmissionLimits(ctx, "user-1", false, false, 2)
	assert.False(t, d.Allowed)
}

func TestCheckSubmissionLimits_VerifiedBulkCap(t *testing.T) {
	repo := &fakeTrustRepo{approvedCount: 25}
	svc := NewQuotaService(repo, newFakeCounter())
	ctx := context.Background()

	// Single uploads are uncapped for verified contributors
	d := svc.CheckSubmissionLimits(ctx, "user-1", false, false, 500)
	assert.True(t, d.Allowed)
	assert.Equal(t, quota.Unlimited, d.MaxAllowed)

	// Bulk keeps its ceiling regardless of tier
	d = svc.CheckSubmissionLimits(ctx, "user-1", false, true, 20)
	assert.True(t, d.Allowed)
	assert.Equal(t, quota.Limit(20), d.MaxAllowed)

	d = svc.CheckSubmissionLimits(ctx, "user-1", false, true, 21)
	assert.False(t, d.Allowed)
}

// The check has no side effects: without increments, repeated calls are
// identical
func TestCheckSubmissionLimits_Idempotent(t *testing.T) {
	repo := &fakeTrustRepo{approvedCount: 5}
	counter := newFakeCounter()
	counter.counts["user-1"] = 4
	svc := NewQuotaService(repo, counter)
	ctx := context.Background()

	first := svc.CheckSubmissionLimits(ctx, "user-1", false, false, 2)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, svc.CheckSubmissionLimits(ctx, "user-1", false, false, 2))
	}
	assert.Equal(t, 4, counter.counts["user-1"], "check must not touch the counter")
}

// Quota shrinks as the caller records accepted submissions
func TestCheckSubmissionLimits_CheckThenRecordCycle(t *testing.T) {
	repo := &fakeTrustRepo{} // New tier, limit 3
	svc := NewQuotaService(repo, newFakeCounter())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d := svc.CheckSubmissionLimits(ctx, "user-1", false, false, 1)
		require.True(t, d.Allowed, "submission %d should be allowed", i+1)
		require.NoError(t, svc.IncrementPendingCount(ctx, "user-1", 1))
	}

	d := svc.CheckSubmissionLimits(ctx, "user-1", false, false, 1)
	assert.False(t, d.Allowed, "fourth submission must be denied")
	assert.Equal(t, quota.Limit(0), d.RemainingAllowed)
	assert.Equal(t, 3, svc.GetPendingCount(ctx, "user-1"))
}

func TestCheckSubmissionLimits_NegativeRequestedTreatedAsZero(t *testing.T) {
	svc := NewQuotaService(&fakeTrustRepo{}, newFakeCounter())

	d := svc.CheckSubmissionLimits(context.Background(), "user-1", false, false, -5)

	assert.True(t, d.Allowed)
	assert.Equal(t, quota.Limit(3), d.RemainingAllowed)
}
