package quota

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitsFor(t *testing.T) {
	tests := []struct {
		name       string
		isAdmin    bool
		level      TrustLevel
		wantSingle Limit
		wantBulk   Limit
		wantLimits bool
	}{
		{"new tier", false, TrustLevelNew, 3, 3, true},
		{"trusted tier", false, TrustLevelTrusted, 10, 10, true},
		{"verified tier", false, TrustLevelVerified, Unlimited, 20, true},
		{"admin ignores new", true, TrustLevelNew, Unlimited, Unlimited, false},
		{"admin ignores verified", true, TrustLevelVerified, Unlimited, Unlimited, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits := LimitsFor(tt.isAdmin, tt.level)
			assert.Equal(t, tt.wantSingle, limits.SingleLimit)
			assert.Equal(t, tt.wantBulk, limits.BulkLimit)
			assert.Equal(t, tt.wantLimits, limits.HasLimits)
		})
	}
}

// Bulk must never be more permissive than single for any non-admin tier
func TestLimitsFor_BulkNeverExceedsSingle(t *testing.T) {
	for _, level := range []TrustLevel{TrustLevelNew, TrustLevelTrusted, TrustLevelVerified} {
		limits := LimitsFor(false, level)
		if limits.SingleLimit.IsUnlimited() {
			continue // verified case: uncapped single, capped bulk
		}
		assert.LessOrEqual(t, int(limits.BulkLimit), int(limits.SingleLimit),
			"tier %s: bulk limit exceeds single limit", level)
	}
}

func TestLimitsForMode(t *testing.T) {
	limits := LimitsFor(false, TrustLevelVerified)

	assert.Equal(t, Unlimited, limits.ForMode(false))
	assert.Equal(t, Limit(20), limits.ForMode(true))
}

func TestTrustLevelOrdering(t *testing.T) {
	assert.Less(t, int(TrustLevelNew), int(TrustLevelTrusted))
	assert.Less(t, int(TrustLevelTrusted), int(TrustLevelVerified))
}

func TestTrustLevelString(t *testing.T) {
	assert.Equal(t, "new", TrustLevelNew.String())
	assert.Equal(t, "trusted", TrustLevelTrusted.String())
	assert.Equal(t, "verified", TrustLevelVerified.String())
}

func TestLimitJSON(t *testing.T) {
	data, err := json.Marshal(Limit(20))
	require.NoError(t, err)
	assert.Equal(t, "20", string(data))

	data, err = json.Marshal(Unlimited)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestDecisionJSON(t *testing.T) {
	d := Decision{
		Allowed:          true,
		RemainingAllowed: Unlimited,
		MaxAllowed:       Unlimited,
		TrustLevel:       TrustLevelVerified,
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"allowed": true,
		"remaining_allowed": null,
		"max_allowed": null,
		"trust_level": "verified"
	}`, string(data))
}
