package quota

import "encoding/json"

// TrustLevel is a coarse contributor reputation tier derived from role and
// approval history. Ordered by privilege: New < Trusted < Verified.
type TrustLevel int

const (
	TrustLevelNew TrustLevel = iota
	TrustLevelTrusted
	TrustLevelVerified
)

func (t TrustLevel) String() string {
	switch t {
	case TrustLevelVerified:
		return "verified"
	case TrustLevelTrusted:
		return "trusted"
	default:
		return "new"
	}
}

func (t TrustLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Approval-count thresholds for promotion between tiers
const (
	TrustedApprovalThreshold  = 3
	VerifiedApprovalThreshold = 10
)

// Limit is a submission allowance. Unlimited marks tiers with no cap.
type Limit int

const Unlimited Limit = -1

func (l Limit) IsUnlimited() bool {
	return l < 0
}

// MarshalJSON serializes Unlimited as null so API clients do not have to
// know about the sentinel value.
func (l Limit) MarshalJSON() ([]byte, error) {
	if l.IsUnlimited() {
		return []byte("null"), nil
	}
	return json.Marshal(int(l))
}

// QuotaLimits is the per-tier submission allowance. Pure derivation from
// (isAdmin, trustLevel); no mutable state.
type QuotaLimits struct {
	SingleLimit Limit `json:"single_limit"`
	BulkLimit   Limit `json:"bulk_limit"`
	HasLimits   bool  `json:"has_limits"`
}

// LimitsFor derives the submission limits for an identity.
//
// Verified keeps a bulk ceiling even though single submissions are
// uncapped: bulk operations carry higher spam risk per action, so a cap is
// retained regardless of tier.
func LimitsFor(isAdmin bool, level TrustLevel) QuotaLimits {
	if isAdmin {
		return QuotaLimits{
			SingleLimit: Unlimited,
			BulkLimit:   Unlimited,
			HasLimits:   false,
		}
	}

	switch level {
	case TrustLevelVerified:
		return QuotaLimits{
			SingleLimit: Unlimited,
			BulkLimit:   20,
			HasLimits:   true,
		}
	case TrustLevelTrusted:
		return QuotaLimits{
			SingleLimit: 10,
			BulkLimit:   10,
			HasLimits:   true,
		}
	default:
		return QuotaLimits{
			SingleLimit: 3,
			BulkLimit:   3,
			HasLimits:   true,
		}
	}
}

// ForMode selects the limit for the requested upload mode
func (q QuotaLimits) ForMode(isBulkUpload bool) Limit {
	if isBulkUpload {
		return q.BulkLimit
	}
	return q.SingleLimit
}

// Decision is the outcome of a quota check. It is a normal return value,
// not an error: callers translate Allowed=false into a user-facing message.
type Decision struct {
	Allowed          bool       `json:"allowed"`
	RemainingAllowed Limit      `json:"remaining_allowed"`
	MaxAllowed       Limit      `json:"max_allowed"`
	TrustLevel       TrustLevel `json:"trust_level"`
}
