// Package iamrisk scores how permissive an IAM role or user's access is.
// Scores are computed once when a record is created and stored on it;
// they are not recomputed if the underlying policies or MFA state change.
package iamrisk

import "github.com/cloudgov/console/pkg/cloud"

const (
	highRiskPolicyWeight = 40
	policyWeight         = 10
	boundaryDiscount     = 20

	adminBase     = 70
	powerUserBase = 40
	readOnlyBase  = 15

	mfaDiscount  = 15
	noMFAPenalty = 20
	scoreFloor   = 5
)

// RoleRisk scores a role from its attached policies and whether a
// permissions boundary is set. The score is not capped after the policy
// summation, so a role with several high-risk policies can score above
// 100; only the post-boundary floor at 0 is applied. Callers rely on
// scores above 100 being possible.
func RoleRisk(policies []cloud.IAMPolicy, hasBoundary bool) (score int, overlyPermissive bool) {
	for _, p := range policies {
		if p.IsHighRisk {
			score += highRiskPolicyWeight
			overlyPermissive = true
		} else {
			score += policyWeight
		}
	}

	if hasBoundary {
		score -= boundaryDiscount
		if score < 0 {
			score = 0
		}
	}

	return score, overlyPermissive
}

// UserRisk scores a user from their access level and MFA status.
func UserRisk(level cloud.AccessLevel, mfaEnabled bool) int {
	var base int
	switch level {
	case cloud.AccessAdmin:
		base = adminBase
	case cloud.AccessPowerUser:
		base = powerUserBase
	case cloud.AccessReadOnly:
		base = readOnlyBase
	}

	if mfaEnabled {
		score := base - mfaDiscount
		if score < scoreFloor {
			score = scoreFloor
		}
		return score
	}
	return base + noMFAPenalty
}

// Level buckets a risk score for filtering. The thresholds apply
// uniformly to roles and users.
func Level(score int) cloud.RiskLevel {
	switch {
	case score >= 60:
		return cloud.RiskHigh
	case score >= 30:
		return cloud.RiskMedium
	default:
		return cloud.RiskLow
	}
}
