// Package compliance converts a set of security findings into a 0-100
// compliance score with a letter grade.
package compliance

import "github.com/cloudgov/console/pkg/cloud"

// per-severity penalties subtracted from a base score of 100
const (
	criticalPenalty = 15
	highPenalty     = 8
	mediumPenalty   = 3
	lowPenalty      = 1
)

// Score computes the compliance posture from the current finding set.
// Only open findings count towards the score; findings in any other
// status carry no penalty. An empty finding set scores 100 / A.
func Score(findings []cloud.SecurityFinding) cloud.ComplianceSummary {
	var b cloud.SeverityBreakdown

	for _, f := range findings {
		if f.Status != cloud.FindingOpen {
			continue
		}
		switch f.Severity {
		case cloud.SeverityCritical:
			b.Critical++
		case cloud.SeverityHigh:
			b.High++
		case cloud.SeverityMedium:
			b.Medium++
		case cloud.SeverityLow:
			b.Low++
		}
	}

	score := 100 - criticalPenalty*b.Critical - highPenalty*b.High - mediumPenalty*b.Medium - lowPenalty*b.Low
	if score < 0 {
		score = 0
	}

	return cloud.ComplianceSummary{
		Score:     score,
		Grade:     grade(score),
		Breakdown: b,
	}
}

// grade maps a score onto a letter grade. Boundaries are inclusive on
// the lower end: exactly 90 is an A, exactly 89 a B.
func grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
