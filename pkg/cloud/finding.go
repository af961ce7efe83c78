package cloud

import "time"

// Severity classifies how serious a security finding is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Valid reports whether s is one of the recognised severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// FindingStatus is the lifecycle state of a finding. Findings are never
// deleted, they only transition between statuses.
type FindingStatus string

const (
	FindingOpen       FindingStatus = "open"
	FindingInProgress FindingStatus = "in-progress"
	FindingResolved   FindingStatus = "resolved"
	FindingDismissed  FindingStatus = "dismissed"
)

func (s FindingStatus) Valid() bool {
	switch s {
	case FindingOpen, FindingInProgress, FindingResolved, FindingDismissed:
		return true
	}
	return false
}

// SecurityFinding is a single detected security or compliance issue.
type SecurityFinding struct {
	ID           string        `json:"id" storm:"id" db:"id" dynamodbav:"id"`
	Title        string        `json:"title" db:"title" dynamodbav:"title"`
	Description  string        `json:"description" db:"description" dynamodbav:"description"`
	Severity     Severity      `json:"severity" db:"severity" dynamodbav:"severity"`
	ResourceID   string        `json:"resourceId" db:"resource_id" dynamodbav:"resourceId"`
	ResourceType ResourceType  `json:"resourceType" db:"resource_type" dynamodbav:"resourceType"`
	DetectedAt   time.Time     `json:"detectedAt" db:"detected_at" dynamodbav:"detectedAt"`
	Status       FindingStatus `json:"status" db:"status" dynamodbav:"status"`
	Remediation  string        `json:"remediation" db:"remediation" dynamodbav:"remediation"`
}

// SeverityBreakdown counts open findings per severity.
type SeverityBreakdown struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// ComplianceSummary is derived from the current finding set on every
// request; it has no persisted identity.
type ComplianceSummary struct {
	Score     int               `json:"score"`
	Grade     string            `json:"grade"`
	Breakdown SeverityBreakdown `json:"breakdown"`
}
