package cloud

import "time"

// AccessLevel is the coarse permission tier granted to an IAM user.
type AccessLevel string

const (
	AccessAdmin     AccessLevel = "admin"
	AccessPowerUser AccessLevel = "power-user"
	AccessReadOnly  AccessLevel = "read-only"
)

func (a AccessLevel) Valid() bool {
	switch a {
	case AccessAdmin, AccessPowerUser, AccessReadOnly:
		return true
	}
	return false
}

// RiskLevel buckets a numeric risk score for filtering.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskHigh, RiskMedium, RiskLow:
		return true
	}
	return false
}

// PolicyType distinguishes AWS managed policies from customer managed ones.
type PolicyType string

const (
	PolicyAWSManaged      PolicyType = "AWS Managed"
	PolicyCustomerManaged PolicyType = "Customer Managed"
)

type PolicyStatement struct {
	Sid      string   `json:"Sid,omitempty"`
	Effect   string   `json:"Effect"`
	Action   []string `json:"Action"`
	Resource []string `json:"Resource"`
}

type PolicyDocument struct {
	Version   string            `json:"Version"`
	Statement []PolicyStatement `json:"Statement"`
}

// IAMPolicy is a managed policy. IsHighRisk is assigned per policy for
// administrator or power-user equivalent policies; it is not derived from
// the policy document.
type IAMPolicy struct {
	ID                 string         `json:"id" storm:"id"`
	Name               string         `json:"name"`
	Type               PolicyType     `json:"type"`
	Document           PolicyDocument `json:"document"`
	AttachedRolesCount int            `json:"attachedRolesCount"`
	IsHighRisk         bool           `json:"isHighRisk"`
}

// IAMRole carries its risk score as computed at creation time. The score
// is not recomputed if attached policies change afterwards.
type IAMRole struct {
	ARN                 string            `json:"arn"`
	Name                string            `json:"name" storm:"id"`
	Description         string            `json:"description"`
	CreatedAt           time.Time         `json:"createdAt"`
	LastUsed            *time.Time        `json:"lastUsed,omitempty"`
	Policies            []IAMPolicy       `json:"policies"`
	InlinePolicies      []IAMPolicy       `json:"inlinePolicies"`
	IsOverlyPermissive  bool              `json:"isOverlyPermissive"`
	TrustedEntities     []string          `json:"trustedEntities"`
	PermissionsBoundary string            `json:"permissionsBoundary,omitempty"`
	Tags                map[string]string `json:"tags"`
	RiskScore           int               `json:"riskScore"`
}

type IAMUser struct {
	ID           string      `json:"id" storm:"id"`
	Username     string      `json:"username"`
	ARN          string      `json:"arn"`
	Email        string      `json:"email"`
	Roles        []string    `json:"roles"`
	Permissions  []string    `json:"permissions"`
	MFAEnabled   bool        `json:"mfaEnabled"`
	LastActivity time.Time   `json:"lastActivity"`
	AccessLevel  AccessLevel `json:"accessLevel"`
	RiskScore    int         `json:"riskScore"`
}
