// Package query applies dashboard filter parameters to in-memory
// collections. Filters are ANDed together; a zero-valued field is an
// absent parameter and matches everything. Relative order of the input
// is always preserved.
package query

import (
	"strings"

	"github.com/cloudgov/console/pkg/cloud"
	"github.com/cloudgov/console/pkg/iamrisk"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// FindingFilter selects security findings.
type FindingFilter struct {
	Severity cloud.Severity
	Status   cloud.FindingStatus
	Search   string
}

func (f FindingFilter) Apply(findings []cloud.SecurityFinding) []cloud.SecurityFinding {
	out := []cloud.SecurityFinding{}
	for _, fd := range findings {
		if f.Severity != "" && fd.Severity != f.Severity {
			continue
		}
		if f.Status != "" && fd.Status != f.Status {
			continue
		}
		if f.Search != "" && !containsFold(fd.Title, f.Search) && !containsFold(fd.Description, f.Search) {
			continue
		}
		out = append(out, fd)
	}
	return out
}

// ResourceFilter selects inventory resources.
type ResourceFilter struct {
	Type   string
	Region string
	Status cloud.ResourceStatus
	Owner  string
	Search string
}

func (f ResourceFilter) Apply(resources []cloud.AWSResource) []cloud.AWSResource {
	out := []cloud.AWSResource{}
	for _, r := range resources {
		if f.Type != "" && !strings.EqualFold(string(r.Type), f.Type) {
			continue
		}
		if f.Region != "" && r.Region != f.Region {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Owner != "" && !containsFold(r.Owner, f.Owner) {
			continue
		}
		if f.Search != "" && !containsFold(r.Name, f.Search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// RoleFilter selects IAM roles.
type RoleFilter struct {
	RiskLevel cloud.RiskLevel
	Search    string
}

func (f RoleFilter) Apply(roles []cloud.IAMRole) []cloud.IAMRole {
	out := []cloud.IAMRole{}
	for _, r := range roles {
		if f.RiskLevel != "" && iamrisk.Level(r.RiskScore) != f.RiskLevel {
			continue
		}
		if f.Search != "" && !roleMatches(r, f.Search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func roleMatches(r cloud.IAMRole, search string) bool {
	if containsFold(r.Name, search) || containsFold(r.Description, search) {
		return true
	}
	for _, e := range r.TrustedEntities {
		if containsFold(e, search) {
			return true
		}
	}
	return false
}

// UserFilter selects IAM users.
type UserFilter struct {
	AccessLevel cloud.AccessLevel
	RiskLevel   cloud.RiskLevel
	Search      string
}

func (f UserFilter) Apply(users []cloud.IAMUser) []cloud.IAMUser {
	out := []cloud.IAMUser{}
	for _, u := range users {
		if f.AccessLevel != "" && u.AccessLevel != f.AccessLevel {
			continue
		}
		if f.RiskLevel != "" && iamrisk.Level(u.RiskScore) != f.RiskLevel {
			continue
		}
		if f.Search != "" && !containsFold(u.Username, f.Search) && !containsFold(u.Email, f.Search) {
			continue
		}
		out = append(out, u)
	}
	return out
}
