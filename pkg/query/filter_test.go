package query

import (
	"strconv"
	"testing"

	"github.com/cloudgov/console/pkg/cloud"
	"github.com/stretchr/testify/assert"
)

func findingFixture() []cloud.SecurityFinding {
	return []cloud.SecurityFinding{
		{ID: "f-1", Title: "S3 bucket public", Severity: cloud.SeverityCritical, Status: cloud.FindingOpen},
		{ID: "f-2", Title: "Root account MFA disabled", Severity: cloud.SeverityHigh, Status: cloud.FindingOpen},
		{ID: "f-3", Title: "Unencrypted EBS volume", Severity: cloud.SeverityMedium, Status: cloud.FindingResolved},
		{ID: "f-4", Title: "Old access key", Description: "key unrotated for 120 days", Severity: cloud.SeverityHigh, Status: cloud.FindingDismissed},
	}
}

func TestFindingFilter_NoFiltersIsIdentity(t *testing.T) {
	findings := findingFixture()
	got := FindingFilter{}.Apply(findings)
	assert.Equal(t, findings, got)
}

func TestFindingFilter_PredicatesAreANDed(t *testing.T) {
	got := FindingFilter{Severity: cloud.SeverityHigh, Status: cloud.FindingOpen}.Apply(findingFixture())
	assert.Len(t, got, 1)
	assert.Equal(t, "f-2", got[0].ID)
}

func TestFindingFilter_SearchIsCaseInsensitive(t *testing.T) {
	got := FindingFilter{Search: "UNROTATED"}.Apply(findingFixture())
	assert.Len(t, got, 1)
	assert.Equal(t, "f-4", got[0].ID)
}

func TestResourceFilter(t *testing.T) {
	resources := []cloud.AWSResource{
		{ID: "r-1", Name: "web-server", Type: cloud.ResourceEC2, Region: "us-east-1", Status: cloud.StatusRunning, Owner: "platform-team"},
		{ID: "r-2", Name: "assets-bucket", Type: cloud.ResourceS3, Region: "us-east-1", Status: cloud.StatusRunning, Owner: "frontend"},
		{ID: "r-3", Name: "batch-worker", Type: cloud.ResourceEC2, Region: "eu-west-1", Status: cloud.StatusStopped, Owner: "Platform-Team"},
	}

	got := ResourceFilter{Type: "EC2"}.Apply(resources)
	assert.Len(t, got, 2, "resource type matching is case-insensitive")

	got = ResourceFilter{Type: "ec2", Region: "us-east-1"}.Apply(resources)
	assert.Len(t, got, 1)
	assert.Equal(t, "r-1", got[0].ID)

	got = ResourceFilter{Owner: "platform"}.Apply(resources)
	assert.Len(t, got, 2, "owner matching is a case-insensitive substring")

	got = ResourceFilter{Search: "bucket"}.Apply(resources)
	assert.Len(t, got, 1)
	assert.Equal(t, "r-2", got[0].ID)
}

func TestRoleFilter_RiskBuckets(t *testing.T) {
	roles := []cloud.IAMRole{
		{Name: "admin-role", RiskScore: 80},
		{Name: "deploy-role", RiskScore: 40},
		{Name: "readonly-role", RiskScore: 10},
	}

	got := RoleFilter{RiskLevel: cloud.RiskHigh}.Apply(roles)
	assert.Len(t, got, 1)
	assert.Equal(t, "admin-role", got[0].Name)

	got = RoleFilter{RiskLevel: cloud.RiskMedium}.Apply(roles)
	assert.Len(t, got, 1)
	assert.Equal(t, "deploy-role", got[0].Name)
}

func TestRoleFilter_SearchCoversTrustedEntities(t *testing.T) {
	roles := []cloud.IAMRole{
		{Name: "pipeline", TrustedEntities: []string{"codebuild.amazonaws.com"}},
		{Name: "app", TrustedEntities: []string{"ec2.amazonaws.com"}},
	}

	got := RoleFilter{Search: "codebuild"}.Apply(roles)
	assert.Len(t, got, 1)
	assert.Equal(t, "pipeline", got[0].Name)
}

func TestUserFilter(t *testing.T) {
	users := []cloud.IAMUser{
		{Username: "alice", Email: "alice@example.com", AccessLevel: cloud.AccessAdmin, RiskScore: 90},
		{Username: "bob", Email: "bob@example.com", AccessLevel: cloud.AccessReadOnly, RiskScore: 5},
	}

	got := UserFilter{AccessLevel: cloud.AccessAdmin}.Apply(users)
	assert.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Username)

	got = UserFilter{Search: "BOB@"}.Apply(users)
	assert.Len(t, got, 1)
	assert.Equal(t, "bob", got[0].Username)
}

func TestPage_Bounds(t *testing.T) {
	items := make([]string, 10)
	for i := range items {
		items[i] = strconv.Itoa(i)
	}

	start, end := Page{Offset: 5, Limit: 3}.Bounds(len(items))
	assert.Equal(t, []string{"5", "6", "7"}, items[start:end])

	// offset past the end yields an empty window
	start, end = Page{Offset: 20, Limit: 3}.Bounds(len(items))
	assert.Equal(t, start, end)

	// limit past the end is clamped
	start, end = Page{Offset: 8, Limit: 50}.Bounds(len(items))
	assert.Equal(t, []string{"8", "9"}, items[start:end])
}
