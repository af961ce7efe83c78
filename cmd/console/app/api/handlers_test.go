package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cloudgov/console/pkg/cloud"
	"github.com/cloudgov/console/pkg/storage"
	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Metadata *struct {
		Total  int `json:"total"`
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	} `json:"metadata"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

func testFindings() []cloud.SecurityFinding {
	detected := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []cloud.SecurityFinding{
		{ID: "finding-1", Title: "S3 bucket public", Severity: cloud.SeverityCritical, Status: cloud.FindingOpen, DetectedAt: detected},
		{ID: "finding-2", Title: "Root account used", Severity: cloud.SeverityHigh, Status: cloud.FindingOpen, DetectedAt: detected},
		{ID: "finding-3", Title: "Unencrypted volume", Severity: cloud.SeverityMedium, Status: cloud.FindingResolved, DetectedAt: detected},
	}
}

func testHandlers(t *testing.T) (*Handlers, *storage.InMemoryFindingStorage) {
	t.Helper()

	findings := storage.NewInMemoryFindingStorage()
	findings.Seed(testFindings())

	resources := storage.NewInMemoryResourceStorage([]cloud.AWSResource{
		{ID: "i-1", Name: "web-server", Type: cloud.ResourceEC2, Region: "us-east-1", Status: cloud.StatusRunning},
		{ID: "bucket-1", Name: "assets", Type: cloud.ResourceS3, Region: "eu-west-1", Status: cloud.StatusRunning},
	})

	policies := storage.NewInMemoryPolicyStorage([]cloud.IAMPolicy{
		{ID: "policy-admin", Name: "AdministratorAccess", IsHighRisk: true},
		{ID: "policy-read", Name: "ReadOnlyAccess"},
	})

	roles := storage.NewInMemoryRoleStorage([]cloud.IAMRole{
		{Name: "deploy", RiskScore: 30, TrustedEntities: []string{"codepipeline.amazonaws.com"}},
	})

	users := storage.NewInMemoryUserStorage([]cloud.IAMUser{
		{ID: "u-1", Username: "alice", AccessLevel: cloud.AccessAdmin, MFAEnabled: true, RiskScore: 55},
	})

	h := &Handlers{
		Log:       zap.NewNop().Sugar(),
		Findings:  findings,
		Resources: resources,
		Roles:     roles,
		Users:     users,
		Policies:  policies,
	}
	return h, findings
}

func testRouter(h *Handlers) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/resources", h.ListResources)
	router.Get("/resources/{resourceID}", h.GetResource)
	router.Route("/iam", func(r chi.Router) {
		r.Get("/roles", h.ListRoles)
		r.Post("/roles", h.CreateRole)
		r.Get("/roles/{roleName}", h.GetRole)
		r.Get("/users", h.ListUsers)
		r.Post("/users", h.CreateUser)
		r.Get("/policies", h.ListPolicies)
	})
	router.Route("/security", func(r chi.Router) {
		r.Get("/findings", h.ListFindings)
		r.Post("/findings", h.CreateFinding)
		r.Get("/findings/{findingID}", h.GetFinding)
		r.Put("/findings/{findingID}/status", h.SetFindingStatus)
		r.Get("/compliance", h.GetCompliance)
		r.Get("/export", h.ExportFindings)
	})
	return router
}

func doRequest(t *testing.T, router *chi.Mux, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var rdr *strings.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	} else {
		rdr = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return rr, env
}

func TestListFindings_FiltersBySeverity(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	rr, env := doRequest(t, router, "GET", "/security/findings?severity=critical", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.Success)
	require.NotNil(t, env.Metadata)
	assert.Equal(t, 1, env.Metadata.Total)
	assert.Equal(t, 100, env.Metadata.Limit)

	var got []cloud.SecurityFinding
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "finding-1", got[0].ID)
}

func TestListFindings_UnknownSeverityIsBadRequest(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	rr, env := doRequest(t, router, "GET", "/security/findings?severity=urgent", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "urgent")
}

func TestListFindings_TotalCountsBeforePagination(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	rr, env := doRequest(t, router, "GET", "/security/findings?limit=1&offset=1", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, env.Metadata)
	assert.Equal(t, 3, env.Metadata.Total)
	assert.Equal(t, 1, env.Metadata.Limit)
	assert.Equal(t, 1, env.Metadata.Offset)

	var got []cloud.SecurityFinding
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "finding-2", got[0].ID)
}

func TestListFindings_MalformedLimitIsBadRequest(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	rr, _ := doRequest(t, router, "GET", "/security/findings?limit=lots", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetFinding_NotFound(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	rr, env := doRequest(t, router, "GET", "/security/findings/finding-999", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, env.Error, "not found")
}

func TestCreateFinding(t *testing.T) {
	h, store := testHandlers(t)
	router := testRouter(h)

	body := `{"title":"IMDSv1 enabled","description":"instance metadata v1","severity":"high","resourceId":"i-1","resourceType":"ec2","remediation":"require IMDSv2"}`
	rr, env := doRequest(t, router, "POST", "/security/findings", body)

	require.Equal(t, http.StatusCreated, rr.Code)

	var got cloud.SecurityFinding
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.True(t, strings.HasPrefix(got.ID, "finding-"))
	assert.Equal(t, cloud.FindingOpen, got.Status)

	stored, err := store.Get(got.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "IMDSv1 enabled", stored.Title)
}

func TestCreateFinding_RejectsUnknownSeverity(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	body := `{"title":"bad","severity":"urgent"}`
	rr, _ := doRequest(t, router, "POST", "/security/findings", body)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSetFindingStatus(t *testing.T) {
	h, store := testHandlers(t)
	router := testRouter(h)

	rr, env := doRequest(t, router, "PUT", "/security/findings/finding-1/status", `{"status":"resolved"}`)

	require.Equal(t, http.StatusOK, rr.Code)

	var got cloud.SecurityFinding
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, cloud.FindingResolved, got.Status)

	stored, err := store.Get("finding-1")
	require.NoError(t, err)
	assert.Equal(t, cloud.FindingResolved, stored.Status)
}

func TestSetFindingStatus_UnknownFindingIs404(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	rr, _ := doRequest(t, router, "PUT", "/security/findings/finding-999/status", `{"status":"resolved"}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSetFindingStatus_UnknownStatusIsBadRequest(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	rr, _ := doRequest(t, router, "PUT", "/security/findings/finding-1/status", `{"status":"snoozed"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetCompliance(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	rr, env := doRequest(t, router, "GET", "/security/compliance", "")

	require.Equal(t, http.StatusOK, rr.Code)

	var got cloud.ComplianceSummary
	require.NoError(t, json.Unmarshal(env.Data, &got))
	// one open critical and one open high: 100 - 15 - 8
	assert.Equal(t, 77, got.Score)
	assert.Equal(t, "C", got.Grade)
	assert.Equal(t, 1, got.Breakdown.Critical)
	assert.Equal(t, 1, got.Breakdown.High)
	assert.Equal(t, 0, got.Breakdown.Medium)
}

func TestComplianceReflectsStatusChanges(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	doRequest(t, router, "PUT", "/security/findings/finding-1/status", `{"status":"dismissed"}`)
	_, env := doRequest(t, router, "GET", "/security/compliance", "")

	var got cloud.ComplianceSummary
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 92, got.Score)
	assert.Equal(t, "A", got.Grade)
}

func TestExportFindings_NotImplemented(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	rr, env := doRequest(t, router, "GET", "/security/export", "")

	assert.Equal(t, http.StatusNotImplemented, rr.Code)
	assert.Equal(t, "not implemented", env.Error)
}

func TestListResources_FiltersByTypeCaseInsensitive(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	rr, env := doRequest(t, router, "GET", "/resources?type=EC2", "")

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, env.Metadata)
	assert.Equal(t, 1, env.Metadata.Total)
	assert.Equal(t, 50, env.Metadata.Limit)

	var got []cloud.AWSResource
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "i-1", got[0].ID)
}

func TestGetResource_NotFound(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	rr, _ := doRequest(t, router, "GET", "/resources/i-404", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateRole_ScoresAtCreation(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	body := `{"name":"incident-response","description":"break glass","policyIds":["policy-admin","policy-read"],"trustedEntities":["sso.amazonaws.com"]}`
	rr, env := doRequest(t, router, "POST", "/iam/roles", body)

	require.Equal(t, http.StatusCreated, rr.Code)

	var got cloud.IAMRole
	require.NoError(t, json.Unmarshal(env.Data, &got))
	// one high-risk policy (40) plus one normal (10), no boundary
	assert.Equal(t, 50, got.RiskScore)
	assert.True(t, got.IsOverlyPermissive)
	assert.Contains(t, got.ARN, ":role/incident-response")

	_, env = doRequest(t, router, "GET", "/iam/roles/incident-response", "")
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 50, got.RiskScore)
}

func TestCreateRole_UnknownPolicyIsBadRequest(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	body := `{"name":"broken","policyIds":["policy-missing"]}`
	rr, env := doRequest(t, router, "POST", "/iam/roles", body)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, env.Error, "policy-missing")
}

func TestCreateRole_DuplicateNameIsBadRequest(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	body := `{"name":"deploy"}`
	rr, _ := doRequest(t, router, "POST", "/iam/roles", body)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListRoles_FiltersByRiskLevel(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	rr, env := doRequest(t, router, "GET", "/iam/roles?riskLevel=medium", "")

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, env.Metadata)
	assert.Equal(t, 1, env.Metadata.Total)
}

func TestCreateUser_ScoresFromAccessLevelAndMFA(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	body := `{"username":"frank","email":"frank@example.com","accessLevel":"power-user","mfaEnabled":false}`
	rr, env := doRequest(t, router, "POST", "/iam/users", body)

	require.Equal(t, http.StatusCreated, rr.Code)

	var got cloud.IAMUser
	require.NoError(t, json.Unmarshal(env.Data, &got))
	// power-user base 40, no MFA adds 20
	assert.Equal(t, 60, got.RiskScore)
	assert.NotEmpty(t, got.ID)
	assert.Contains(t, got.ARN, ":user/frank")
}

func TestCreateUser_UnknownAccessLevelIsBadRequest(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	body := `{"username":"frank","accessLevel":"superuser"}`
	rr, _ := doRequest(t, router, "POST", "/iam/users", body)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEnvelopeCarriesTimestamp(t *testing.T) {
	h, _ := testHandlers(t)
	router := testRouter(h)

	_, env := doRequest(t, router, "GET", "/iam/policies", "")

	_, err := time.Parse(time.RFC3339, env.Timestamp)
	assert.NoError(t, err)
}
