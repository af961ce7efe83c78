package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cloudgov/console/api/io"
	"github.com/cloudgov/console/pkg/cloud"
	"github.com/cloudgov/console/pkg/demo"
	"github.com/cloudgov/console/pkg/iamrisk"
	"github.com/cloudgov/console/pkg/query"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultIAMLimit = 100

// ListRoles returns IAM roles filtered by riskLevel and search.
func (h *Handlers) ListRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := query.RoleFilter{Search: q.Get("search")}
	if v := q.Get("riskLevel"); v != "" {
		level := cloud.RiskLevel(v)
		if !level.Valid() {
			io.RespondError(ctx, h.Log, w, badParam("risk level", v))
			return
		}
		filter.RiskLevel = level
	}

	page, err := parsePage(r, defaultIAMLimit)
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	h.simulateLatency(r)

	roles, err := h.listRoles(r)
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	filtered := filter.Apply(roles)
	start, end := page.Bounds(len(filtered))

	io.RespondList(ctx, h.Log, w, filtered[start:end], io.ListMetadata{
		Total:  len(filtered),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// listRoles reads the role collection: the store in demo mode, the real
// account otherwise.
func (h *Handlers) listRoles(r *http.Request) ([]cloud.IAMRole, error) {
	if !h.Demo && h.Inventory != nil {
		return h.Inventory.Roles(r.Context())
	}
	return h.Roles.List()
}

func (h *Handlers) GetRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roleName := chi.URLParam(r, "roleName")

	h.simulateLatency(r)

	role, err := h.Roles.Get(roleName)
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}
	if role == nil {
		io.RespondNotFound(ctx, h.Log, w, "role")
		return
	}

	io.Respond(ctx, h.Log, w, role, http.StatusOK)
}

type createRoleBody struct {
	Name                string            `json:"name"`
	Description         string            `json:"description"`
	PolicyIDs           []string          `json:"policyIds"`
	PermissionsBoundary string            `json:"permissionsBoundary"`
	TrustedEntities     []string          `json:"trustedEntities"`
	Tags                map[string]string `json:"tags"`
}

// CreateRole registers a role and scores it. The risk score is computed
// here, once, and stored on the record.
func (h *Handlers) CreateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var b createRoleBody
	if err := io.DecodeJSONBody(w, r, &b); err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	if b.Name == "" {
		io.RespondError(ctx, h.Log, w, io.NewRequestError(errors.New("role name must not be empty"), http.StatusBadRequest))
		return
	}

	attached := []cloud.IAMPolicy{}
	for _, id := range b.PolicyIDs {
		p, err := h.Policies.Get(id)
		if err != nil {
			io.RespondError(ctx, h.Log, w, err)
			return
		}
		if p == nil {
			io.RespondError(ctx, h.Log, w, io.NewRequestError(errors.Errorf("unknown policy %q", id), http.StatusBadRequest))
			return
		}
		attached = append(attached, *p)
	}

	score, overly := iamrisk.RoleRisk(attached, b.PermissionsBoundary != "")

	tags := b.Tags
	if tags == nil {
		tags = map[string]string{}
	}
	trusted := b.TrustedEntities
	if trusted == nil {
		trusted = []string{}
	}

	role := cloud.IAMRole{
		ARN:                 fmt.Sprintf("arn:aws:iam::%s:role/%s", demo.AccountID, b.Name),
		Name:                b.Name,
		Description:         b.Description,
		CreatedAt:           time.Now().UTC(),
		Policies:            attached,
		InlinePolicies:      []cloud.IAMPolicy{},
		IsOverlyPermissive:  overly,
		TrustedEntities:     trusted,
		PermissionsBoundary: b.PermissionsBoundary,
		Tags:                tags,
		RiskScore:           score,
	}

	if err := h.Roles.Add(role); err != nil {
		io.RespondError(ctx, h.Log, w, io.NewRequestError(err, http.StatusBadRequest))
		return
	}

	h.Log.With("role", role.Name, "riskScore", role.RiskScore).Info("created role")
	io.Respond(ctx, h.Log, w, role, http.StatusCreated)
}

// ListUsers returns IAM users filtered by accessLevel, riskLevel and
// search.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := query.UserFilter{Search: q.Get("search")}
	if v := q.Get("accessLevel"); v != "" {
		level := cloud.AccessLevel(v)
		if !level.Valid() {
			io.RespondError(ctx, h.Log, w, badParam("access level", v))
			return
		}
		filter.AccessLevel = level
	}
	if v := q.Get("riskLevel"); v != "" {
		level := cloud.RiskLevel(v)
		if !level.Valid() {
			io.RespondError(ctx, h.Log, w, badParam("risk level", v))
			return
		}
		filter.RiskLevel = level
	}

	page, err := parsePage(r, defaultIAMLimit)
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	h.simulateLatency(r)

	users, err := h.Users.List()
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	filtered := filter.Apply(users)
	start, end := page.Bounds(len(filtered))

	io.RespondList(ctx, h.Log, w, filtered[start:end], io.ListMetadata{
		Total:  len(filtered),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

type createUserBody struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	AccessLevel string   `json:"accessLevel"`
	MFAEnabled  bool     `json:"mfaEnabled"`
	Roles       []string `json:"roles"`
}

// CreateUser registers a user, scoring them from access level and MFA
// status at creation time.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var b createUserBody
	if err := io.DecodeJSONBody(w, r, &b); err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	if b.Username == "" {
		io.RespondError(ctx, h.Log, w, io.NewRequestError(errors.New("username must not be empty"), http.StatusBadRequest))
		return
	}
	level := cloud.AccessLevel(b.AccessLevel)
	if !level.Valid() {
		io.RespondError(ctx, h.Log, w, badParam("access level", b.AccessLevel))
		return
	}

	roles := b.Roles
	if roles == nil {
		roles = []string{}
	}

	user := cloud.IAMUser{
		ID:           uuid.NewString(),
		Username:     b.Username,
		ARN:          fmt.Sprintf("arn:aws:iam::%s:user/%s", demo.AccountID, b.Username),
		Email:        b.Email,
		Roles:        roles,
		Permissions:  []string{},
		MFAEnabled:   b.MFAEnabled,
		LastActivity: time.Now().UTC(),
		AccessLevel:  level,
		RiskScore:    iamrisk.UserRisk(level, b.MFAEnabled),
	}

	if err := h.Users.Add(user); err != nil {
		io.RespondError(ctx, h.Log, w, io.NewRequestError(err, http.StatusBadRequest))
		return
	}

	h.Log.With("user", user.Username, "riskScore", user.RiskScore).Info("created user")
	io.Respond(ctx, h.Log, w, user, http.StatusCreated)
}

func (h *Handlers) ListPolicies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.simulateLatency(r)

	policies, err := h.Policies.List()
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	io.Respond(ctx, h.Log, w, policies, http.StatusOK)
}
