package api

import (
	"net/http"
	"time"

	"github.com/cloudgov/console/api/io"
	"github.com/cloudgov/console/pkg/cloud"
	"github.com/cloudgov/console/pkg/compliance"
	"github.com/cloudgov/console/pkg/crypto"
	"github.com/cloudgov/console/pkg/ingest"
	"github.com/cloudgov/console/pkg/query"
	"github.com/cloudgov/console/pkg/storage"
	"github.com/go-chi/chi"
	"github.com/pkg/errors"
)

const defaultFindingLimit = 100

// ListFindings returns security findings filtered by severity, status
// and search.
func (h *Handlers) ListFindings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := query.FindingFilter{Search: q.Get("search")}
	if v := q.Get("severity"); v != "" {
		sev := cloud.Severity(v)
		if !sev.Valid() {
			io.RespondError(ctx, h.Log, w, badParam("severity", v))
			return
		}
		filter.Severity = sev
	}
	if v := q.Get("status"); v != "" {
		status := cloud.FindingStatus(v)
		if !status.Valid() {
			io.RespondError(ctx, h.Log, w, badParam("status", v))
			return
		}
		filter.Status = status
	}

	page, err := parsePage(r, defaultFindingLimit)
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	h.simulateLatency(r)

	findings, err := h.Findings.List()
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	filtered := filter.Apply(findings)
	start, end := page.Bounds(len(filtered))

	io.RespondList(ctx, h.Log, w, filtered[start:end], io.ListMetadata{
		Total:  len(filtered),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

func (h *Handlers) GetFinding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	findingID := chi.URLParam(r, "findingID")

	h.simulateLatency(r)

	finding, err := h.Findings.Get(findingID)
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}
	if finding == nil {
		io.RespondNotFound(ctx, h.Log, w, "finding")
		return
	}

	io.Respond(ctx, h.Log, w, finding, http.StatusOK)
}

type createFindingBody struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Severity     string `json:"severity"`
	ResourceID   string `json:"resourceId"`
	ResourceType string `json:"resourceType"`
	Remediation  string `json:"remediation"`
}

// CreateFinding records a finding reported over HTTP rather than the
// queue. New findings always start open.
func (h *Handlers) CreateFinding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var b createFindingBody
	if err := io.DecodeJSONBody(w, r, &b); err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	id, err := crypto.GenerateShortID()
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	finding := cloud.SecurityFinding{
		ID:           "finding-" + id,
		Title:        b.Title,
		Description:  b.Description,
		Severity:     cloud.Severity(b.Severity),
		ResourceID:   b.ResourceID,
		ResourceType: cloud.ResourceType(b.ResourceType),
		DetectedAt:   time.Now().UTC(),
		Status:       cloud.FindingOpen,
		Remediation:  b.Remediation,
	}

	if err := ingest.Validate(finding); err != nil {
		io.RespondError(ctx, h.Log, w, io.NewRequestError(err, http.StatusBadRequest))
		return
	}

	if err := h.Findings.CreateOrUpdate(finding); err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	h.Log.With("finding", finding.ID, "severity", finding.Severity).Info("created finding")
	io.Respond(ctx, h.Log, w, finding, http.StatusCreated)
}

type setFindingStatusBody struct {
	Status string `json:"status"`
}

// SetFindingStatus transitions a finding between lifecycle states.
func (h *Handlers) SetFindingStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	findingID := chi.URLParam(r, "findingID")

	var b setFindingStatusBody
	if err := io.DecodeJSONBody(w, r, &b); err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	status := cloud.FindingStatus(b.Status)
	if !status.Valid() {
		io.RespondError(ctx, h.Log, w, badParam("status", b.Status))
		return
	}

	if err := h.Findings.SetStatus(findingID, status); err != nil {
		if errors.Is(err, storage.ErrFindingNotFound) {
			io.RespondNotFound(ctx, h.Log, w, "finding")
			return
		}
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	finding, err := h.Findings.Get(findingID)
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	h.Log.With("finding", findingID, "status", status).Info("updated finding status")
	io.Respond(ctx, h.Log, w, finding, http.StatusOK)
}

// GetCompliance derives the compliance posture from the current finding
// set. Nothing is persisted; two calls straddling a finding mutation can
// return different scores.
func (h *Handlers) GetCompliance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.simulateLatency(r)

	findings, err := h.Findings.List()
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	io.Respond(ctx, h.Log, w, compliance.Score(findings), http.StatusOK)
}

// ExportFindings is routed but not yet built.
func (h *Handlers) ExportFindings(w http.ResponseWriter, r *http.Request) {
	io.RespondNotImplemented(r.Context(), h.Log, w)
}
