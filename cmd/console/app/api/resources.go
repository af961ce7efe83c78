package api

import (
	"net/http"
	"strings"

	"github.com/cloudgov/console/api/io"
	"github.com/cloudgov/console/pkg/cloud"
	"github.com/cloudgov/console/pkg/query"
	"github.com/go-chi/chi"
)

const defaultResourceLimit = 50

// ListResources returns the filtered resource inventory. Filters: type,
// region, status, owner, search, plus limit/offset pagination.
func (h *Handlers) ListResources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := query.ResourceFilter{
		Type:   q.Get("type"),
		Region: q.Get("region"),
		Owner:  q.Get("owner"),
		Search: q.Get("search"),
	}

	if v := q.Get("type"); v != "" && !cloud.ResourceType(strings.ToLower(v)).Valid() {
		io.RespondError(ctx, h.Log, w, badParam("resource type", v))
		return
	}
	if v := q.Get("status"); v != "" {
		status := cloud.ResourceStatus(v)
		if !status.Valid() {
			io.RespondError(ctx, h.Log, w, badParam("status", v))
			return
		}
		filter.Status = status
	}

	page, err := parsePage(r, defaultResourceLimit)
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	h.simulateLatency(r)

	resources, err := h.Resources.List()
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	filtered := filter.Apply(resources)
	start, end := page.Bounds(len(filtered))

	io.RespondList(ctx, h.Log, w, filtered[start:end], io.ListMetadata{
		Total:  len(filtered),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

func (h *Handlers) GetResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resourceID := chi.URLParam(r, "resourceID")

	h.simulateLatency(r)

	resource, err := h.Resources.Get(resourceID)
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}
	if resource == nil {
		io.RespondNotFound(ctx, h.Log, w, "resource")
		return
	}

	io.Respond(ctx, h.Log, w, resource, http.StatusOK)
}
