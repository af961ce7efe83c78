package api

import (
	"net/http"
	"strconv"

	"github.com/cloudgov/console/api/io"
	"github.com/cloudgov/console/pkg/costs"
	"github.com/cloudgov/console/pkg/demo"
	"github.com/cloudgov/console/pkg/inventory"
	"github.com/cloudgov/console/pkg/query"
	"github.com/cloudgov/console/pkg/storage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Handlers holds all of the REST API endpoints for the console
type Handlers struct {
	Log  *zap.SugaredLogger
	Demo bool

	DemoData  *demo.Generator
	Findings  storage.FindingStorage
	Resources storage.ResourceStorage
	Roles     storage.RoleStorage
	Users     storage.UserStorage
	Policies  storage.PolicyStorage
	Costs     *costs.Generator
	Inventory *inventory.AWSInventory
}

// simulateLatency pauses demo-mode requests so responses feel like real
// AWS calls.
func (h *Handlers) simulateLatency(r *http.Request) {
	if h.Demo && h.DemoData != nil {
		h.DemoData.Sleep(r.Context())
	}
}

// parsePage reads limit/offset query parameters, applying the
// endpoint's default limit. Malformed values are a 400, not a no-op.
func parsePage(r *http.Request, defaultLimit int) (query.Page, error) {
	page := query.Page{Limit: defaultLimit}

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, io.NewRequestError(errors.Errorf("limit must be a positive integer, got %q", v), http.StatusBadRequest)
		}
		page.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return page, io.NewRequestError(errors.Errorf("offset must be a non-negative integer, got %q", v), http.StatusBadRequest)
		}
		page.Offset = n
	}
	return page, nil
}

func badParam(name, value string) error {
	return io.NewRequestError(errors.Errorf("unrecognised %s %q", name, value), http.StatusBadRequest)
}
