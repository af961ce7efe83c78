package api

import (
	"net/http"

	"github.com/cloudgov/console/api/io"
	"github.com/cloudgov/console/pkg/costs"
)

// GetCosts returns the cost series and summary for the requested range
// (7d, 30d, 90d or 12m; default 30d).
func (h *Handlers) GetCosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rng, err := costs.ParseRange(r.URL.Query().Get("range"))
	if err != nil {
		io.RespondError(ctx, h.Log, w, io.NewRequestError(err, http.StatusBadRequest))
		return
	}

	h.simulateLatency(r)

	report, err := h.Costs.Generate(rng)
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	io.Respond(ctx, h.Log, w, report, http.StatusOK)
}
