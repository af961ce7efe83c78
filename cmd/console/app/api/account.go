package api

import (
	"fmt"
	"net/http"

	"github.com/cloudgov/console/api/io"
	"github.com/cloudgov/console/pkg/cloud"
	"github.com/cloudgov/console/pkg/demo"
)

// GetAccount describes the account the console is pointed at. In demo
// mode this is the synthetic demo account; otherwise the identity comes
// from STS.
func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.simulateLatency(r)

	if h.Demo || h.Inventory == nil {
		io.Respond(ctx, h.Log, w, cloud.Account{
			ID:   demo.AccountID,
			ARN:  fmt.Sprintf("arn:aws:iam::%s:root", demo.AccountID),
			Demo: true,
		}, http.StatusOK)
		return
	}

	account, err := h.Inventory.Account(ctx)
	if err != nil {
		io.RespondError(ctx, h.Log, w, err)
		return
	}

	io.Respond(ctx, h.Log, w, account, http.StatusOK)
}
