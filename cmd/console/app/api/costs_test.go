package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"testing"
	"time"

	"github.com/cloudgov/console/pkg/costs"
	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func costsRouter() *chi.Mux {
	gen := costs.NewGenerator(rand.New(rand.NewSource(1)))
	gen.Now = func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	}

	h := &Handlers{Log: zap.NewNop().Sugar(), Costs: gen}

	router := chi.NewRouter()
	router.Get("/costs", h.GetCosts)
	return router
}

func TestGetCosts_DefaultRangeIs30Days(t *testing.T) {
	router := costsRouter()

	rr, env := doRequest(t, router, "GET", "/costs", "")

	require.Equal(t, http.StatusOK, rr.Code)

	var got costs.Report
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got.Costs, 30)
	assert.Greater(t, got.Summary.CurrentMonth, 0.0)
}

func TestGetCosts_TwelveMonthsUsesMonthlyPoints(t *testing.T) {
	router := costsRouter()

	rr, env := doRequest(t, router, "GET", "/costs?range=12m", "")

	require.Equal(t, http.StatusOK, rr.Code)

	var got costs.Report
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got.Costs, 12)
	assert.Equal(t, "Mar 2024", got.Costs[len(got.Costs)-1].Date)
}

func TestGetCosts_UnknownRangeIsBadRequest(t *testing.T) {
	router := costsRouter()

	rr, env := doRequest(t, router, "GET", "/costs?range=1y", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, env.Error, "1y")
}
