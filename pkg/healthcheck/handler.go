// Package healthcheck tracks the readiness of the service and exposes it
// over HTTP for orchestration probes.
package healthcheck

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Status is the health state of the service.
type Status int

const (
	// Unavailable means the service is not yet ready to serve requests.
	Unavailable Status = iota
	// Ready means the service can serve requests.
	Ready
	// Broken means the service is running but cannot serve correctly.
	Broken
)

func (s Status) String() string {
	switch s {
	case Unavailable:
		return "unavailable"
	case Ready:
		return "ready"
	case Broken:
		return "broken"
	default:
		return "unknown"
	}
}

// HealthCheck holds the current health status.
type HealthCheck struct {
	state atomic.Value
}

type healthState struct {
	status  Status
	upSince time.Time
	lastSet time.Time
}

func New() *HealthCheck {
	hc := &HealthCheck{}
	hc.state.Store(healthState{status: Unavailable})
	return hc
}

// Set updates the health status.
func (hc *HealthCheck) Set(status Status) {
	now := time.Now()
	prev := hc.state.Load().(healthState)

	next := healthState{status: status, upSince: prev.upSince, lastSet: now}
	if status == Ready && prev.status != Ready {
		next.upSince = now
	}
	hc.state.Store(next)
}

// Get returns the current health status.
func (hc *HealthCheck) Get() Status {
	return hc.state.Load().(healthState).status
}

type healthResponse struct {
	Status  string     `json:"status"`
	UpSince *time.Time `json:"upSince,omitempty"`
}

// Handler returns an HTTP handler reporting the current status. A
// non-ready service responds with 503 so load balancers drain it.
func (hc *HealthCheck) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := hc.state.Load().(healthState)

		body := healthResponse{Status: state.status.String()}
		if state.status == Ready && !state.upSince.IsZero() {
			up := state.upSince
			body.UpSince = &up
		}

		w.Header().Set("Content-Type", "application/json")
		if state.status != Ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(body)
	})
}
