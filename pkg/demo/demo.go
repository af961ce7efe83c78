// Package demo synthesises the dataset served when the console runs in
// demo mode. A Generator is constructed once at process start with an
// injected random source; the collections it produces are then seeded
// into the stores and treated as read-mostly.
package demo

import (
	"context"
	"math/rand"
	"time"
)

type Generator struct {
	rand *rand.Rand
	now  func() time.Time
}

// New returns a Generator. A nil random source falls back to a
// time-seeded one.
func New(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rand: rnd, now: time.Now}
}

// Regions the demo dataset spreads resources across.
var Regions = []string{"us-east-1", "us-west-2", "eu-west-1", "ap-southeast-2"}

var owners = []string{"platform-team", "data-eng", "frontend", "sre", "ml-research"}

// Latency returns an artificial delay in the 100-400ms band, used by
// handlers to make demo responses feel like real AWS calls.
func (g *Generator) Latency() time.Duration {
	return time.Duration(100+g.rand.Intn(300)) * time.Millisecond
}

// Sleep waits for an artificial latency period or until the context is
// cancelled.
func (g *Generator) Sleep(ctx context.Context) {
	select {
	case <-time.After(g.Latency()):
	case <-ctx.Done():
	}
}

// daysAgo returns a time between min and max days before now.
func (g *Generator) daysAgo(min, max int) time.Time {
	days := min + g.rand.Intn(max-min+1)
	return g.now().AddDate(0, 0, -days)
}

func (g *Generator) pick(options []string) string {
	return options[g.rand.Intn(len(options))]
}
