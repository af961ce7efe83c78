// Package costs generates the cost series shown on the dashboard and
// derives the month-over-month summary from it.
package costs

import (
	"math"
	"math/rand"
	"time"

	"github.com/cloudgov/console/pkg/cloud"
	"github.com/pkg/errors"
)

// Range selects the reporting window for a cost series.
type Range string

const (
	Range7d  Range = "7d"
	Range30d Range = "30d"
	Range90d Range = "90d"
	Range12m Range = "12m"
)

// ParseRange validates a range query parameter. The empty string
// defaults to 30d.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case "":
		return Range30d, nil
	case Range7d, Range30d, Range90d, Range12m:
		return Range(s), nil
	}
	return "", errors.Errorf("unrecognised range %q: must be 7d, 30d, 90d or 12m", s)
}

// DefaultBaseline is the daily spend the generated series varies around.
const DefaultBaseline = 12400

// Generator produces cost series with uniform noise around a fixed
// baseline. The random source and clock are injected so callers can
// supply deterministic ones.
type Generator struct {
	Baseline float64
	Rand     *rand.Rand
	Now      func() time.Time
}

// NewGenerator returns a Generator with the given random source. A nil
// source falls back to a time-seeded one.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		Baseline: DefaultBaseline,
		Rand:     rnd,
		Now:      time.Now,
	}
}

// Report is a generated cost series with its derived summary.
type Report struct {
	Costs   []cloud.CostDataPoint `json:"costs"`
	Summary cloud.CostSummary     `json:"summary"`
}

// Generate produces the series for a range: 7, 30 or 90 daily points, or
// 12 monthly points for 12m, oldest first. Each cost is
// floor(baseline * (1 + u)) with u uniform in [-0.15, 0.15).
func (g *Generator) Generate(r Range) (Report, error) {
	now := g.Now()

	var points []cloud.CostDataPoint
	switch r {
	case Range7d, Range30d, Range90d:
		n := map[Range]int{Range7d: 7, Range30d: 30, Range90d: 90}[r]
		points = make([]cloud.CostDataPoint, n)
		for i := 0; i < n; i++ {
			day := now.AddDate(0, 0, i-n+1)
			points[i] = cloud.CostDataPoint{
				Date: day.Format("2006-01-02"),
				Cost: g.sample(),
			}
		}
	case Range12m:
		points = make([]cloud.CostDataPoint, 12)
		for i := 0; i < 12; i++ {
			month := now.AddDate(0, i-11, 0)
			points[i] = cloud.CostDataPoint{
				Date: month.Format("Jan 2006"),
				Cost: g.sample(),
			}
		}
	default:
		return Report{}, errors.Errorf("unrecognised range %q", r)
	}

	return Report{
		Costs:   points,
		Summary: g.summarize(points, now),
	}, nil
}

func (g *Generator) sample() float64 {
	u := g.Rand.Float64()*0.3 - 0.15
	return math.Floor(g.Baseline * (1 + u))
}

// summarize derives the trailing-window summary. When the series is too
// short to carry a real previous month, the previous figure is
// fabricated as currentMonth * 0.92; the dashboard depends on that exact
// fallback.
func (g *Generator) summarize(points []cloud.CostDataPoint, now time.Time) cloud.CostSummary {
	current := sumWindow(points, len(points)-30, len(points))

	var previous float64
	if len(points) >= 60 {
		previous = sumWindow(points, len(points)-60, len(points)-30)
	} else {
		previous = current * 0.92
	}

	var change float64
	if previous != 0 {
		change = math.Round((current-previous)/previous*1000) / 10
	}

	dailyAverage := current / float64(now.Day())
	projected := dailyAverage * float64(daysInMonth(now))

	return cloud.CostSummary{
		CurrentMonth:     current,
		PreviousMonth:    previous,
		PercentageChange: change,
		Projected:        projected,
		History:          points,
	}
}

func sumWindow(points []cloud.CostDataPoint, start, end int) float64 {
	if start < 0 {
		start = 0
	}
	var total float64
	for _, p := range points[start:end] {
		total += p.Cost
	}
	return total
}

func daysInMonth(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
