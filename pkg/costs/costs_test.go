package costs

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator() *Generator {
	g := NewGenerator(rand.New(rand.NewSource(1)))
	g.Now = func() time.Time {
		return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	}
	return g
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("")
	require.NoError(t, err)
	assert.Equal(t, Range30d, r)

	for _, s := range []string{"7d", "30d", "90d", "12m"} {
		r, err := ParseRange(s)
		require.NoError(t, err)
		assert.Equal(t, Range(s), r)
	}

	_, err = ParseRange("1y")
	assert.Error(t, err)
}

func TestGenerate_PointCounts(t *testing.T) {
	g := testGenerator()

	tests := map[Range]int{
		Range7d:  7,
		Range30d: 30,
		Range90d: 90,
		Range12m: 12,
	}
	for r, n := range tests {
		report, err := g.Generate(r)
		require.NoError(t, err)
		assert.Len(t, report.Costs, n, "range %s", r)
		assert.Equal(t, report.Costs, report.Summary.History)
	}
}

func TestGenerate_CostsWithinNoiseBounds(t *testing.T) {
	g := testGenerator()

	report, err := g.Generate(Range90d)
	require.NoError(t, err)

	for _, p := range report.Costs {
		assert.GreaterOrEqual(t, p.Cost, math.Floor(g.Baseline*0.85))
		assert.Less(t, p.Cost, g.Baseline*1.15)
		assert.Equal(t, math.Floor(p.Cost), p.Cost, "costs are floored to whole dollars")
	}
}

func TestGenerate_DailyLabelsAreOldestFirst(t *testing.T) {
	g := testGenerator()

	report, err := g.Generate(Range7d)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-09", report.Costs[0].Date)
	assert.Equal(t, "2024-03-15", report.Costs[6].Date)
}

func TestGenerate_SummaryWindows(t *testing.T) {
	g := testGenerator()

	report, err := g.Generate(Range90d)
	require.NoError(t, err)
	s := report.Summary

	var last30, prior30 float64
	for _, p := range report.Costs[60:] {
		last30 += p.Cost
	}
	for _, p := range report.Costs[30:60] {
		prior30 += p.Cost
	}

	assert.Equal(t, last30, s.CurrentMonth)
	assert.Equal(t, prior30, s.PreviousMonth)

	want := math.Round((last30-prior30)/prior30*1000) / 10
	assert.Equal(t, want, s.PercentageChange)
}

func TestGenerate_PreviousMonthFallback(t *testing.T) {
	g := testGenerator()

	report, err := g.Generate(Range7d)
	require.NoError(t, err)
	s := report.Summary

	// with fewer than 60 points there is no real previous window
	assert.InDelta(t, s.CurrentMonth*0.92, s.PreviousMonth, 0.001)
}

func TestGenerate_Projection(t *testing.T) {
	g := testGenerator()

	report, err := g.Generate(Range30d)
	require.NoError(t, err)
	s := report.Summary

	// fixed clock: 15th of a 31-day month
	assert.InDelta(t, s.CurrentMonth/15*31, s.Projected, 0.001)
}

func TestGenerate_UnknownRange(t *testing.T) {
	g := testGenerator()
	_, err := g.Generate(Range("1y"))
	assert.Error(t, err)
}
