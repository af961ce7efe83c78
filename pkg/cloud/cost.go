package cloud

// CostDataPoint is one entry of a cost series. Date is a display label,
// either a day (2006-01-02) or a month (Jan 2006) depending on the range.
type CostDataPoint struct {
	Date string  `json:"date"`
	Cost float64 `json:"cost"`
}

// CostSummary is derived by summation over the trailing windows of a
// cost series.
type CostSummary struct {
	CurrentMonth     float64         `json:"currentMonth"`
	PreviousMonth    float64         `json:"previousMonth"`
	PercentageChange float64         `json:"percentageChange"`
	Projected        float64         `json:"projected"`
	History          []CostDataPoint `json:"history"`
}
