package query

// Page is an offset/limit window applied after filtering. The reported
// total must always be the filtered length before the window is taken.
type Page struct {
	Offset int
	Limit  int
}

// Bounds clamps the window to a collection of n items and returns the
// half-open range [start, end) to slice.
func (p Page) Bounds(n int) (start, end int) {
	start = p.Offset
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end = start + p.Limit
	if p.Limit <= 0 || end > n {
		end = n
	}
	return start, end
}
