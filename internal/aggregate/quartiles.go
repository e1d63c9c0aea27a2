package aggregate

import (
	"math"
	"sort"
)

// BoxSummary is a five-number summary of a value multiset.
type BoxSummary struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Quartiles computes the five-number summary with linear interpolation
// between closest ranks. Returns ok=false for an empty input.
func Quartiles(values []float64) (BoxSummary, bool) {
	if len(values) == 0 {
		return BoxSummary{}, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return BoxSummary{
		Min:    sorted[0],
		Q1:     percentile(sorted, 0.25),
		Median: percentile(sorted, 0.50),
		Q3:     percentile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}, true
}

// percentile expects sorted input.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	idx := int(math.Floor(pos))
	if idx >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(idx)
	return sorted[idx]*(1-frac) + sorted[idx+1]*frac
}
