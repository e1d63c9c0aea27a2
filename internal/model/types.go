// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Granularity selects the time-bucket width for trend aggregation.
type Granularity int

// Supported granularities, from narrowest to widest bucket.
const (
	Daily Granularity = iota
	Weekly
	Monthly
)

// ParseGranularity converts a user-facing name into a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "d":
		return Daily, nil
	case "weekly", "week", "w":
		return Weekly, nil
	case "monthly", "month", "m":
		return Monthly, nil
	default:
		return Daily, fmt.Errorf("unknown granularity %q (use daily, weekly, or monthly)", s)
	}
}

// String returns the canonical name of the granularity.
func (g Granularity) String() string {
	switch g {
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return "daily"
	}
}

// Reading is a single GHI measurement tagged with its country of origin.
// Readings are immutable once loaded; GHI is non-negative by upstream contract.
type Reading struct {
	Country   string
	Timestamp time.Time
	GHI       float64
}

// SeriesPoint is one aggregated time-series sample: the mean GHI of one
// country within one time bucket.
type SeriesPoint struct {
	Country     string
	BucketStart time.Time
	MeanGHI     float64
}

// RankingRow ranks a country by its overall mean GHI.
type RankingRow struct {
	Country string
	MeanGHI float64
}

// Distribution holds the full multiset of GHI values for one country,
// in timestamp order, for box-summary rendering.
type Distribution struct {
	Country string
	Values  []float64
}

// DashConfig defines dashboard runtime settings.
type DashConfig struct {
	DataDir     string
	Countries   []string
	Granularity Granularity
}
