// Package aggregate computes the series, ranking, and distribution views
// that feed the dashboard.
package aggregate

import (
	"sort"
	"time"

	"github.com/yoni-ui/solar-challenge-week0/internal/model"
)

// BucketStart truncates a timestamp to the start of its granularity period:
// day start, ISO week start (Monday), or calendar month start.
func BucketStart(t time.Time, g model.Granularity) time.Time {
	switch g {
	case model.Weekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case model.Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// BuildTimeSeries filters readings to the selection, buckets them by the
// granularity's period start, and returns the per-bucket mean GHI for each
// country, ordered by bucket ascending then country ascending. Countries in
// the selection that are absent from readings are silently omitted; buckets
// with no readings are absent, so charts show gaps rather than false zeros.
func BuildTimeSeries(readings map[string][]model.Reading, selection []string, g model.Granularity) []model.SeriesPoint {
	type bucketKey struct {
		country string
		start   time.Time
	}
	sums := make(map[bucketKey]float64)
	counts := make(map[bucketKey]int)

	for _, country := range selectedCountries(readings, selection) {
		for _, r := range readings[country] {
			key := bucketKey{country: country, start: BucketStart(r.Timestamp, g)}
			sums[key] += r.GHI
			counts[key]++
		}
	}

	points := make([]model.SeriesPoint, 0, len(sums))
	for key, sum := range sums {
		points = append(points, model.SeriesPoint{
			Country:     key.country,
			BucketStart: key.start,
			MeanGHI:     sum / float64(counts[key]),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if !points[i].BucketStart.Equal(points[j].BucketStart) {
			return points[i].BucketStart.Before(points[j].BucketStart)
		}
		return points[i].Country < points[j].Country
	})
	return points
}

// BuildRanking computes the mean GHI per country across the full loaded
// dataset, regardless of selection, sorted by mean descending with ties
// broken by country name ascending.
func BuildRanking(readings map[string][]model.Reading) []model.RankingRow {
	rows := make([]model.RankingRow, 0, len(readings))
	for country, rs := range readings {
		if len(rs) == 0 {
			continue
		}
		var sum float64
		for _, r := range rs {
			sum += r.GHI
		}
		rows = append(rows, model.RankingRow{
			Country: country,
			MeanGHI: sum / float64(len(rs)),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].MeanGHI != rows[j].MeanGHI {
			return rows[i].MeanGHI > rows[j].MeanGHI
		}
		return rows[i].Country < rows[j].Country
	})
	return rows
}

// BuildDistribution returns, per selected country, the full multiset of GHI
// values in timestamp order, countries ordered by name.
func BuildDistribution(readings map[string][]model.Reading, selection []string) []model.Distribution {
	countries := selectedCountries(readings, selection)
	out := make([]model.Distribution, 0, len(countries))
	for _, country := range countries {
		rs := readings[country]
		values := make([]float64, len(rs))
		for i, r := range rs {
			values[i] = r.GHI
		}
		out = append(out, model.Distribution{Country: country, Values: values})
	}
	return out
}

// selectedCountries intersects the selection with loaded countries and
// returns them sorted for deterministic iteration.
func selectedCountries(readings map[string][]model.Reading, selection []string) []string {
	out := make([]string, 0, len(selection))
	seen := make(map[string]struct{}, len(selection))
	for _, country := range selection {
		if _, ok := readings[country]; !ok {
			continue
		}
		if _, dup := seen[country]; dup {
			continue
		}
		seen[country] = struct{}{}
		out = append(out, country)
	}
	sort.Strings(out)
	return out
}
