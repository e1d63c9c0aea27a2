package aggregate

import (
	"math"
	"sort"

	"github.com/yoni-ui/solar-challenge-week0/internal/model"
)

// Report contains precomputed data for dashboard rendering. One Report is
// built per user interaction; all fields are derived from the same snapshot
// of the loaded readings.
type Report struct {
	Series        []model.SeriesPoint
	Ranking       []model.RankingRow
	Distributions []model.Distribution
	Granularity   model.Granularity
	Selection     []string
}

// BuildReport recomputes every dashboard view for the given selection and
// granularity. Readings are not mutated; the ranking always covers all
// loaded countries regardless of selection.
func BuildReport(readings map[string][]model.Reading, selection []string, g model.Granularity) Report {
	return Report{
		Series:        BuildTimeSeries(readings, selection, g),
		Ranking:       BuildRanking(readings),
		Distributions: BuildDistribution(readings, selection),
		Granularity:   g,
		Selection:     append([]string(nil), selection...),
	}
}

// SeriesByCountry regroups the flat series into one ordered value slice per
// country, with the sorted bucket starts shared across countries. Buckets a
// country has no data for are NaN so plots can show gaps.
func SeriesByCountry(points []model.SeriesPoint) (countries []string, buckets []int64, values map[string][]float64) {
	bucketSet := make(map[int64]struct{})
	countrySet := make(map[string]struct{})
	for _, p := range points {
		bucketSet[p.BucketStart.Unix()] = struct{}{}
		countrySet[p.Country] = struct{}{}
	}
	for b := range bucketSet {
		buckets = append(buckets, b)
	}
	for c := range countrySet {
		countries = append(countries, c)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i] < buckets[j] })
	sort.Strings(countries)

	index := make(map[int64]int, len(buckets))
	for i, b := range buckets {
		index[b] = i
	}
	values = make(map[string][]float64, len(countries))
	for _, c := range countries {
		row := make([]float64, len(buckets))
		for i := range row {
			row[i] = math.NaN()
		}
		values[c] = row
	}
	for _, p := range points {
		values[p.Country][index[p.BucketStart.Unix()]] = p.MeanGHI
	}
	return countries, buckets, values
}
