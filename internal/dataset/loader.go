package dataset

import (
	"github.com/yoni-ui/solar-challenge-week0/internal/model"
)

// Loader caches loaded readings for the process lifetime. The cached map is
// read-only after population; Refresh is the only way to re-read from disk.
type Loader struct {
	dir       string
	countries []string
	cached    map[string][]model.Reading
}

// NewLoader creates a loader for the given data directory and countries.
func NewLoader(dir string, countries []string) *Loader {
	return &Loader{dir: dir, countries: countries}
}

// Readings returns the cached readings, loading them on first use.
func (l *Loader) Readings() (map[string][]model.Reading, error) {
	if l.cached != nil {
		return l.cached, nil
	}
	return l.Refresh()
}

// Refresh re-reads all datasets from disk. On failure the previous cached
// result is kept so callers can continue showing prior data.
func (l *Loader) Refresh() (map[string][]model.Reading, error) {
	readings, err := Load(l.dir, l.countries)
	if err != nil {
		return l.cached, err
	}
	l.cached = readings
	return l.cached, nil
}

// Countries returns the countries this loader covers.
func (l *Loader) Countries() []string {
	return l.countries
}
