// Package dataset loads cleaned per-country GHI measurements from CSV files.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yoni-ui/solar-challenge-week0/internal/model"
)

const fileSuffix = "_clean.csv"

// Accepted timestamp layouts, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// DataUnavailableError reports a missing or unparsable country dataset.
type DataUnavailableError struct {
	Country string
	Path    string
	Err     error
}

// Error implements the error interface.
func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("data unavailable for %s (%s): %v", e.Country, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

// FilePath returns the expected CSV path for a country inside dir.
func FilePath(dir, country string) string {
	return filepath.Join(dir, strings.ToLower(country)+fileSuffix)
}

// Load reads the cleaned CSV of every requested country and tags each
// reading with its country of origin. It fails with *DataUnavailableError
// if any expected file is missing or any row fails to parse.
func Load(dir string, countries []string) (map[string][]model.Reading, error) {
	out := make(map[string][]model.Reading, len(countries))
	for _, country := range countries {
		path := FilePath(dir, country)
		readings, err := loadCountryCSV(path, country)
		if err != nil {
			return nil, &DataUnavailableError{Country: country, Path: path, Err: err}
		}
		out[country] = readings
	}
	return out, nil
}

func loadCountryCSV(path, country string) ([]model.Reading, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	tsCol, ghiCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "timestamp":
			tsCol = i
		case "ghi":
			ghiCol = i
		}
		// Other sensor columns are ignored.
	}
	if tsCol < 0 || ghiCol < 0 {
		return nil, fmt.Errorf("missing required columns (need Timestamp and GHI, got %s)", strings.Join(header, ", "))
	}

	var readings []model.Reading
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if tsCol >= len(row) || ghiCol >= len(row) {
			return nil, fmt.Errorf("line %d: too few columns", line)
		}
		ts, err := parseTimestamp(strings.TrimSpace(row[tsCol]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ghi, err := strconv.ParseFloat(strings.TrimSpace(row[ghiCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid GHI value: %w", line, err)
		}
		readings = append(readings, model.Reading{
			Country:   country,
			Timestamp: ts,
			GHI:       ghi,
		})
	}
	if len(readings) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	return readings, nil
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// ListCountries discovers available country datasets by scanning dir for
// *_clean.csv files. Names are returned sorted.
func ListCountries(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var countries []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		countries = append(countries, CountryName(strings.TrimSuffix(name, fileSuffix)))
	}
	sort.Strings(countries)
	return countries, nil
}

// CountryName converts a file stem like "sierra_leone" into its display
// form "Sierra_Leone". Load lowercases it back when resolving paths.
func CountryName(stem string) string {
	parts := strings.Split(stem, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "_")
}
