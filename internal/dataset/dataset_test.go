package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestLoadReadsAndTagsCountries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "benin_clean.csv"),
		"Timestamp,GHI,Tamb,RH\n"+
			"2023-03-01 10:00:00,100.5,28.1,60\n"+
			"2023-03-01 11:00:00,200.5,29.0,58\n")
	writeFile(t, filepath.Join(dir, "togo_clean.csv"),
		"TIMESTAMP,ghi\n"+
			"2023-03-01 10:00:00,50\n")

	readings, err := Load(dir, []string{"Benin", "Togo"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(readings["Benin"]) != 2 {
		t.Fatalf("expected 2 Benin readings, got %d", len(readings["Benin"]))
	}
	if readings["Benin"][0].Country != "Benin" {
		t.Fatalf("expected country tag, got %q", readings["Benin"][0].Country)
	}
	if readings["Benin"][0].GHI != 100.5 {
		t.Fatalf("unexpected GHI: %v", readings["Benin"][0].GHI)
	}
	if len(readings["Togo"]) != 1 {
		t.Fatalf("expected 1 Togo reading, got %d", len(readings["Togo"]))
	}
}

func TestLoadMissingFileIsDataUnavailable(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir, []string{"Benin"})
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	var unavailable *DataUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected DataUnavailableError, got %T: %v", err, err)
	}
	if unavailable.Country != "Benin" {
		t.Fatalf("expected country in error, got %q", unavailable.Country)
	}
}

func TestLoadUnparsableRowIsDataUnavailable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "togo_clean.csv"),
		"Timestamp,GHI\n2023-03-01 10:00:00,not-a-number\n")
	_, err := Load(dir, []string{"Togo"})
	var unavailable *DataUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected DataUnavailableError, got %T: %v", err, err)
	}
}

func TestLoadMissingColumnsIsDataUnavailable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "togo_clean.csv"), "Timestamp,Tamb\n2023-03-01,25\n")
	var unavailable *DataUnavailableError
	if _, err := Load(dir, []string{"Togo"}); !errors.As(err, &unavailable) {
		t.Fatalf("expected DataUnavailableError for missing GHI column, got %v", err)
	}
}

func TestListCountries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "togo_clean.csv"), "Timestamp,GHI\n")
	writeFile(t, filepath.Join(dir, "sierra_leone_clean.csv"), "Timestamp,GHI\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	countries, err := ListCountries(dir)
	if err != nil {
		t.Fatalf("list countries: %v", err)
	}
	if len(countries) != 2 || countries[0] != "Sierra_Leone" || countries[1] != "Togo" {
		t.Fatalf("unexpected countries: %v", countries)
	}
}

func TestCountryNameRoundTrip(t *testing.T) {
	if got := CountryName("sierra_leone"); got != "Sierra_Leone" {
		t.Fatalf("expected Sierra_Leone, got %q", got)
	}
	dir := t.TempDir()
	path := FilePath(dir, "Sierra_Leone")
	if filepath.Base(path) != "sierra_leone_clean.csv" {
		t.Fatalf("unexpected path: %s", path)
	}
}

func TestLoaderCachesAndKeepsPriorOnFailedRefresh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "benin_clean.csv")
	writeFile(t, path, "Timestamp,GHI\n2023-03-01 10:00:00,100\n")

	loader := NewLoader(dir, []string{"Benin"})
	first, err := loader.Readings()
	if err != nil {
		t.Fatalf("initial load: %v", err)
	}
	if len(first["Benin"]) != 1 {
		t.Fatalf("expected 1 reading, got %d", len(first["Benin"]))
	}

	// The cache serves subsequent calls without touching the file.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove fixture: %v", err)
	}
	cached, err := loader.Readings()
	if err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if len(cached["Benin"]) != 1 {
		t.Fatalf("expected cached reading to survive, got %d", len(cached["Benin"]))
	}

	// Explicit refresh fails but keeps the previous result.
	kept, err := loader.Refresh()
	if err == nil {
		t.Fatalf("expected refresh error after file removal")
	}
	if len(kept["Benin"]) != 1 {
		t.Fatalf("expected prior data kept on failed refresh, got %+v", kept)
	}
}

func TestLoaderRefreshPicksUpNewData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "benin_clean.csv")
	writeFile(t, path, "Timestamp,GHI\n2023-03-01 10:00:00,100\n")

	loader := NewLoader(dir, []string{"Benin"})
	if _, err := loader.Readings(); err != nil {
		t.Fatalf("initial load: %v", err)
	}

	writeFile(t, path, "Timestamp,GHI\n2023-03-01 10:00:00,100\n2023-03-01 11:00:00,200\n")
	refreshed, err := loader.Refresh()
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(refreshed["Benin"]) != 2 {
		t.Fatalf("expected refreshed data, got %d readings", len(refreshed["Benin"]))
	}
}
