// Package mockgen produces plausible mock GHI datasets for demos and tests.
package mockgen

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/yoni-ui/solar-challenge-week0/internal/model"
)

// Profile describes the GHI distribution of one mock country.
type Profile struct {
	Country string
	Mean    float64
	StdDev  float64
}

// DefaultProfiles mirror the observed spread of the real cleaned datasets.
var DefaultProfiles = []Profile{
	{Country: "Benin", Mean: 300, StdDev: 350},
	{Country: "Sierra_Leone", Mean: 350, StdDev: 300},
	{Country: "Togo", Mean: 250, StdDev: 400},
}

// Generator produces randomized hourly readings.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator for the given seed. Seed 0 uses the current time.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Readings generates one hourly reading per hour for the given number of
// days, normally distributed around the profile mean. Negative draws are
// clamped to zero, matching the sensor bound of real data.
func (g *Generator) Readings(profile Profile, start time.Time, days int) []model.Reading {
	hours := days * 24
	out := make([]model.Reading, 0, hours)
	for i := 0; i < hours; i++ {
		ghi := g.rnd.NormFloat64()*profile.StdDev + profile.Mean
		if ghi < 0 {
			ghi = 0
		}
		out = append(out, model.Reading{
			Country:   profile.Country,
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			GHI:       ghi,
		})
	}
	return out
}

// WriteCSV writes readings as a cleaned country CSV (Timestamp,GHI header).
// The file is written via a temp file and renamed into place.
func WriteCSV(path string, readings []model.Reading) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "mockdata-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp dataset: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if _, err := fmt.Fprintln(writer, "Timestamp,GHI"); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	for _, r := range readings {
		if _, err := fmt.Fprintf(writer, "%s,%.2f\n", r.Timestamp.Format("2006-01-02 15:04:05"), r.GHI); err != nil {
			return fmt.Errorf("failed to write dataset: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush dataset: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close dataset: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return nil
}
