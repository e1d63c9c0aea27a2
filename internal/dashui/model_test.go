package dashui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yoni-ui/solar-challenge-week0/internal/aggregate"
	"github.com/yoni-ui/solar-challenge-week0/internal/dataset"
	"github.com/yoni-ui/solar-challenge-week0/internal/model"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	dir := t.TempDir()
	fixtures := map[string]string{
		"benin_clean.csv": "Timestamp,GHI\n" +
			"2023-03-01 10:00:00,100\n" +
			"2023-03-01 11:00:00,200\n",
		"togo_clean.csv": "Timestamp,GHI\n" +
			"2023-03-01 10:00:00,50\n",
	}
	for name, content := range fixtures {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	loader := dataset.NewLoader(dir, []string{"Benin", "Togo"})
	cfg := model.DashConfig{
		DataDir:     dir,
		Countries:   []string{"Benin", "Togo"},
		Granularity: model.Daily,
	}
	return NewModel(loader, cfg)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelLoadsReport(t *testing.T) {
	m := newTestModel(t)
	if !m.loaded {
		t.Fatalf("expected model to load datasets")
	}
	if len(m.report.Ranking) != 2 {
		t.Fatalf("expected 2 ranking rows, got %d", len(m.report.Ranking))
	}
	if m.report.Ranking[0].Country != "Benin" {
		t.Fatalf("expected Benin ranked first, got %q", m.report.Ranking[0].Country)
	}
}

func TestGranularityKeysRecompute(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.Update(keyRunes("w"))
	if m.cfg.Granularity != model.Weekly {
		t.Fatalf("expected weekly after 'w', got %v", m.cfg.Granularity)
	}
	if m.report.Granularity != model.Weekly {
		t.Fatalf("expected report rebuilt at weekly, got %v", m.report.Granularity)
	}

	m.Update(keyRunes("m"))
	if m.cfg.Granularity != model.Monthly {
		t.Fatalf("expected monthly after 'm', got %v", m.cfg.Granularity)
	}
}

func TestFilterTogglesSelection(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.Update(keyRunes("/"))
	if !m.filterMode {
		t.Fatalf("expected filter mode after '/'")
	}

	// Cursor starts on Benin; space unchecks it, enter applies.
	m.Update(keyRunes(" "))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode {
		t.Fatalf("expected filter mode to close on enter")
	}
	if len(m.cfg.Countries) != 1 || m.cfg.Countries[0] != "Togo" {
		t.Fatalf("expected only Togo selected, got %v", m.cfg.Countries)
	}
	if len(m.report.Selection) != 1 || m.report.Selection[0] != "Togo" {
		t.Fatalf("expected report rebuilt for Togo, got %v", m.report.Selection)
	}
}

func TestFilterEscCancels(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.Update(keyRunes("/"))
	m.Update(keyRunes(" "))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.filterMode {
		t.Fatalf("expected filter mode to close on esc")
	}
	if len(m.cfg.Countries) != 2 {
		t.Fatalf("esc should keep prior selection, got %v", m.cfg.Countries)
	}
}

func TestFilterGranularityRow(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes("/"))
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.filterCursor != len(m.available) {
		t.Fatalf("expected cursor on granularity row, got %d", m.filterCursor)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.filterGran != model.Weekly {
		t.Fatalf("expected weekly after right, got %v", m.filterGran)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.filterGran != model.Daily {
		t.Fatalf("expected daily after left, got %v", m.filterGran)
	}
}

func TestGranularityCycle(t *testing.T) {
	g := model.Daily
	for _, want := range []model.Granularity{model.Weekly, model.Monthly, model.Daily} {
		g = nextGranularity(g)
		if g != want {
			t.Fatalf("expected %v, got %v", want, g)
		}
	}
	for _, want := range []model.Granularity{model.Monthly, model.Weekly, model.Daily} {
		g = prevGranularity(g)
		if g != want {
			t.Fatalf("expected %v, got %v", want, g)
		}
	}
}

func TestRenderTimeSeriesEmptySelection(t *testing.T) {
	report := aggregate.Report{Granularity: model.Daily}
	out := renderTimeSeries(report, 80)
	if !strings.Contains(out, "No countries selected") {
		t.Fatalf("expected empty-selection placeholder, got %q", out)
	}
	out = renderDistribution(report, 80)
	if !strings.Contains(out, "No countries selected") {
		t.Fatalf("expected empty-selection placeholder, got %q", out)
	}
}

func TestPadLine(t *testing.T) {
	if got := padLine("ab", 5); got != "ab   " {
		t.Fatalf("unexpected padding: %q", got)
	}
	if got := padLine("abcdef", 3); got != "abcdef" {
		t.Fatalf("padLine should not truncate, got %q", got)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncateLine("abc", 6); got != "abc" {
		t.Fatalf("short line should pass through, got %q", got)
	}
	if got := truncateLine("abcdef", 2); got != "ab" {
		t.Fatalf("tiny width should hard-cut, got %q", got)
	}
}

func TestFitLines(t *testing.T) {
	out := fitLines("a\nb\nc", 3, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "a  " {
		t.Fatalf("expected padded line, got %q", lines[0])
	}

	out = fitLines("a", 3, 3)
	lines = strings.Split(out, "\n")
	if len(lines) != 3 || lines[2] != "   " {
		t.Fatalf("expected blank fill lines, got %q", out)
	}
}
