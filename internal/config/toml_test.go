package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[dashboard]\n" +
		"data-dir = \"/srv/solar\"\n" +
		"countries = [\"Benin\", \"Togo\"]\n" +
		"granularity = \"weekly\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Dashboard.DataDir == nil || *cfg.Dashboard.DataDir != "/srv/solar" {
		t.Fatalf("unexpected data-dir: %v", cfg.Dashboard.DataDir)
	}
	if cfg.Dashboard.Countries == nil || len(*cfg.Dashboard.Countries) != 2 {
		t.Fatalf("unexpected countries: %v", cfg.Dashboard.Countries)
	}
	if (*cfg.Dashboard.Countries)[1] != "Togo" {
		t.Fatalf("unexpected country: %q", (*cfg.Dashboard.Countries)[1])
	}
	if cfg.Dashboard.Granularity == nil || *cfg.Dashboard.Granularity != "weekly" {
		t.Fatalf("unexpected granularity: %v", cfg.Dashboard.Granularity)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if cfg.Dashboard.DataDir != nil || cfg.Dashboard.Countries != nil || cfg.Dashboard.Granularity != nil {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[dashboard]\ngranularity = \"monthly\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Dashboard.DataDir != nil {
		t.Fatalf("data-dir should stay unset, got %v", *cfg.Dashboard.DataDir)
	}
	if cfg.Dashboard.Granularity == nil || *cfg.Dashboard.Granularity != "monthly" {
		t.Fatalf("unexpected granularity: %v", cfg.Dashboard.Granularity)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[dashboard\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error for malformed config")
	}
}
