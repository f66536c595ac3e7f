package config

import (
	"path/filepath"
	"testing"

	"github.com/daviddaadams/NYPDShootingIncidents/internal/dataset"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.SourceURL != dataset.DefaultSourceURL {
		t.Fatalf("source url = %q", c.SourceURL)
	}
	if c.ReportFormat != "markdown" || c.HTTPTimeoutSec != 60 {
		t.Fatalf("defaults not applied: %#v", c)
	}
	if c.ChartWidthIn != 10.0 || c.ChartHeightIn != 6.0 {
		t.Fatalf("chart size defaults not applied: %#v", c)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Global{
		SourceURL:      "https://example.test/rows.csv",
		OutputDir:      "out",
		ReportFormat:   "html",
		HTTPTimeoutSec: 30,
		ChartWidthIn:   8,
		ChartHeightIn:  4.5,
	}
	if err := Save(want, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(&Global{ReportFormat: "markdown", HTTPTimeoutSec: 60}, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	t.Setenv("NYPDSHOOTINGS_REPORT_FORMAT", "html")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.ReportFormat != "html" {
		t.Fatalf("report format = %q, want env override", c.ReportFormat)
	}
}
