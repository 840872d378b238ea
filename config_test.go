package hedgerow

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRunConfigValid(t *testing.T) {
	cfg := DefaultRunConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", cfg.ScreenshotDir, "screenshots")
	}
}

func TestLoadRunConfigKeepsDefaults(t *testing.T) {
	cfg, err := LoadRunConfig([]byte(`
title: Farm
windowWidth: 1024
showFPS: true
background: {r: 0.1, g: 0.5, b: 0.2, a: 1}
`))
	if err != nil {
		t.Fatalf("LoadRunConfig: %v", err)
	}
	if cfg.Title != "Farm" || cfg.WindowWidth != 1024 || !cfg.ShowFPS {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.WindowHeight != 600 || cfg.LogicalWidth != 1600 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	assertNear(t, "background g", cfg.Background.G, 0.5)
}

func TestLoadRunConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"syntax", "title: [unclosed"},
		{"window", "windowWidth: 0"},
		{"logical", "logicalHeight: -5"},
		{"tps", "tps: -1"},
		{"level", "logLevel: loud"},
	}
	for _, tt := range tests {
		if _, err := LoadRunConfig([]byte(tt.yaml)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestLoadRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("tps: 30\nlogLevel: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadRunConfigFile(path)
	if err != nil {
		t.Fatalf("LoadRunConfigFile: %v", err)
	}
	if cfg.TPS != 30 {
		t.Errorf("TPS = %d, want 30", cfg.TPS)
	}
	if lvl, _ := cfg.Level(); lvl != slog.LevelDebug {
		t.Errorf("Level = %v, want debug", lvl)
	}

	if _, err := LoadRunConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestScaleFor(t *testing.T) {
	cfg := DefaultRunConfig()
	assertNear(t, "half", cfg.ScaleFor(800, 600), 0.5)
	// Width-limited: 400/1600 < 1200/1200.
	assertNear(t, "narrow", cfg.ScaleFor(400, 1200), 0.25)
	assertNear(t, "empty", cfg.ScaleFor(0, 600), 1)
}
