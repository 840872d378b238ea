package hedgerow

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RunConfig holds the window and frame-loop settings used by Run.
type RunConfig struct {
	// Title is the window title.
	Title string `yaml:"title"`
	// WindowWidth and WindowHeight are the initial window size in pixels.
	WindowWidth  int `yaml:"windowWidth"`
	WindowHeight int `yaml:"windowHeight"`
	// LogicalWidth and LogicalHeight describe the coordinate space templates
	// are written in. The scale factor is the largest uniform scale that fits
	// the logical space in the window.
	LogicalWidth  float64 `yaml:"logicalWidth"`
	LogicalHeight float64 `yaml:"logicalHeight"`
	// TPS is the number of ticks per second. 0 keeps ebiten's default.
	TPS int `yaml:"tps"`
	// Resizable allows the window to be resized by the user.
	Resizable bool `yaml:"resizable"`
	// Background is cleared behind every frame. A zero alpha leaves the
	// screen untouched.
	Background Color `yaml:"background"`
	// ShowFPS draws ebiten's debug FPS/TPS overlay over every frame.
	ShowFPS bool `yaml:"showFPS"`
	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir string `yaml:"screenshotDir"`
	// Script is an optional path to a frame script run against the game.
	Script string `yaml:"script"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"logLevel"`

	// OnUpdate, if set, is called once per tick from Game.Update after the
	// frame script steps. Input polling belongs here rather than in a
	// component's Render, which runs from Draw. A non-nil error stops the game.
	OnUpdate func() error `yaml:"-"`
}

// DefaultRunConfig returns the configuration used when no file is given: an
// 800×600 window over a 1600×1200 logical space.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:         "hedgerow",
		WindowWidth:   800,
		WindowHeight:  600,
		LogicalWidth:  1600,
		LogicalHeight: 1200,
		Resizable:     true,
		Background:    ColorBlack,
		ScreenshotDir: "screenshots",
		LogLevel:      "info",
	}
}

// LoadRunConfig parses YAML on top of DefaultRunConfig. Keys that are absent
// keep their default.
func LoadRunConfig(data []byte) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parse run config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// LoadRunConfigFile reads and parses a YAML run config file.
func LoadRunConfigFile(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("read run config: %w", err)
	}
	return LoadRunConfig(data)
}

// Validate reports the first invalid setting.
func (c RunConfig) Validate() error {
	switch {
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("run config: window size %dx%d must be positive", c.WindowWidth, c.WindowHeight)
	case c.LogicalWidth <= 0 || c.LogicalHeight <= 0:
		return fmt.Errorf("run config: logical size %gx%g must be positive", c.LogicalWidth, c.LogicalHeight)
	case c.TPS < 0:
		return fmt.Errorf("run config: tps %d must not be negative", c.TPS)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. An empty value means info.
func (c RunConfig) Level() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("run config: unknown log level %q", c.LogLevel)
}

// ScaleFor returns the uniform scale that fits the logical space in a
// w×h pixel area. Falls back to 1 when either size is not positive.
func (c RunConfig) ScaleFor(w, h int) float64 {
	if w <= 0 || h <= 0 || c.LogicalWidth <= 0 || c.LogicalHeight <= 0 {
		return 1
	}
	return min(float64(w)/c.LogicalWidth, float64(h)/c.LogicalHeight)
}
