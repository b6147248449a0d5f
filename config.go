package pickit

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigFile is the project file the CLI looks for next to a script.
const DefaultConfigFile = "pickit.toml"

// Config controls the window, pacing and tooling around a script run.
type Config struct {
	// Title is the window title.
	Title string `toml:"title"`
	// Entry is the script path, relative to the working directory.
	Entry string `toml:"entry"`
	// Width and Height give the drawing surface size in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// UpdateRate is the update period in milliseconds.
	UpdateRate float64 `toml:"update_rate"`
	// AssetRoot is the directory resource locators are resolved against.
	// Empty means the directory of the entry script.
	AssetRoot string `toml:"asset_root"`
	// DefaultFontSize is the pixel size of the built-in "default" font.
	DefaultFontSize float64 `toml:"default_font_size"`
	// SampleRate is the audio mixer sample rate.
	SampleRate int `toml:"sample_rate"`
	// Volume scales every sound, in [0, 1].
	Volume float64 `toml:"volume"`

	Fullscreen bool `toml:"fullscreen"`
	Resizable  bool `toml:"resizable"`
	// ShowFPS draws the FPS/TPS overlay in the top-left corner.
	ShowFPS bool `toml:"show_fps"`
	// Debug logs per-second frame statistics.
	Debug    bool   `toml:"debug"`
	LogLevel string `toml:"log_level"`

	// ScreenshotDir receives PNGs queued with qs.screenshot.
	ScreenshotDir string `toml:"screenshot_dir"`
	// Watch reloads the script when files under its directory change.
	Watch bool `toml:"watch"`
	// TestScript is a JSON file of synthetic input steps.
	TestScript string `toml:"test_script"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Title:           "pickit",
		Entry:           "run.star",
		Width:           800,
		Height:          600,
		UpdateRate:      1000.0 / 60,
		DefaultFontSize: 24,
		SampleRate:      44100,
		Volume:          1,
		LogLevel:        "info",
		ScreenshotDir:   "screenshots",
	}
}

// LoadConfig reads a TOML file over DefaultConfig. A missing file yields the
// defaults and no error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("pickit: read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("pickit: parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("pickit: surface size must be positive, got %dx%d", c.Width, c.Height)
	case c.UpdateRate <= 0:
		return fmt.Errorf("pickit: update_rate must be positive, got %g", c.UpdateRate)
	case c.SampleRate <= 0:
		return fmt.Errorf("pickit: sample_rate must be positive, got %d", c.SampleRate)
	case c.DefaultFontSize <= 0:
		return fmt.Errorf("pickit: default_font_size must be positive, got %g", c.DefaultFontSize)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("pickit: volume must be in [0, 1], got %g", c.Volume)
	}
	return nil
}

// period returns UpdateRate as a duration.
func (c Config) period() time.Duration {
	return msToDuration(c.UpdateRate)
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func durationToMS(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
