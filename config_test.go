package pickit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	data := `
title = "demo"
width = 320
height = 240
update_rate = 20
show_fps = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "demo" || cfg.Width != 320 || cfg.Height != 240 || !cfg.ShowFPS {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.period() != 20*time.Millisecond {
		t.Errorf("period = %v", cfg.period())
	}
	if cfg.SampleRate != 44100 || cfg.ScreenshotDir != "screenshots" {
		t.Error("unset fields should keep their defaults")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, data, want string
	}{
		{"syntax", "width = = 3", "parse config"},
		{"invalid", "width = -1", "surface size"},
		{"volume", "volume = 2.0", "volume"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	mutate := []func(*Config){
		func(c *Config) { c.Height = 0 },
		func(c *Config) { c.UpdateRate = 0 },
		func(c *Config) { c.SampleRate = -1 },
		func(c *Config) { c.DefaultFontSize = 0 },
		func(c *Config) { c.Volume = -0.5 },
	}
	for i, m := range mutate {
		cfg := DefaultConfig()
		m(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
