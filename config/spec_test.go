package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Fatalf("window=%dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Ground.FloorHeight != 10 {
		t.Fatalf("floor_height=%d", cfg.Ground.FloorHeight)
	}
	if cfg.Spawn.BatchSize != 100 || cfg.Spawn.BaseSpeed != 500 || cfg.Spawn.Offset != 10 {
		t.Fatalf("spawn=%+v", cfg.Spawn)
	}
	if cfg.FloorColor() != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("floor color=%v", cfg.FloorColor())
	}
	if cfg.ClearColor() != (color.RGBA{A: 255}) {
		t.Fatalf("clear color=%v", cfg.ClearColor())
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.yaml")
	data := []byte("window:\n  width: 200\n  height: 100\nspawn:\n  batch_size: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Window.Width != 200 || cfg.Window.Height != 100 || cfg.Spawn.BatchSize != 3 {
		t.Fatalf("override not applied: %+v", cfg)
	}
	if cfg.Spawn.BaseSpeed != 500 {
		t.Fatalf("untouched defaults must survive, base_speed=%v", cfg.Spawn.BaseSpeed)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	base, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero_width", func(c *Config) { c.Window.Width = 0 }},
		{"zero_tps", func(c *Config) { c.Window.TPS = 0 }},
		{"negative_floor", func(c *Config) { c.Ground.FloorHeight = -1 }},
		{"negative_batch", func(c *Config) { c.Spawn.BatchSize = -5 }},
		{"zero_particle", func(c *Config) { c.Spawn.ParticleSize = 0 }},
		{"zero_mass", func(c *Config) { c.Physics.ParticleMass = 0 }},
		{"bad_color", func(c *Config) { c.Ground.FloorColor = "not-a-color" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"white", color.RGBA{255, 255, 255, 255}, true},
		{" Black ", color.RGBA{0, 0, 0, 255}, true},
		{"#ff8000", color.RGBA{255, 128, 0, 255}, true},
		{"#ff80", color.RGBA{}, false},
		{"nope", color.RGBA{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if (err == nil) != tc.ok || got != tc.want {
				t.Fatalf("ParseColor(%q)=%v,%v want %v ok=%v", tc.in, got, err, tc.want, tc.ok)
			}
		})
	}
}

func TestLoadScriptEmbedded(t *testing.T) {
	for _, name := range []string{"pastel.tengo", "scripts/pastel.tengo", "config/scripts/pastel.tengo"} {
		data, err := LoadScript(name)
		if err != nil || len(data) == 0 {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "confetti.yaml")
	if err := os.WriteFile(target, []byte("spawn:\n  batch_size: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "confetti.yaml" {
			t.Fatalf("unexpected event for %s", name)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatalf("no event for %s", target)
	}
}
