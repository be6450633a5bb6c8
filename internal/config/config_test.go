package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/raytracer/internal/color"
	"github.com/san-kum/raytracer/internal/projectile"
	"github.com/san-kum/raytracer/internal/tuple"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != "arc" {
		t.Errorf("expected name arc, got %s", cfg.Name)
	}
	if cfg.Canvas.Width != 900 || cfg.Canvas.Height != 550 {
		t.Errorf("canvas = %dx%d, want 900x550", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDefaultMatchesScenario(t *testing.T) {
	sc, err := DefaultConfig().Scenario()
	if err != nil {
		t.Fatalf("Scenario() failed: %v", err)
	}
	want := projectile.DefaultScenario()

	if !sc.Start.Position.Equal(want.Start.Position) || !sc.Start.Velocity.Equal(want.Start.Velocity) {
		t.Errorf("start = %+v, want %+v", sc.Start, want.Start)
	}
	if !sc.Environment.Gravity.Equal(want.Environment.Gravity) || !sc.Environment.Wind.Equal(want.Environment.Wind) {
		t.Errorf("environment = %+v, want %+v", sc.Environment, want.Environment)
	}
	if sc.Width != want.Width || sc.Height != want.Height {
		t.Errorf("canvas = %dx%d, want %dx%d", sc.Width, sc.Height, want.Width, want.Height)
	}
	if !sc.Config.Paint.Equal(color.Red) || sc.Config.MaxTicks != want.Config.MaxTicks {
		t.Errorf("config = %+v, want %+v", sc.Config, want.Config)
	}
}

func TestScenarioKinds(t *testing.T) {
	sc, err := GetPreset("drift").Scenario()
	if err != nil {
		t.Fatalf("Scenario() failed: %v", err)
	}
	if !sc.Start.Position.IsPoint() {
		t.Errorf("start %v is not a point", sc.Start.Position)
	}
	for name, v := range map[string]tuple.Tuple{
		"velocity": sc.Start.Velocity,
		"gravity":  sc.Environment.Gravity,
		"wind":     sc.Environment.Wind,
	} {
		if !v.IsVector() {
			t.Errorf("%s %v is not a vector", name, v)
		}
	}
}

func TestZeroSpeedAllowsZeroDirection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Projectile.Direction = Vec3{}
	cfg.Projectile.Speed = 0

	sc, err := cfg.Scenario()
	if err != nil {
		t.Fatalf("Scenario() failed: %v", err)
	}
	if !sc.Start.Velocity.Equal(tuple.Vector(0, 0, 0)) {
		t.Errorf("velocity = %v, want zero", sc.Start.Velocity)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative width", func(c *Config) { c.Canvas.Width = -1 }},
		{"negative height", func(c *Config) { c.Canvas.Height = -5 }},
		{"zero direction", func(c *Config) { c.Projectile.Direction = Vec3{} }},
		{"negative max ticks", func(c *Config) { c.MaxTicks = -1 }},
		{"name escaping data dir", func(c *Config) { c.Name = "../x" }},
		{"name with separator", func(c *Config) { c.Name = "runs/arc" }},
		{"name with backslash", func(c *Config) { c.Name = `runs\arc` }},
		{"dot dot name", func(c *Config) { c.Name = ".." }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if _, err := cfg.Scenario(); err == nil {
				t.Error("Scenario() accepted an invalid config")
			}
		})
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := []byte("name: windy\nenvironment:\n  wind:\n    x: -0.05\ncanvas:\n  width: 64\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Name != "windy" {
		t.Errorf("name = %q, want windy", cfg.Name)
	}
	if cfg.Environment.Wind.X != -0.05 {
		t.Errorf("wind.x = %v, want -0.05", cfg.Environment.Wind.X)
	}
	if cfg.Canvas.Width != 64 || cfg.Canvas.Height != DefaultHeight {
		t.Errorf("canvas = %dx%d, want 64x%d", cfg.Canvas.Width, cfg.Canvas.Height, DefaultHeight)
	}
	if cfg.Environment.Gravity.Y != DefaultGravity {
		t.Errorf("gravity.y = %v, want default %v", cfg.Environment.Gravity.Y, DefaultGravity)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want ErrNotExist", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("canvas: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted malformed yaml")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lob.yaml")
	want := GetPreset("lob")

	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("drift")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Environment.Wind.X != -0.01 {
		t.Errorf("expected wind -0.01, got %f", cfg.Environment.Wind.X)
	}

	cfg.Canvas.Width = 1
	if Presets["drift"].Canvas.Width == 1 {
		t.Error("GetPreset returned a shared preset")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("ListPresets() = %v, want %d names", names, len(Presets))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("ListPresets() not sorted: %v", names)
		}
	}
}

func TestPresetsLand(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			sc, err := GetPreset(name).Scenario()
			if err != nil {
				t.Fatalf("Scenario() failed: %v", err)
			}
			_, result, err := projectile.Trace(context.Background(), sc)
			if err != nil {
				t.Fatalf("Trace() failed: %v", err)
			}
			if result.Plotted == 0 {
				t.Error("preset never draws onto its canvas")
			}
		})
	}
}
