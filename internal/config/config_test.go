package config

import (
	"path/filepath"
	"testing"

	"github.com/tombanker/clothsim/internal/cloth"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Rows != 40 || cfg.Cols != 40 {
		t.Errorf("expected 40x40 grid, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Physics.Stiffness != 500 {
		t.Errorf("stiffness = %g, want 500", cfg.Physics.Stiffness)
	}
	if cfg.Wind.Enabled {
		t.Error("wind should default off")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloth.yaml")

	cfg := DefaultConfig()
	cfg.Rows = 12
	cfg.Wind.Enabled = true
	cfg.Wind.Strength = 7.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Rows != 12 {
		t.Errorf("rows = %d, want 12", loaded.Rows)
	}
	if !loaded.Wind.Enabled || loaded.Wind.Strength != 7.5 {
		t.Errorf("wind not preserved: %+v", loaded.Wind)
	}
	// Fields absent from the file keep their defaults.
	if loaded.Physics.Stiffness != 500 {
		t.Errorf("stiffness = %g, want 500", loaded.Physics.Stiffness)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("breeze")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if !cfg.Wind.Enabled {
		t.Error("breeze preset should enable wind")
	}
	if cfg.Physics.Stiffness != 500 {
		t.Error("preset should inherit default physics")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for _, name := range names {
		if GetPreset(name) == nil {
			t.Errorf("listed preset %q not retrievable", name)
		}
	}
}

func TestBuild(t *testing.T) {
	cfg := GetPreset("curtain")
	c, err := cfg.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if c.Rows() != 50 || c.Cols() != 24 {
		t.Errorf("grid = %dx%d, want 50x24", c.Rows(), c.Cols())
	}
	// Stiffness from the config must reach the built springs.
	for _, s := range c.Springs() {
		if s.Type == cloth.Bending && s.Stiffness != 25 {
			t.Errorf("bending spring stiffness = %g, want 25", s.Stiffness)
			break
		}
	}
}

func TestBuildInvalidGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows = 0
	if _, err := cfg.Build(); err == nil {
		t.Error("expected error for zero rows")
	}
}
