package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.GravityY != 980 {
		t.Fatalf("GravityY = %v, want 980", cfg.GravityY)
	}
	if cfg.ArenaSize != 10*1024*1024 {
		t.Fatalf("ArenaSize = %d, want 10 MiB", cfg.ArenaSize)
	}
	if cfg.MaxBodies != 1024 || cfg.MaxBodyPairs != 1024 || cfg.MaxContactConstraints != 1024 {
		t.Fatalf("capacity caps = %d/%d/%d, want 1024 each",
			cfg.MaxBodies, cfg.MaxBodyPairs, cfg.MaxContactConstraints)
	}
	if cfg.Workers != 0 {
		t.Fatalf("Workers = %d, want 0 (auto)", cfg.Workers)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	data := []byte("gravity_y: 100\nworkers: 2\nmax_bodies: 16\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.GravityY != 100 || cfg.Workers != 2 || cfg.MaxBodies != 16 {
		t.Fatalf("overridden fields not applied: %+v", cfg)
	}
	// absent fields keep their defaults
	if cfg.MaxBodyPairs != 1024 || cfg.Iterations != 20 {
		t.Fatalf("absent fields lost their defaults: %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error does not wrap os.ErrNotExist: %v", err)
	}
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("gravity_y: [not a number\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected an unmarshal error")
	}
}

func TestNormalizeFillsZeroFields(t *testing.T) {
	var cfg Config
	cfg.normalize()

	def := DefaultConfig()
	if cfg.ArenaSize != def.ArenaSize || cfg.MaxBodies != def.MaxBodies ||
		cfg.MaxBodyPairs != def.MaxBodyPairs ||
		cfg.MaxContactConstraints != def.MaxContactConstraints ||
		cfg.Iterations != def.Iterations {
		t.Fatalf("normalize left zero fields: %+v", cfg)
	}
	// workers stays zero so the driver can pick its own count
	if cfg.Workers != 0 {
		t.Fatalf("normalize touched Workers: %d", cfg.Workers)
	}
}
