// Package sim wires the simulation together: it owns the world, the
// scratch arena and the worker job pool, installs the process-wide
// diagnostic hooks and shape registry, and exposes the single Step entry
// point the host drives the simulation with.
package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/rigid/diag"
)

// Config tunes a driver. Zero fields fall back to defaults sized for a
// real-time scene of about a thousand bodies; the capacity fields are hard
// caps, fixed at construction.
type Config struct {
	GravityX              float64 `yaml:"gravity_x"`
	GravityY              float64 `yaml:"gravity_y"`
	ArenaSize             int     `yaml:"arena_size"`
	Workers               int     `yaml:"workers"`
	MaxBodies             int     `yaml:"max_bodies"`
	MaxBodyPairs          int     `yaml:"max_body_pairs"`
	MaxContactConstraints int     `yaml:"max_contact_constraints"`
	Iterations            int     `yaml:"iterations"`

	// Diagnostic sinks, installed process-wide before any other
	// initialization. Not part of the config file.
	Trace        diag.TraceFunc        `yaml:"-"`
	AssertFailed diag.AssertFailedFunc `yaml:"-"`
}

// DefaultConfig returns the built-in tuning: 10 MiB of scratch, caps of
// 1024 bodies/pairs/contact constraints and screen-down gravity.
func DefaultConfig() Config {
	return Config{
		GravityY:              980,
		ArenaSize:             10 * 1024 * 1024,
		MaxBodies:             1024,
		MaxBodyPairs:          1024,
		MaxContactConstraints: 1024,
		Iterations:            20,
	}
}

// LoadConfig reads a YAML config file over the defaults, so absent fields
// keep their default values.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("sim: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("sim: unmarshal %s: %w", filename, err)
	}
	return cfg, nil
}

// normalize fills structural zero fields with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.ArenaSize <= 0 {
		c.ArenaSize = def.ArenaSize
	}
	if c.MaxBodies <= 0 {
		c.MaxBodies = def.MaxBodies
	}
	if c.MaxBodyPairs <= 0 {
		c.MaxBodyPairs = def.MaxBodyPairs
	}
	if c.MaxContactConstraints <= 0 {
		c.MaxContactConstraints = def.MaxContactConstraints
	}
	if c.Iterations <= 0 {
		c.Iterations = def.Iterations
	}
}
