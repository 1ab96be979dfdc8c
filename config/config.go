// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/ocean/diet"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults returns the embedded default configuration document.
func Defaults() []byte {
	return defaultsYAML
}

// Config holds all simulation configuration parameters.
type Config struct {
	Prey      PreyConfig      `yaml:"prey"`
	Reefs     []ReefConfig    `yaml:"reefs"`
	Beaches   []BeachConfig   `yaml:"beaches"`
	Hunting   HuntingConfig   `yaml:"hunting"`
	Breeding  BreedingConfig  `yaml:"breeding"`
	Restock   RestockConfig   `yaml:"restock"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Bookmarks BookmarksConfig `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// PreyConfig holds the attributes of freshly generated prey.
type PreyConfig struct {
	MinnowSpeed  uint32 `yaml:"minnow_speed"`  // Percent chance a minnow escapes an attempt
	ShrimpEnergy uint32 `yaml:"shrimp_energy"` // Escapes a shrimp can afford
}

// ReefConfig is the starting population of one reef.
type ReefConfig struct {
	Minnows int `yaml:"minnows"`
	Shrimp  int `yaml:"shrimp"`
	Clams   int `yaml:"clams"`
	Algae   int `yaml:"algae"`
}

// BeachConfig describes one beach and the crabs that start on it.
type BeachConfig struct {
	Name  string       `yaml:"name"`
	Crabs []CrabConfig `yaml:"crabs"`
}

// CrabConfig describes a founding crab.
type CrabConfig struct {
	Name  string    `yaml:"name"`
	Speed uint32    `yaml:"speed"`
	Color string    `yaml:"color"` // "#rrggbb" or "#rrggbbaa"; empty = DefaultColor
	Diet  diet.Diet `yaml:"diet"`
	Reefs []int     `yaml:"reefs"` // Indices into reefs, in discovery order
}

// HuntingConfig holds hunting parameters.
type HuntingConfig struct {
	StarveAfter int `yaml:"starve_after"` // Consecutive failed hunts before a crab dies (0 = never)
}

// BreedingConfig holds breeding parameters.
type BreedingConfig struct {
	Interval int     `yaml:"interval"` // Ticks between breeding rounds (0 = disabled)
	Chance   float64 `yaml:"chance"`   // Per-beach probability of a birth each round
	Discover int     `yaml:"discover"` // Random reefs an offspring discovers after birth
}

// RestockConfig holds reef replenishment parameters.
type RestockConfig struct {
	Interval int        `yaml:"interval"` // Ticks between restocks (0 = disabled)
	Counts   ReefConfig `yaml:"counts"`   // Prey added to every reef per restock
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Ticks per stats window
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	HallOfFameSize      int `yaml:"hall_of_fame_size"` // Best hunters kept for hall_of_fame.json
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	HuntBreakthrough HuntBreakthroughConfig `yaml:"hunt_breakthrough"`
	PreyCrash        PreyCrashConfig        `yaml:"prey_crash"`
}

// HuntBreakthroughConfig holds hunt breakthrough detection parameters.
type HuntBreakthroughConfig struct {
	Multiplier float64 `yaml:"multiplier"`
	MinCatches int     `yaml:"min_catches"`
}

// PreyCrashConfig holds prey crash detection parameters.
type PreyCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CrabColors  [][]color.RGBA // [beach][crab] parsed colours
	FounderCrab int            // Total founding crabs across beaches
	FounderPrey int            // Total founding prey across reefs
}

// DefaultColor is used for crabs configured without a colour.
var DefaultColor = color.RGBA{R: 0xd2, G: 0x69, B: 0x1e, A: 0xff}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file; lists are replaced whole
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived validates the world layout and calculates derived values.
func (c *Config) computeDerived() error {
	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 1
	}
	if c.Breeding.Chance < 0 || c.Breeding.Chance > 1 {
		return fmt.Errorf("breeding.chance %.2f outside [0,1]", c.Breeding.Chance)
	}
	if c.Breeding.Discover < 0 {
		return fmt.Errorf("breeding.discover %d is negative", c.Breeding.Discover)
	}
	if c.Breeding.Interval < 0 {
		return fmt.Errorf("breeding.interval %d is negative", c.Breeding.Interval)
	}
	if c.Hunting.StarveAfter < 0 {
		return fmt.Errorf("hunting.starve_after %d is negative", c.Hunting.StarveAfter)
	}
	if c.Restock.Interval < 0 {
		return fmt.Errorf("restock.interval %d is negative", c.Restock.Interval)
	}
	if r := c.Restock.Counts; r.Minnows < 0 || r.Shrimp < 0 || r.Clams < 0 || r.Algae < 0 {
		return fmt.Errorf("restock.counts: negative prey count")
	}

	c.Derived.FounderPrey = 0
	for i, r := range c.Reefs {
		if r.Minnows < 0 || r.Shrimp < 0 || r.Clams < 0 || r.Algae < 0 {
			return fmt.Errorf("reef %d: negative prey count", i)
		}
		c.Derived.FounderPrey += r.Minnows + r.Shrimp + r.Clams + r.Algae
	}

	c.Derived.FounderCrab = 0
	c.Derived.CrabColors = make([][]color.RGBA, len(c.Beaches))
	for bi, b := range c.Beaches {
		c.Derived.CrabColors[bi] = make([]color.RGBA, len(b.Crabs))
		for ci, cr := range b.Crabs {
			if !cr.Diet.Valid() {
				return fmt.Errorf("beach %q crab %q: invalid diet", b.Name, cr.Name)
			}
			for _, idx := range cr.Reefs {
				if idx < 0 || idx >= len(c.Reefs) {
					return fmt.Errorf("beach %q crab %q: reef index %d out of range [0,%d)", b.Name, cr.Name, idx, len(c.Reefs))
				}
			}
			col, err := ParseColor(cr.Color)
			if err != nil {
				return fmt.Errorf("beach %q crab %q: %w", b.Name, cr.Name, err)
			}
			c.Derived.CrabColors[bi][ci] = col
			c.Derived.FounderCrab++
		}
	}
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". An empty string yields DefaultColor.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultColor, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FormatColor renders c as "#rrggbbaa", the inverse of ParseColor.
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
