// Package main provides CMA-ES optimization for ocean simulation parameters.
package main

import (
	"math"

	"github.com/pthm-cable/ocean/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before use
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Prey
			{Name: "minnow_speed", Path: "prey.minnow_speed", Min: 0, Max: 100, Default: 25, Integer: true},
			{Name: "shrimp_energy", Path: "prey.shrimp_energy", Min: 0, Max: 5, Default: 1, Integer: true},
			// Hunting
			{Name: "starve_after", Path: "hunting.starve_after", Min: 5, Max: 100, Default: 40, Integer: true},
			// Breeding
			{Name: "breeding_interval", Path: "breeding.interval", Min: 5, Max: 100, Default: 25, Integer: true},
			{Name: "breeding_chance", Path: "breeding.chance", Min: 0.05, Max: 1.0, Default: 0.5},
			{Name: "breeding_discover", Path: "breeding.discover", Min: 0, Max: 3, Default: 2, Integer: true},
			// Restock
			{Name: "restock_interval", Path: "restock.interval", Min: 1, Max: 50, Default: 10, Integer: true},
			{Name: "restock_minnows", Path: "restock.counts.minnows", Min: 0, Max: 5, Default: 1, Integer: true},
			{Name: "restock_shrimp", Path: "restock.counts.shrimp", Min: 0, Max: 5, Default: 1, Integer: true},
			{Name: "restock_clams", Path: "restock.counts.clams", Min: 0, Max: 5, Default: 1, Integer: true},
			{Name: "restock_algae", Path: "restock.counts.algae", Min: 0, Max: 10, Default: 2, Integer: true},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds, rounding integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Max(spec.Min, math.Min(spec.Max, v[i]))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	// Order must match Specs order
	cfg.Prey.MinnowSpeed = uint32(clamped[0])
	cfg.Prey.ShrimpEnergy = uint32(clamped[1])
	cfg.Hunting.StarveAfter = int(clamped[2])
	cfg.Breeding.Interval = int(clamped[3])
	cfg.Breeding.Chance = clamped[4]
	cfg.Breeding.Discover = int(clamped[5])
	cfg.Restock.Interval = int(clamped[6])
	cfg.Restock.Counts.Minnows = int(clamped[7])
	cfg.Restock.Counts.Shrimp = int(clamped[8])
	cfg.Restock.Counts.Clams = int(clamped[9])
	cfg.Restock.Counts.Algae = int(clamped[10])
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Prey.MinnowSpeed),
		float64(cfg.Prey.ShrimpEnergy),
		float64(cfg.Hunting.StarveAfter),
		float64(cfg.Breeding.Interval),
		cfg.Breeding.Chance,
		float64(cfg.Breeding.Discover),
		float64(cfg.Restock.Interval),
		float64(cfg.Restock.Counts.Minnows),
		float64(cfg.Restock.Counts.Shrimp),
		float64(cfg.Restock.Counts.Clams),
		float64(cfg.Restock.Counts.Algae),
	}
}
