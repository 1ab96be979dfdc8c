package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/ocean/config"
)

func TestDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()

	got := pv.ExtractFromConfig(cfg)
	want := pv.DefaultVector()
	if len(got) != pv.Dim() {
		t.Fatalf("extracted %d values, want %d", len(got), pv.Dim())
	}
	for i, spec := range pv.Specs {
		if got[i] != want[i] {
			t.Errorf("%s: config has %v, param default %v", spec.Path, got[i], want[i])
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestClampRoundsAndBounds(t *testing.T) {
	pv := NewParamVector()
	v := pv.DefaultVector()
	v[0] = 250  // minnow_speed above max
	v[3] = 12.6 // breeding_interval rounds
	v[4] = -1   // breeding_chance below min

	c := pv.Clamp(v)
	if c[0] != 100 {
		t.Errorf("minnow_speed = %v, want 100", c[0])
	}
	if c[3] != 13 {
		t.Errorf("breeding_interval = %v, want 13", c[3])
	}
	if c[4] != 0.05 {
		t.Errorf("breeding_chance = %v, want 0.05", c[4])
	}
}

func TestApplyToConfigRoundTrip(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	values := []float64{50, 2, 30, 10, 0.75, 1, 5, 0, 3, 2, 8}

	pv.ApplyToConfig(cfg, values)
	got := pv.ExtractFromConfig(cfg)
	for i := range values {
		if got[i] != values[i] {
			t.Errorf("%s = %v, want %v", pv.Specs[i].Name, got[i], values[i])
		}
	}
}
