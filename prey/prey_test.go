package prey

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/ocean/diet"
)

type hunter struct{}

func (hunter) Name() string { return "test" }
func (hunter) Speed() uint32 { return 3 }
func (hunter) Diet() diet.Diet { return diet.Fish }

func TestVariantDiets(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		name string
		p    Prey
		diet diet.Diet
		kind Kind
	}{
		{"minnow", NewMinnow(25, rng), diet.Fish, KindMinnow},
		{"shrimp", NewShrimp(1), diet.Shellfish, KindShrimp},
		{"clam", NewClam(), diet.Shellfish, KindClam},
		{"algae", NewAlgae(), diet.Plants, KindAlgae},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Diet(); got != tt.diet {
				t.Errorf("Diet() = %v, want %v", got, tt.diet)
			}
			if got := tt.p.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
			if tt.p.Kind().String() != tt.name {
				t.Errorf("Kind().String() = %q, want %q", tt.p.Kind().String(), tt.name)
			}
		})
	}
}

func TestShrimpSpendsEnergy(t *testing.T) {
	s := NewShrimp(2)

	if !s.TryEscape(hunter{}) {
		t.Fatal("first attempt: expected escape")
	}
	if !s.TryEscape(hunter{}) {
		t.Fatal("second attempt: expected escape")
	}
	if s.Energy() != 0 {
		t.Fatalf("energy = %d, want 0", s.Energy())
	}
	if s.TryEscape(hunter{}) {
		t.Error("exhausted shrimp should be caught")
	}
	if s.Energy() != 0 {
		t.Errorf("energy went below zero: %d", s.Energy())
	}
}

func TestMinnowSpeedBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	still := NewMinnow(0, rng)
	dart := NewMinnow(100, rng)

	for i := 0; i < 200; i++ {
		if still.TryEscape(hunter{}) {
			t.Fatal("speed 0 minnow escaped")
		}
		if !dart.TryEscape(hunter{}) {
			t.Fatal("speed 100 minnow was caught")
		}
	}
}

func TestMinnowEscapeRate(t *testing.T) {
	m := NewMinnow(25, rand.New(rand.NewSource(3)))

	escapes := 0
	const trials = 4000
	for i := 0; i < trials; i++ {
		if m.TryEscape(hunter{}) {
			escapes++
		}
	}

	rate := float64(escapes) / trials
	if rate < 0.2 || rate > 0.3 {
		t.Errorf("escape rate = %.3f, want ~0.25", rate)
	}
}

func TestNeverEscapingVariantsTrackAttempts(t *testing.T) {
	c := NewClam()
	a := NewAlgae()

	for i := 0; i < 3; i++ {
		if c.TryEscape(hunter{}) {
			t.Fatal("clam escaped")
		}
		if a.TryEscape(hunter{}) {
			t.Fatal("algae escaped")
		}
	}

	if c.Attempts() != 3 {
		t.Errorf("clam attempts = %d, want 3", c.Attempts())
	}
	if !a.Grazed() {
		t.Error("algae should be marked grazed")
	}
}
