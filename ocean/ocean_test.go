package ocean

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/pthm-cable/ocean/beach"
	"github.com/pthm-cable/ocean/prey"
)

func TestGenerateReef(t *testing.T) {
	o := New(DefaultStock(), rand.New(rand.NewSource(1)))

	r := o.GenerateReef(2, 3, 1, 4)

	if r.Population() != 10 {
		t.Fatalf("population = %d, want 10", r.Population())
	}
	if reefs := o.Reefs(); len(reefs) != 1 || reefs[0] != r {
		t.Fatal("generated reef should be registered with the ocean")
	}

	census := r.Census()
	want := map[prey.Kind]int{
		prey.KindMinnow: 2,
		prey.KindShrimp: 3,
		prey.KindClam:   1,
		prey.KindAlgae:  4,
	}
	for k, n := range want {
		if census[k] != n {
			t.Errorf("%s count = %d, want %d", k, census[k], n)
		}
	}

	for _, p := range r.Prey() {
		switch v := p.(type) {
		case *prey.Minnow:
			if v.Speed() != 25 {
				t.Errorf("minnow speed = %d, want 25", v.Speed())
			}
		case *prey.Shrimp:
			if v.Energy() != 1 {
				t.Errorf("shrimp energy = %d, want 1", v.Energy())
			}
		}
	}
}

func TestGenerateEmptyReef(t *testing.T) {
	o := New(DefaultStock(), rand.New(rand.NewSource(1)))
	r := o.GenerateReef(0, 0, 0, 0)

	if r.Population() != 0 {
		t.Errorf("population = %d, want 0", r.Population())
	}
	if o.Reef(0) != r {
		t.Error("empty reef should still be registered")
	}
}

func TestRestockAndTotal(t *testing.T) {
	o := New(Stock{MinnowSpeed: 60, ShrimpEnergy: 3}, rand.New(rand.NewSource(1)))
	a := o.GenerateReef(1, 0, 0, 0)
	o.GenerateReef(0, 0, 2, 0)

	o.Restock(a, Counts{Shrimp: 2, Algae: 1})

	if a.Population() != 4 {
		t.Errorf("restocked population = %d, want 4", a.Population())
	}
	if o.TotalPrey() != 6 {
		t.Errorf("TotalPrey = %d, want 6", o.TotalPrey())
	}
	if (Counts{Minnows: 1, Shrimp: 2, Clams: 3, Algae: 4}).Total() != 10 {
		t.Error("Counts.Total mismatch")
	}
}

func TestBeaches(t *testing.T) {
	o := New(DefaultStock(), rand.New(rand.NewSource(1)))
	north, south := beach.New("north"), beach.New("south")
	o.AddBeach(north)
	o.AddBeach(south)

	got := o.Beaches()
	if len(got) != 2 || got[0] != north || got[1] != south {
		t.Error("beaches should be kept in insertion order")
	}
}

func TestReefOutOfRangePanics(t *testing.T) {
	o := New(DefaultStock(), rand.New(rand.NewSource(1)))
	o.GenerateReef(1, 0, 0, 0)

	for _, i := range []int{-1, 1} {
		func() {
			defer func() {
				r := recover()
				msg, ok := r.(string)
				if !ok || !strings.Contains(msg, "out of range") {
					t.Errorf("Reef(%d) panic = %v, want out of range message", i, r)
				}
			}()
			o.Reef(i)
		}()
	}
}
