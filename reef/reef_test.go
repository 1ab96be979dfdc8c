package reef

import (
	"testing"

	"github.com/pthm-cable/ocean/prey"
)

func TestTakeFromEmpty(t *testing.T) {
	r := New()

	if r.Population() != 0 {
		t.Fatalf("new reef population = %d, want 0", r.Population())
	}
	p, ok := r.TakePrey()
	if ok || p != nil {
		t.Errorf("TakePrey on empty reef = (%v, %v), want (nil, false)", p, ok)
	}
}

func TestTakeReturnsFront(t *testing.T) {
	r := New()
	first := prey.NewClam()
	last := prey.NewAlgae()
	r.AddPrey(first)
	r.AddPrey(last)

	got, ok := r.TakePrey()
	if !ok {
		t.Fatal("expected prey")
	}
	if got != first {
		t.Errorf("TakePrey returned %v, want the front prey", got.Kind())
	}
	if snap := r.Prey(); snap[len(snap)-1] != last {
		t.Error("most recently added prey should be visible last")
	}
	if r.Population() != 1 {
		t.Errorf("population = %d, want 1", r.Population())
	}
}

func TestExhaustWithoutDuplicates(t *testing.T) {
	r := New()
	added := make(map[prey.Prey]bool)
	for i := 0; i < 10; i++ {
		p := prey.NewShrimp(uint32(i))
		added[p] = true
		r.AddPrey(p)
	}

	taken := make(map[prey.Prey]bool)
	for i := 0; i < 10; i++ {
		p, ok := r.TakePrey()
		if !ok {
			t.Fatalf("take %d: reef empty early", i)
		}
		if taken[p] {
			t.Fatalf("take %d: duplicate prey", i)
		}
		if !added[p] {
			t.Fatalf("take %d: prey never added", i)
		}
		taken[p] = true
	}

	if r.Population() != 0 {
		t.Errorf("population = %d after exhausting, want 0", r.Population())
	}
	if _, ok := r.TakePrey(); ok {
		t.Error("exhausted reef returned prey")
	}
}

func TestTakeAddRotation(t *testing.T) {
	r := New()
	var all []prey.Prey
	for i := 0; i < 4; i++ {
		p := prey.NewShrimp(uint32(i))
		all = append(all, p)
		r.AddPrey(p)
	}

	// Taking and immediately re-adding walks the whole reef once
	for i := 0; i < 4; i++ {
		p, ok := r.TakePrey()
		if !ok {
			t.Fatalf("round %d: reef empty", i)
		}
		if p != all[i] {
			t.Fatalf("round %d: saw prey out of order", i)
		}
		r.AddPrey(p)
	}

	if r.Population() != 4 {
		t.Errorf("population = %d, want 4", r.Population())
	}
}

func TestPreyIsACopy(t *testing.T) {
	r := New()
	r.AddPrey(prey.NewClam())

	snapshot := r.Prey()
	snapshot[0] = nil

	if got := r.Prey()[0]; got == nil {
		t.Error("mutating snapshot changed reef contents")
	}
}

func TestCensus(t *testing.T) {
	r := New()
	r.AddPrey(prey.NewClam())
	r.AddPrey(prey.NewClam())
	r.AddPrey(prey.NewAlgae())

	c := r.Census()
	if c[prey.KindClam] != 2 || c[prey.KindAlgae] != 1 || c[prey.KindShrimp] != 0 {
		t.Errorf("census = %v", c)
	}
}
