package crab

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/pthm-cable/ocean/diet"
	"github.com/pthm-cable/ocean/prey"
	"github.com/pthm-cable/ocean/reef"
)

var sand = color.RGBA{R: 194, G: 178, B: 128, A: 255}

func newReef(ps ...prey.Prey) *reef.Reef {
	r := reef.New()
	for _, p := range ps {
		r.AddPrey(p)
	}
	return r
}

func totalPopulation(reefs ...*reef.Reef) int {
	n := 0
	for _, r := range reefs {
		n += r.Population()
	}
	return n
}

func TestAccessors(t *testing.T) {
	c := New("ferris", 7, sand, diet.Shellfish)

	if c.Name() != "ferris" || c.Speed() != 7 || c.Color() != sand || c.Diet() != diet.Shellfish {
		t.Errorf("unexpected crab fields: %s %d %v %v", c.Name(), c.Speed(), c.Color(), c.Diet())
	}
	if len(c.Reefs()) != 0 {
		t.Errorf("new crab knows %d reefs, want 0", len(c.Reefs()))
	}

	a, b := reef.New(), reef.New()
	c.DiscoverReef(a)
	c.DiscoverReef(b)
	got := c.Reefs()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Error("reefs should be kept in discovery order")
	}
}

func TestHuntWithoutReefs(t *testing.T) {
	c := New("lonely", 3, sand, diet.Fish)

	if c.Hunt() {
		t.Error("crab with no reefs should never catch anything")
	}
	rep := c.HuntReport()
	if rep.Success() || rep.Reef != -1 || rep.Searches != 1 {
		t.Errorf("unexpected report %+v", rep)
	}
}

func TestHuntCatchesMatchingDiet(t *testing.T) {
	r := newReef(prey.NewAlgae(), prey.NewClam(), prey.NewAlgae())
	c := New("ferris", 5, sand, diet.Shellfish)
	c.DiscoverReef(r)

	rep := c.HuntReport()

	if !rep.Success() {
		t.Fatal("expected a catch")
	}
	if rep.Caught.Diet() != c.Diet() {
		t.Errorf("caught %v, crab eats %v", rep.Caught.Diet(), c.Diet())
	}
	if rep.Rejected != 1 {
		t.Errorf("rejected = %d, want 1", rep.Rejected)
	}
	if r.Population() != 2 {
		t.Errorf("population = %d, want 2", r.Population())
	}
	for _, p := range r.Prey() {
		if p.Kind() != prey.KindAlgae {
			t.Errorf("left %v on reef, only algae should remain", p.Kind())
		}
	}
}

func TestHuntExhaustsMismatchedReef(t *testing.T) {
	var original []prey.Prey
	for i := 0; i < 5; i++ {
		original = append(original, prey.NewAlgae())
	}
	r := newReef(original...)
	c := New("picky", 4, sand, diet.Fish)
	c.DiscoverReef(r)

	before := r.Population()
	rep := c.HuntReport()

	if rep.Success() {
		t.Fatal("fish eater caught something on an algae reef")
	}
	if rep.Escapes != 0 {
		t.Errorf("diet mismatches must not count as escapes, got %d", rep.Escapes)
	}
	if rep.Rejected != 5 {
		t.Errorf("rejected = %d, want each prey seen once (5)", rep.Rejected)
	}
	if after := r.Population(); after != before || after != 5 {
		t.Errorf("population %d -> %d, want 5 -> 5", before, after)
	}

	present := make(map[prey.Prey]bool)
	for _, p := range r.Prey() {
		present[p] = true
	}
	for i, p := range original {
		if !present[p] {
			t.Errorf("prey %d missing after hunt", i)
		}
	}
}

func TestHuntRestoresEscapedPrey(t *testing.T) {
	shrimp := []*prey.Shrimp{prey.NewShrimp(5), prey.NewShrimp(5), prey.NewShrimp(5)}
	r := newReef(shrimp[0], shrimp[1], shrimp[2], prey.NewAlgae(), prey.NewAlgae())
	c := New("slow", 1, sand, diet.Shellfish)
	c.DiscoverReef(r)

	rep := c.HuntReport()

	if rep.Success() {
		t.Fatal("every shrimp should have escaped")
	}
	if rep.Escapes != 3 {
		t.Errorf("escapes = %d, want 3", rep.Escapes)
	}
	if r.Population() != 5 {
		t.Errorf("population = %d, want 5", r.Population())
	}
	for i, s := range shrimp {
		if s.Energy() != 4 {
			t.Errorf("shrimp %d energy = %d, want 4 (tried exactly once)", i, s.Energy())
		}
	}

	// Released in the order they escaped, behind the algae
	got := r.Prey()
	for i, s := range shrimp {
		if got[2+i] != prey.Prey(s) {
			t.Errorf("position %d: escaped prey not released in order", 2+i)
		}
	}
}

func TestEscapedPreyReturnToOriginReef(t *testing.T) {
	dodger := prey.NewShrimp(1)
	clam := prey.NewClam()
	first := newReef(dodger)
	second := newReef(clam)

	c := New("ferris", 2, sand, diet.Shellfish)
	c.DiscoverReef(first)
	c.DiscoverReef(second)

	rep := c.HuntReport()

	if !rep.Success() || rep.Caught != prey.Prey(clam) {
		t.Fatalf("expected to catch the clam, report %+v", rep)
	}
	if rep.Reef != 1 {
		t.Errorf("catch reef = %d, want 1", rep.Reef)
	}
	if first.Population() != 1 || first.Prey()[0] != prey.Prey(dodger) {
		t.Error("escaped shrimp should be back on the first reef")
	}
	if second.Population() != 0 {
		t.Errorf("second reef population = %d, want 0", second.Population())
	}
}

func TestRejectedPreyMaySurfaceAgain(t *testing.T) {
	r := newReef(prey.NewAlgae(), prey.NewShrimp(1), prey.NewClam())
	c := New("ferris", 2, sand, diet.Shellfish)
	c.DiscoverReef(r)

	rep := c.HuntReport()

	if !rep.Success() || rep.Caught.Kind() != prey.KindClam {
		t.Fatalf("expected the clam after the shrimp escaped, report %+v", rep)
	}
	if rep.Escapes != 1 || rep.Searches != 2 {
		t.Errorf("escapes = %d searches = %d, want 1 and 2", rep.Escapes, rep.Searches)
	}
	census := r.Census()
	if census[prey.KindAlgae] != 1 || census[prey.KindShrimp] != 1 || r.Population() != 2 {
		t.Errorf("census after hunt = %v", census)
	}
}

func TestSharedReefIsVisibleToAllCrabs(t *testing.T) {
	shared := newReef(prey.NewClam(), prey.NewClam())
	a := New("a", 3, sand, diet.Shellfish)
	b := New("b", 4, sand, diet.Shellfish)
	a.DiscoverReef(shared)
	b.DiscoverReef(shared)

	if !a.Hunt() {
		t.Fatal("a should catch a clam")
	}
	if got := b.Reefs()[0].Population(); got != 1 {
		t.Errorf("b sees population %d, want 1", got)
	}
	if !b.Hunt() {
		t.Fatal("b should catch the last clam")
	}
	if a.Hunt() || b.Hunt() {
		t.Error("reef is empty, no crab should catch anything")
	}
}

func TestHuntConservesPrey(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	reefs := make([]*reef.Reef, 3)
	for i := range reefs {
		reefs[i] = reef.New()
		for j := 0; j < 6; j++ {
			reefs[i].AddPrey(prey.NewMinnow(uint32(rng.Intn(101)), rng))
			reefs[i].AddPrey(prey.NewShrimp(uint32(rng.Intn(3))))
			reefs[i].AddPrey(prey.NewClam())
			reefs[i].AddPrey(prey.NewAlgae())
		}
	}

	var crabs []*Crab
	for i, d := range diet.All() {
		c := New("c", uint32(i+1), sand, d)
		for _, j := range rng.Perm(len(reefs))[:2] {
			c.DiscoverReef(reefs[j])
		}
		crabs = append(crabs, c)
	}

	for round := 0; round < 40; round++ {
		c := crabs[round%len(crabs)]
		before := totalPopulation(reefs...)
		rep := c.HuntReport()
		after := totalPopulation(reefs...)

		consumed := 0
		if rep.Success() {
			consumed = 1
			if rep.Caught.Diet() != c.Diet() {
				t.Fatalf("round %d: %v crab ate %v", round, c.Diet(), rep.Caught.Diet())
			}
		}
		if before != after+consumed {
			t.Fatalf("round %d: population %d -> %d with %d consumed", round, before, after, consumed)
		}

		seen := make(map[prey.Prey]bool)
		for _, r := range reefs {
			for _, p := range r.Prey() {
				if seen[p] {
					t.Fatalf("round %d: prey on more than one reef", round)
				}
				if p == rep.Caught {
					t.Fatalf("round %d: consumed prey still on a reef", round)
				}
				seen[p] = true
			}
		}
	}
}
