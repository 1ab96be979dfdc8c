// Package ocean aggregates the reefs and beaches of one simulated world.
package ocean

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/ocean/beach"
	"github.com/pthm-cable/ocean/prey"
	"github.com/pthm-cable/ocean/reef"
)

// Stock holds the attributes given to freshly generated prey.
type Stock struct {
	MinnowSpeed  uint32
	ShrimpEnergy uint32
}

// DefaultStock returns minnows of speed 25 and shrimp with energy 1.
func DefaultStock() Stock {
	return Stock{MinnowSpeed: 25, ShrimpEnergy: 1}
}

// Counts is the number of each prey variant to place on a reef.
type Counts struct {
	Minnows int
	Shrimp  int
	Clams   int
	Algae   int
}

// Total returns the sum of all counts.
func (c Counts) Total() int {
	return c.Minnows + c.Shrimp + c.Clams + c.Algae
}

// Ocean owns the world's reefs and beaches in insertion order.
type Ocean struct {
	reefs   []*reef.Reef
	beaches []*beach.Beach
	stock   Stock
	rng     *rand.Rand
}

// New creates an empty ocean. Minnows it generates draw escape rolls from rng.
func New(stock Stock, rng *rand.Rand) *Ocean {
	return &Ocean{stock: stock, rng: rng}
}

// AddBeach appends b to the ocean.
func (o *Ocean) AddBeach(b *beach.Beach) {
	o.beaches = append(o.beaches, b)
}

// Beaches returns the beaches in insertion order.
func (o *Ocean) Beaches() []*beach.Beach {
	out := make([]*beach.Beach, len(o.beaches))
	copy(out, o.beaches)
	return out
}

// Reefs returns the reefs in generation order. The reefs are shared handles.
func (o *Ocean) Reefs() []*reef.Reef {
	out := make([]*reef.Reef, len(o.reefs))
	copy(out, o.reefs)
	return out
}

// Reef returns the reef at index i. Panics if i is out of range.
func (o *Ocean) Reef(i int) *reef.Reef {
	if i < 0 || i >= len(o.reefs) {
		panic(fmt.Sprintf("ocean: reef index %d out of range [0,%d)", i, len(o.reefs)))
	}
	return o.reefs[i]
}

// GenerateReef creates a reef holding the given number of minnows, shrimp,
// clams and algae (added in that order), registers it with the ocean and
// returns it.
func (o *Ocean) GenerateReef(minnows, shrimp, clams, algae int) *reef.Reef {
	r := reef.New()
	o.Restock(r, Counts{Minnows: minnows, Shrimp: shrimp, Clams: clams, Algae: algae})
	o.reefs = append(o.reefs, r)
	return r
}

// Restock adds fresh prey to r using the ocean's stock attributes.
func (o *Ocean) Restock(r *reef.Reef, c Counts) {
	for range c.Minnows {
		r.AddPrey(prey.NewMinnow(o.stock.MinnowSpeed, o.rng))
	}
	for range c.Shrimp {
		r.AddPrey(prey.NewShrimp(o.stock.ShrimpEnergy))
	}
	for range c.Clams {
		r.AddPrey(prey.NewClam())
	}
	for range c.Algae {
		r.AddPrey(prey.NewAlgae())
	}
}

// TotalPrey sums the population of every reef.
func (o *Ocean) TotalPrey() int {
	n := 0
	for _, r := range o.reefs {
		n += r.Population()
	}
	return n
}
