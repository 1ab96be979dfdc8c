// Package beach holds the crabs living on one stretch of shore.
package beach

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/pthm-cable/ocean/crab"
)

// Beach owns a list of crabs in the order they arrived.
type Beach struct {
	name  string
	crabs []*crab.Crab
}

// New creates an empty beach.
func New(name string) *Beach {
	return &Beach{name: name}
}

// Name returns the beach name.
func (b *Beach) Name() string {
	return b.name
}

// Size returns the number of crabs on the beach.
func (b *Beach) Size() int {
	return len(b.crabs)
}

// AddCrab appends c to the end of the beach.
func (b *Beach) AddCrab(c *crab.Crab) {
	b.crabs = append(b.crabs, c)
}

// Crab returns the crab at index i. Panics if i is out of range.
func (b *Beach) Crab(i int) *crab.Crab {
	if i < 0 || i >= len(b.crabs) {
		panic(fmt.Sprintf("beach %q: crab index %d out of range [0,%d)", b.name, i, len(b.crabs)))
	}
	return b.crabs[i]
}

// Crabs returns the crabs in insertion order. The slice is a copy.
func (b *Beach) Crabs() []*crab.Crab {
	out := make([]*crab.Crab, len(b.crabs))
	copy(out, b.crabs)
	return out
}

// Fastest returns the crab with the highest speed. The latest crab wins a
// tie. Returns false if the beach is empty.
func (b *Beach) Fastest() (*crab.Crab, bool) {
	if len(b.crabs) == 0 {
		return nil, false
	}
	best := b.crabs[0]
	for _, c := range b.crabs[1:] {
		if c.Speed() >= best.Speed() {
			best = c
		}
	}
	return best, true
}

// FindByName returns every crab named exactly name, in insertion order.
func (b *Beach) FindByName(name string) []*crab.Crab {
	var out []*crab.Crab
	for _, c := range b.crabs {
		if c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

// FindSimilar returns crabs whose names are within maxDistance edits of name
// (case-insensitive), closest first.
func (b *Beach) FindSimilar(name string, maxDistance int) []*crab.Crab {
	type scored struct {
		c    *crab.Crab
		dist int
	}

	query := strings.ToLower(name)
	var matches []scored
	for _, c := range b.crabs {
		dist := levenshtein.ComputeDistance(query, strings.ToLower(c.Name()))
		if dist > maxDistance {
			continue
		}
		matches = append(matches, scored{c: c, dist: dist})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].dist < matches[j].dist
	})

	out := make([]*crab.Crab, len(matches))
	for i, m := range matches {
		out[i] = m.c
	}
	return out
}

// BreedCrabs breeds the crabs at indices i and j and appends the offspring.
// Panics if either index is out of range.
func (b *Beach) BreedCrabs(i, j int, name string, rng *rand.Rand) *crab.Crab {
	n := len(b.crabs)
	if i < 0 || i >= n || j < 0 || j >= n {
		panic(fmt.Sprintf("beach %q: indices are out of bounds (%d, %d) for %d crabs", b.name, i, j, n))
	}
	child := crab.Breed(b.crabs[i], b.crabs[j], name, rng)
	b.crabs = append(b.crabs, child)
	return child
}

// RemoveCrab takes c off the beach, keeping the order of the rest.
// Returns false if c does not live here.
func (b *Beach) RemoveCrab(c *crab.Crab) bool {
	for i, other := range b.crabs {
		if other == c {
			copy(b.crabs[i:], b.crabs[i+1:])
			b.crabs[len(b.crabs)-1] = nil
			b.crabs = b.crabs[:len(b.crabs)-1]
			return true
		}
	}
	return false
}
