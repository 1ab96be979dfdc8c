// Package crab implements the predators and their hunting protocol.
package crab

import (
	"image/color"

	"github.com/pthm-cable/ocean/diet"
	"github.com/pthm-cable/ocean/reef"
)

// Crab hunts prey matching its diet from the reefs it has discovered.
// Reef handles are shared: the same *reef.Reef may sit in many crabs' lists.
type Crab struct {
	name  string
	speed uint32
	color color.RGBA
	diet  diet.Diet
	reefs []*reef.Reef
}

// New creates a crab that knows no reefs yet.
func New(name string, speed uint32, c color.RGBA, d diet.Diet) *Crab {
	return &Crab{
		name:  name,
		speed: speed,
		color: c,
		diet:  d,
	}
}

func (c *Crab) Name() string { return c.name }
func (c *Crab) Speed() uint32 { return c.speed }
func (c *Crab) Color() color.RGBA { return c.color }
func (c *Crab) Diet() diet.Diet { return c.diet }

// Reefs returns the crab's known reefs in discovery order.
// The slice is a copy; the reefs themselves are shared.
func (c *Crab) Reefs() []*reef.Reef {
	out := make([]*reef.Reef, len(c.reefs))
	copy(out, c.reefs)
	return out
}

// DiscoverReef appends r to the crab's foraging list.
func (c *Crab) DiscoverReef(r *reef.Reef) {
	c.reefs = append(c.reefs, r)
}
