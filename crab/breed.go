package crab

import (
	"image/color"
	"math/rand"

	"github.com/pthm-cable/ocean/diet"
)

// OffspringSpeed is the speed every newly bred crab starts with.
const OffspringSpeed = 1

// CrossRule derives an offspring colour from its parents' colours.
type CrossRule func(a, b color.RGBA) color.RGBA

// Blend crosses two colours by averaging each channel.
func Blend(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
		A: uint8((uint16(a.A) + uint16(b.A)) / 2),
	}
}

// Breed creates an offspring of a and b using Blend for its colour.
func Breed(a, b *Crab, name string, rng *rand.Rand) *Crab {
	return BreedWith(a, b, name, Blend, rng)
}

// BreedWith creates an offspring of a and b. The offspring has minimal speed,
// a colour given by cross, a random diet and no known reefs. Neither parent
// is modified.
func BreedWith(a, b *Crab, name string, cross CrossRule, rng *rand.Rand) *Crab {
	return New(name, OffspringSpeed, cross(a.color, b.color), diet.Random(rng))
}
