// Package prey defines the creatures crabs hunt.
//
// The variant set is closed: Minnow, Shrimp, Clam and Algae are the only
// implementations of Prey. Each variant owns its escape rule and may change its
// own state on every attempt, so repeated attempts are not idempotent.
package prey

import (
	"math/rand"

	"github.com/pthm-cable/ocean/diet"
)

// Kind names a prey variant.
type Kind uint8

const (
	KindMinnow Kind = iota
	KindShrimp
	KindClam
	KindAlgae
)

// Kinds returns every variant kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindMinnow, KindShrimp, KindClam, KindAlgae}
}

func (k Kind) String() string {
	switch k {
	case KindMinnow:
		return "minnow"
	case KindShrimp:
		return "shrimp"
	case KindClam:
		return "clam"
	case KindAlgae:
		return "algae"
	default:
		return "unknown"
	}
}

// Predator is the read-only view of a hunter that escape rules may consult.
type Predator interface {
	Name() string
	Speed() uint32
	Diet() diet.Diet
}

// Prey is something a crab may catch.
type Prey interface {
	// Diet identifies which crabs can eat this prey.
	Diet() diet.Diet
	// TryEscape reports whether the prey evades this capture attempt.
	TryEscape(p Predator) bool
	// Kind names the variant.
	Kind() Kind

	sealed()
}

// Minnow is a fish whose speed is its percentage chance to escape an attempt.
type Minnow struct {
	speed uint32
	rng   *rand.Rand
}

// NewMinnow creates a minnow that draws escape rolls from rng.
func NewMinnow(speed uint32, rng *rand.Rand) *Minnow {
	return &Minnow{speed: speed, rng: rng}
}

// Speed returns the minnow's escape chance in percent.
func (m *Minnow) Speed() uint32 { return m.speed }

func (m *Minnow) Diet() diet.Diet { return diet.Fish }
func (m *Minnow) Kind() Kind { return KindMinnow }

// TryEscape rolls [0,100) and escapes when the roll is under the minnow's speed.
func (m *Minnow) TryEscape(Predator) bool {
	return uint32(m.rng.Intn(100)) < m.speed
}

// Shrimp escapes while it still has energy, spending one unit per attempt.
type Shrimp struct {
	energy uint32
}

// NewShrimp creates a shrimp with the given escape budget.
func NewShrimp(energy uint32) *Shrimp {
	return &Shrimp{energy: energy}
}

// Energy returns the remaining number of escapes.
func (s *Shrimp) Energy() uint32 { return s.energy }

func (s *Shrimp) Diet() diet.Diet { return diet.Shellfish }
func (s *Shrimp) Kind() Kind { return KindShrimp }

func (s *Shrimp) TryEscape(Predator) bool {
	if s.energy == 0 {
		return false
	}
	s.energy--
	return true
}

// Clam never escapes; it only counts how often it was prised at.
type Clam struct {
	attempts int
}

// NewClam creates a clam.
func NewClam() *Clam {
	return &Clam{}
}

// Attempts returns how many capture attempts the clam has suffered.
func (c *Clam) Attempts() int { return c.attempts }

func (c *Clam) Diet() diet.Diet { return diet.Shellfish }
func (c *Clam) Kind() Kind { return KindClam }

func (c *Clam) TryEscape(Predator) bool {
	c.attempts++
	return false
}

// Algae never escapes. It is marked grazed once anything tries to eat it.
type Algae struct {
	grazed bool
}

// NewAlgae creates a patch of algae.
func NewAlgae() *Algae {
	return &Algae{}
}

// Grazed reports whether a capture was ever attempted on this patch.
func (a *Algae) Grazed() bool { return a.grazed }

func (a *Algae) Diet() diet.Diet { return diet.Plants }
func (a *Algae) Kind() Kind { return KindAlgae }

func (a *Algae) TryEscape(Predator) bool {
	a.grazed = true
	return false
}

func (*Minnow) sealed() {}
func (*Shrimp) sealed() {}
func (*Clam) sealed() {}
func (*Algae) sealed() {}
