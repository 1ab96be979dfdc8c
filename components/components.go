// Package components defines ECS components for the simulation.
package components

import (
	"github.com/google/uuid"

	"github.com/pthm-cable/ocean/beach"
	"github.com/pthm-cable/ocean/crab"
)

// Forager links an entity to the crab it simulates and the beach that owns it.
type Forager struct {
	Crab  *crab.Crab
	Beach *beach.Beach
}

// Identity holds bookkeeping that the crab itself does not carry.
type Identity struct {
	ID        uuid.UUID
	BirthTick int32
	Founder   bool // Spawned from config rather than bred
}

// Appetite tracks a crab's hunting record over its lifetime.
type Appetite struct {
	Hunts    int
	Catches  int
	Escapes  int
	Rejected int
	Hungry   int // Consecutive failed hunts
	Children int
}

// Record updates the tally after one hunt.
func (a *Appetite) Record(success bool, escapes, rejected int) {
	a.Hunts++
	a.Escapes += escapes
	a.Rejected += rejected
	if success {
		a.Catches++
		a.Hungry = 0
		return
	}
	a.Hungry++
}

// CatchRate returns catches per hunt, 0 before the first hunt.
func (a *Appetite) CatchRate() float64 {
	if a.Hunts == 0 {
		return 0
	}
	return float64(a.Catches) / float64(a.Hunts)
}

// Starving reports whether the crab has failed at least limit hunts in a row.
// A limit of 0 disables starvation.
func (a *Appetite) Starving(limit int) bool {
	return limit > 0 && a.Hungry >= limit
}
