package telemetry

import (
	"encoding/json"
	"sort"
)

// childWeight is the fitness of one offspring, in catches.
const childWeight = 2

// HallEntry records a crab that hunted or bred well.
type HallEntry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Beach     string  `json:"beach"`
	Diet      string  `json:"diet"`
	Speed     uint32  `json:"speed"`
	Color     string  `json:"color"`
	Founder   bool    `json:"founder"`
	BirthTick int32   `json:"birth_tick"`
	DeathTick int32   `json:"death_tick,omitempty"` // zero while alive
	Hunts     int     `json:"hunts"`
	Catches   int     `json:"catches"`
	Children  int     `json:"children"`
	CatchRate float64 `json:"catch_rate"`
	Fitness   int     `json:"fitness"`
}

// HallOfFame keeps the fittest crabs seen during a run, sorted by fitness.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a hall holding at most maxSize entries.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider evaluates a crab for hall of fame entry.
// Crabs that never caught anything and never bred are not eligible.
// Returns true if the crab was added.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	if entry.Catches == 0 && entry.Children == 0 {
		return false
	}
	entry.Fitness = entry.Catches + childWeight*entry.Children
	if entry.Hunts > 0 {
		entry.CatchRate = float64(entry.Catches) / float64(entry.Hunts)
	}

	// Sorted descending; equal fitness keeps the earlier entry first
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].Fitness < entry.Fitness
	})
	if idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, HallEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// Top returns the best entry, if any.
func (hof *HallOfFame) Top() (HallEntry, bool) {
	if len(hof.entries) == 0 {
		return HallEntry{}, false
	}
	return hof.entries[0], true
}

// Entries returns a copy of the entries, best first.
func (hof *HallOfFame) Entries() []HallEntry {
	out := make([]HallEntry, len(hof.entries))
	copy(out, hof.entries)
	return out
}

// MarshalJSON serializes the hall of fame to JSON.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.Entries(), "", "  ")
}
