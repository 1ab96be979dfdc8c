package crab

import (
	"github.com/pthm-cable/ocean/prey"
)

// Report summarises one hunt.
type Report struct {
	// Caught is the consumed prey, nil when the hunt failed.
	Caught prey.Prey
	// Reef is the index into the crab's reef list the catch came from, -1 on failure.
	Reef int
	// Escapes counts prey that evaded capture and were released afterwards.
	Escapes int
	// Rejected counts prey put straight back for not matching the crab's diet.
	Rejected int
	// Searches counts capture searches, including the final empty one.
	Searches int
}

// Success reports whether the hunt caught something.
func (r Report) Success() bool {
	return r.Caught != nil
}

// escapee is a prey pending release and the reef it was pulled from.
type escapee struct {
	prey prey.Prey
	reef int
}

// Hunt keeps trying to catch prey until one is caught or no candidate is
// left. Every prey that escaped is released back to its own reef before Hunt
// returns, whatever the outcome.
func (c *Crab) Hunt() bool {
	return c.HuntReport().Success()
}

// HuntReport runs a hunt like Hunt and returns the full tally.
func (c *Crab) HuntReport() Report {
	report := Report{Reef: -1}
	var escaped []escapee

	for {
		report.Searches++
		candidate, idx, rejected, ok := c.catchPrey()
		report.Rejected += rejected
		if !ok {
			break
		}

		if candidate.TryEscape(c) {
			escaped = append(escaped, escapee{prey: candidate, reef: idx})
			report.Escapes++
			continue
		}

		report.Caught = candidate
		report.Reef = idx
		break
	}

	for _, e := range escaped {
		c.releasePrey(e.prey, e.reef)
	}
	return report
}

// catchPrey searches the known reefs in order for prey matching the crab's
// diet. Each reef is tried at most as many times as its population when first
// visited; mismatched prey go straight back onto the same reef. Returns the
// candidate, the index of its reef, and how many prey were rejected on diet.
func (c *Crab) catchPrey() (prey.Prey, int, int, bool) {
	rejected := 0
	for i, r := range c.reefs {
		size := r.Population()
		for range size {
			p, ok := r.TakePrey()
			if !ok {
				break
			}
			if p.Diet() == c.diet {
				return p, i, rejected, true
			}
			r.AddPrey(p)
			rejected++
		}
	}
	return nil, -1, rejected, false
}

// releasePrey returns p to the reef at idx in the crab's list.
func (c *Crab) releasePrey(p prey.Prey, idx int) {
	c.reefs[idx].AddPrey(p)
}
