package sim

import (
	"log/slog"

	"github.com/pthm-cable/ocean/beach"
	"github.com/pthm-cable/ocean/config"
	"github.com/pthm-cable/ocean/crab"
)

// updateBreeding gives every beach with at least two crabs a chance to raise one offspring.
func (s *Simulation) updateBreeding() {
	cfg := s.cfg.Breeding

	for _, b := range s.ocean.Beaches() {
		n := b.Size()
		if n < 2 {
			continue
		}
		if s.rng.Float64() >= cfg.Chance {
			continue
		}

		// Two distinct parents
		i := s.rng.Intn(n)
		j := s.rng.Intn(n - 1)
		if j >= i {
			j++
		}

		s.breedPair(b, i, j)
	}
}

// breedPair breeds the crabs at i and j on b and registers the offspring.
func (s *Simulation) breedPair(b *beach.Beach, i, j int) {
	motherCrab, fatherCrab := b.Crab(i), b.Crab(j)

	id := s.newID()
	name := b.Name() + "-" + id.String()[:8]
	child := b.BreedCrabs(i, j, name, s.rng)

	reefs := s.ocean.Reefs()
	discover := min(s.cfg.Breeding.Discover, len(reefs))
	for _, idx := range s.rng.Perm(len(reefs))[:discover] {
		child.DiscoverReef(reefs[idx])
	}

	s.spawnCrab(child, b, id, false)

	for _, parent := range []*crab.Crab{motherCrab, fatherCrab} {
		_, _, appetite := s.crabMapper.Get(s.entities[parent])
		appetite.Children++
	}

	s.collector.RecordBirth()
	s.totals.Births++

	slog.Debug("crab born",
		"tick", s.tick,
		"beach", b.Name(),
		"crab", name,
		"diet", child.Diet().String(),
		"color", config.FormatColor(child.Color()),
		"reefs", len(child.Reefs()),
		"parents", []string{motherCrab.Name(), fatherCrab.Name()},
	)
}
