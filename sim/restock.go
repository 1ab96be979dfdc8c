package sim

import (
	"log/slog"

	"github.com/pthm-cable/ocean/ocean"
)

// restockReefs adds the configured prey to every reef.
func (s *Simulation) restockReefs() {
	rc := s.cfg.Restock.Counts
	counts := ocean.Counts{
		Minnows: rc.Minnows,
		Shrimp:  rc.Shrimp,
		Clams:   rc.Clams,
		Algae:   rc.Algae,
	}
	if counts.Total() == 0 {
		return
	}

	for _, r := range s.ocean.Reefs() {
		s.ocean.Restock(r, counts)
		s.collector.RecordRestock(counts.Total())
		s.totals.Restocked += counts.Total()
	}

	slog.Debug("reefs restocked", "tick", s.tick, "per_reef", counts.Total(), "prey", s.ocean.TotalPrey())
}
