package sim

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
)

// LogSummary logs run-level totals and the best hunters.
func (s *Simulation) LogSummary() {
	t := s.totals

	catchRate := 0.0
	if t.Hunts > 0 {
		catchRate = float64(t.Catches) / float64(t.Hunts) * 100
	}

	slog.Info("run complete",
		"ticks", humanize.Comma(int64(s.tick)),
		"hunts", humanize.Comma(int64(t.Hunts)),
		"catches", humanize.Comma(int64(t.Catches)),
		"catch_rate", fmt.Sprintf("%.1f%%", catchRate),
		"escapes", humanize.Comma(int64(t.Escapes)),
		"births", humanize.Comma(int64(t.Births)),
		"starved", humanize.Comma(int64(t.Starved)),
		"restocked", humanize.Comma(int64(t.Restocked)),
		"crabs", humanize.Comma(int64(s.CrabCount())),
		"prey", humanize.Comma(int64(s.ocean.TotalPrey())),
	)

	for i, e := range s.hallOfFame.Entries() {
		if i == 3 {
			break
		}
		slog.Info("hall of fame",
			"rank", humanize.Ordinal(i+1),
			"crab", e.Name,
			"beach", e.Beach,
			"diet", e.Diet,
			"catches", humanize.Comma(int64(e.Catches)),
			"children", e.Children,
		)
	}

	for _, b := range s.ocean.Beaches() {
		if c, ok := b.Fastest(); ok {
			slog.Info("beach",
				"name", b.Name(),
				"crabs", b.Size(),
				"fastest", c.Name(),
				"speed", c.Speed(),
			)
		}
	}
}
