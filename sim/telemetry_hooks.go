package sim

import (
	"log/slog"

	"github.com/pthm-cable/ocean/prey"
	"github.com/pthm-cable/ocean/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	reefs := s.ocean.Reefs()
	reefPops := make([]float64, len(reefs))
	census := make([]telemetry.CensusRow, len(reefs))
	for i, r := range reefs {
		counts := r.Census()
		census[i] = telemetry.CensusRow{
			Tick:    s.tick,
			Reef:    i,
			Minnows: counts[prey.KindMinnow],
			Shrimp:  counts[prey.KindShrimp],
			Clams:   counts[prey.KindClam],
			Algae:   counts[prey.KindAlgae],
		}
		census[i].Total = census[i].Minnows + census[i].Shrimp + census[i].Clams + census[i].Algae
		reefPops[i] = float64(census[i].Total)
	}

	stats := s.collector.Flush(s.tick, s.CrabCount(), reefPops)
	perfStats := s.perfCollector.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := s.outputManager.WriteCensus(census); err != nil {
		slog.Error("failed to write census", "error", err)
	}
	if err := s.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range s.bookmarkDetector.Check(stats) {
		if s.logStats {
			bm.LogBookmark()
		}
		if err := s.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}
