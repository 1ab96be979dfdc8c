package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Counts at window end
	Crabs     int `csv:"crabs"`
	Reefs     int `csv:"reefs"`
	PreyTotal int `csv:"prey_total"`

	// Events during window
	Hunts     int `csv:"hunts"`
	Catches   int `csv:"catches"`
	Escapes   int `csv:"escapes"`
	Rejected  int `csv:"rejected"`
	Births    int `csv:"births"`
	Starved   int `csv:"starved"`
	Restocked int `csv:"restocked"`

	CatchRate  float64 `csv:"catch_rate"`  // catches per hunt
	EscapeRate float64 `csv:"escape_rate"` // escapes per capture attempt

	// Reef population distribution (sampled at window end)
	ReefPopMean float64 `csv:"reef_pop_mean"`
	ReefPopStd  float64 `csv:"reef_pop_std"`
	ReefPopP10  float64 `csv:"reef_pop_p10"`
	ReefPopP50  float64 `csv:"reef_pop_p50"`
	ReefPopP90  float64 `csv:"reef_pop_p90"`
}

// ComputePopulationStats returns mean, population standard deviation and the
// empirical 10th/50th/90th percentiles of values. All zero for an empty slice.
func ComputePopulationStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std = stat.PopMeanStdDev(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("crabs", s.Crabs),
		slog.Int("reefs", s.Reefs),
		slog.Int("prey_total", s.PreyTotal),
		slog.Int("hunts", s.Hunts),
		slog.Int("catches", s.Catches),
		slog.Int("escapes", s.Escapes),
		slog.Int("rejected", s.Rejected),
		slog.Int("births", s.Births),
		slog.Int("starved", s.Starved),
		slog.Int("restocked", s.Restocked),
		slog.Float64("catch_rate", s.CatchRate),
		slog.Float64("escape_rate", s.EscapeRate),
		slog.Float64("reef_pop_mean", s.ReefPopMean),
		slog.Float64("reef_pop_std", s.ReefPopStd),
		slog.Float64("reef_pop_p10", s.ReefPopP10),
		slog.Float64("reef_pop_p50", s.ReefPopP50),
		slog.Float64("reef_pop_p90", s.ReefPopP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
