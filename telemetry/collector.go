package telemetry

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	hunts     int
	catches   int
	escapes   int
	rejected  int
	births    int
	starved   int
	restocked int
}

// NewCollector creates a new stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowDurationTicks: int32(windowTicks)}
}

// RecordHunt records the outcome of one hunt.
func (c *Collector) RecordHunt(success bool, escapes, rejected int) {
	c.hunts++
	if success {
		c.catches++
	}
	c.escapes += escapes
	c.rejected += rejected
}

// RecordBirth records a bred crab.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordStarvation records a crab removed for failing too many hunts.
func (c *Collector) RecordStarvation() {
	c.starved++
}

// RecordRestock records prey added to reefs.
func (c *Collector) RecordRestock(n int) {
	c.restocked += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// reefPops holds the current population of every reef.
func (c *Collector) Flush(currentTick int32, crabs int, reefPops []float64) WindowStats {
	var catchRate, escapeRate float64
	if c.hunts > 0 {
		catchRate = float64(c.catches) / float64(c.hunts)
	}
	// Every escape and every catch was one capture attempt
	if attempts := c.escapes + c.catches; attempts > 0 {
		escapeRate = float64(c.escapes) / float64(attempts)
	}

	var total float64
	for _, p := range reefPops {
		total += p
	}
	mean, std, p10, p50, p90 := ComputePopulationStats(reefPops)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Crabs:     crabs,
		Reefs:     len(reefPops),
		PreyTotal: int(total),

		Hunts:     c.hunts,
		Catches:   c.catches,
		Escapes:   c.escapes,
		Rejected:  c.rejected,
		Births:    c.births,
		Starved:   c.starved,
		Restocked: c.restocked,

		CatchRate:  catchRate,
		EscapeRate: escapeRate,

		ReefPopMean: mean,
		ReefPopStd:  std,
		ReefPopP10:  p10,
		ReefPopP50:  p50,
		ReefPopP90:  p90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.hunts = 0
	c.catches = 0
	c.escapes = 0
	c.rejected = 0
	c.births = 0
	c.starved = 0
	c.restocked = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
