package telemetry

import (
	"log/slog"
	"math"
	"time"
)

// Phase is one stage of a simulation step.
type Phase uint8

const (
	PhaseHunting Phase = iota
	PhaseStarvation
	PhaseBreeding
	PhaseRestock
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{"hunting", "starvation", "breeding", "restock", "telemetry"}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// tickTiming is the cost of one completed tick.
type tickTiming struct {
	total  time.Duration
	phases [numPhases]time.Duration
	hunts  int
}

// PerfCollector times simulation ticks and their phases over a rolling window.
type PerfCollector struct {
	now func() time.Time

	ring   []tickTiming
	next   int
	filled int

	cur        tickTiming
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	phaseOpen  bool
}

// NewPerfCollector creates a collector averaging over the last window ticks.
func NewPerfCollector(window int) *PerfCollector {
	return newPerfCollector(window, time.Now)
}

func newPerfCollector(window int, now func() time.Time) *PerfCollector {
	if window < 1 {
		window = 50
	}
	return &PerfCollector{now: now, ring: make([]tickTiming, window)}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.cur = tickTiming{}
	p.tickStart = p.now()
	p.phaseOpen = false
}

// StartPhase closes the open phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.phaseOpen = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phaseOpen {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
		p.phaseOpen = false
	}
}

// EndTick closes the open phase and stores the tick, which ran the given
// number of hunts.
func (p *PerfCollector) EndTick(hunts int) {
	now := p.now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.tickStart)
	p.cur.hunts = hunts

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// PhaseTiming is the average cost of a phase and its share of tick time.
type PhaseTiming struct {
	Avg time.Duration
	Pct float64
}

// PerfStats summarizes the ticks in the window.
type PerfStats struct {
	Ticks   int
	AvgTick time.Duration
	MinTick time.Duration
	MaxTick time.Duration

	Phases [numPhases]PhaseTiming

	TicksPerSecond float64
	HuntsPerSecond float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Ticks: p.filled}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	hunts := 0
	for i, t := range p.ring[:p.filled] {
		total += t.total
		if i == 0 || t.total < s.MinTick {
			s.MinTick = t.total
		}
		s.MaxTick = max(s.MaxTick, t.total)
		for ph, d := range t.phases {
			phaseSum[ph] += d
		}
		hunts += t.hunts
	}

	n := time.Duration(p.filled)
	s.AvgTick = total / n
	for ph, sum := range phaseSum {
		s.Phases[ph].Avg = sum / n
		if total > 0 {
			s.Phases[ph].Pct = float64(sum) / float64(total) * 100
		}
	}
	if secs := total.Seconds(); secs > 0 {
		s.TicksPerSecond = float64(p.filled) / secs
		s.HuntsPerSecond = float64(hunts) / secs
	}
	return s
}

// Pct returns the share of tick time spent in phase.
func (s PerfStats) Pct(phase Phase) float64 {
	if phase >= numPhases {
		return 0
	}
	return s.Phases[phase].Pct
}

// LogStats logs the window at info level. Phases under 0.1% are omitted.
func (s PerfStats) LogStats() {
	attrs := []any{
		"ticks", s.Ticks,
		"avg_tick_us", s.AvgTick.Microseconds(),
		"max_tick_us", s.MaxTick.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
		"hunts_per_sec", int(s.HuntsPerSecond),
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		if pct := s.Phases[ph].Pct; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", math.Round(pct*10)/10)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd     int32   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	HuntsPerSec   float64 `csv:"hunts_per_sec"`
	HuntingPct    float64 `csv:"hunting_pct"`
	StarvationPct float64 `csv:"starvation_pct"`
	BreedingPct   float64 `csv:"breeding_pct"`
	RestockPct    float64 `csv:"restock_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTick.Microseconds(),
		MinTickUS:     s.MinTick.Microseconds(),
		MaxTickUS:     s.MaxTick.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		HuntsPerSec:   s.HuntsPerSecond,
		HuntingPct:    s.Pct(PhaseHunting),
		StarvationPct: s.Pct(PhaseStarvation),
		BreedingPct:   s.Pct(PhaseBreeding),
		RestockPct:    s.Pct(PhaseRestock),
		TelemetryPct:  s.Pct(PhaseTelemetry),
	}
}
