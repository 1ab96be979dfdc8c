// Package sim drives the crab and reef world tick by tick.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ocean/beach"
	"github.com/pthm-cable/ocean/components"
	"github.com/pthm-cable/ocean/config"
	"github.com/pthm-cable/ocean/crab"
	"github.com/pthm-cable/ocean/ocean"
	"github.com/pthm-cable/ocean/telemetry"
)

// Options configures a simulation run.
type Options struct {
	Seed        int64
	LogStats    bool   // Log window stats and bookmarks via slog
	OutputDir   string // Directory for CSV output (empty = disabled)
	StatsWindow int    // Ticks per stats window (0 = use config)

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Totals are run-level event counts.
type Totals struct {
	Hunts     int
	Catches   int
	Escapes   int
	Rejected  int
	Births    int
	Starved   int
	Restocked int
}

// Simulation holds the complete world state.
type Simulation struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	crabMapper *ecs.Map3[components.Forager, components.Identity, components.Appetite]
	crabFilter *ecs.Filter3[components.Forager, components.Identity, components.Appetite]

	ocean    *ocean.Ocean
	entities map[*crab.Crab]ecs.Entity

	// Telemetry
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	hallOfFame       *telemetry.HallOfFame
	statsCallback    func(telemetry.WindowStats)
	logStats         bool

	tick   int32
	totals Totals
	closed bool
}

// New builds the world described by cfg.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		statsWindow = opts.StatsWindow
	}

	outputManager, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := outputManager.WriteConfig(cfg); err != nil {
		outputManager.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	s := &Simulation{
		cfg:   cfg,
		world: world,
		rng:   rng,
		crabMapper: ecs.NewMap3[
			components.Forager,
			components.Identity,
			components.Appetite,
		](world),
		crabFilter: ecs.NewFilter3[
			components.Forager,
			components.Identity,
			components.Appetite,
		](world),
		ocean: ocean.New(ocean.Stock{
			MinnowSpeed:  cfg.Prey.MinnowSpeed,
			ShrimpEnergy: cfg.Prey.ShrimpEnergy,
		}, rng),
		entities:         make(map[*crab.Crab]ecs.Entity),
		collector:        telemetry.NewCollector(statsWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		perfCollector:    telemetry.NewPerfCollector(statsWindow),
		outputManager:    outputManager,
		hallOfFame:       telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize),
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,
	}

	s.populate()

	slog.Info("world created",
		"seed", opts.Seed,
		"reefs", len(cfg.Reefs),
		"beaches", len(cfg.Beaches),
		"crabs", cfg.Derived.FounderCrab,
		"prey", cfg.Derived.FounderPrey,
		"stats_window", statsWindow,
	)
	return s, nil
}

// populate generates the configured reefs, then the beaches and founding crabs.
func (s *Simulation) populate() {
	for _, r := range s.cfg.Reefs {
		s.ocean.GenerateReef(r.Minnows, r.Shrimp, r.Clams, r.Algae)
	}

	for bi, bc := range s.cfg.Beaches {
		b := beach.New(bc.Name)
		s.ocean.AddBeach(b)

		for ci, cc := range bc.Crabs {
			c := crab.New(cc.Name, cc.Speed, s.cfg.Derived.CrabColors[bi][ci], cc.Diet)
			for _, idx := range cc.Reefs {
				c.DiscoverReef(s.ocean.Reef(idx))
			}
			b.AddCrab(c)
			s.spawnCrab(c, b, s.newID(), true)
		}
	}
}

// spawnCrab creates the entity for a crab already living on b.
func (s *Simulation) spawnCrab(c *crab.Crab, b *beach.Beach, id uuid.UUID, founder bool) ecs.Entity {
	forager := components.Forager{Crab: c, Beach: b}
	identity := components.Identity{
		ID:        id,
		BirthTick: s.tick,
		Founder:   founder,
	}
	appetite := components.Appetite{}

	entity := s.crabMapper.NewEntity(&forager, &identity, &appetite)
	s.entities[c] = entity
	return entity
}

// newID draws a UUID from the simulation RNG so seeded runs repeat exactly.
func (s *Simulation) newID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		// math/rand never fails to read
		panic(fmt.Sprintf("sim: drawing uuid: %v", err))
	}
	return id
}

// Step advances the simulation by one tick.
func (s *Simulation) Step() {
	s.perfCollector.StartTick()
	s.tick++
	huntsBefore := s.totals.Hunts

	s.perfCollector.StartPhase(telemetry.PhaseHunting)
	s.updateHunting()

	s.perfCollector.StartPhase(telemetry.PhaseStarvation)
	s.cleanupStarved()

	s.perfCollector.StartPhase(telemetry.PhaseBreeding)
	if every(s.tick, s.cfg.Breeding.Interval) {
		s.updateBreeding()
	}

	s.perfCollector.StartPhase(telemetry.PhaseRestock)
	if every(s.tick, s.cfg.Restock.Interval) {
		s.restockReefs()
	}

	s.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()

	s.perfCollector.EndTick(s.totals.Hunts - huntsBefore)
}

// every reports whether tick falls on a positive interval.
func every(tick int32, interval int) bool {
	return interval > 0 && int(tick)%interval == 0
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int32 {
	return s.tick
}

// Ocean returns the simulated world.
func (s *Simulation) Ocean() *ocean.Ocean {
	return s.ocean
}

// CrabCount returns the number of living crabs.
func (s *Simulation) CrabCount() int {
	return len(s.entities)
}

// Totals returns event counts since the start of the run.
func (s *Simulation) Totals() Totals {
	return s.totals
}

// HallOfFame returns the best crabs seen so far.
func (s *Simulation) HallOfFame() *telemetry.HallOfFame {
	return s.hallOfFame
}

// Close enters surviving crabs into the hall of fame, writes it, and closes
// output files. Later calls do nothing.
func (s *Simulation) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	query := s.crabFilter.Query()
	for query.Next() {
		forager, identity, appetite := query.Get()
		s.hallOfFame.Consider(hallEntry(forager, identity, appetite, 0))
	}

	err := s.outputManager.WriteHallOfFame(s.hallOfFame)
	if cerr := s.outputManager.Close(); err == nil {
		err = cerr
	}
	return err
}
