package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ocean/config"
	"github.com/pthm-cable/ocean/sim"
	"github.com/pthm-cable/ocean/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow int

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastQuality    float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 50,
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Minimum viable population: breeding needs two crabs, so a world that stays
// below this for extinctionGraceTicks counts as functionally extinct.
const (
	minViableCrabs       = 2
	extinctionGraceTicks = 200
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32                   // ticks before functional extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
	hallOfFame    *telemetry.HallOfFame
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness    float64
	quality    float64
	hallOfFame *telemetry.HallOfFame
	err        error
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival ticks: longer survival = lower (better) fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.configFor(x)

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result, err := fe.runSimulation(cfg, s)
			if err != nil {
				results[idx] = seedResult{fitness: 0, err: err}
				return
			}
			quality := computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness:    computeFitness(result.survivalTicks, quality),
				quality:    quality,
				hallOfFame: result.hallOfFame,
			}
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedHallOfFame *telemetry.HallOfFame

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.err == nil && r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedHallOfFame = r.hallOfFame
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestHallOfFame = bestSeedHallOfFame
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// configFor copies the base config and applies parameter values.
// Only scalar fields change, so the reef and beach lists are shared read-only.
func (fe *FitnessEvaluator) configFor(x []float64) *config.Config {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)
	return &cfg
}

// runSimulation executes a single headless simulation run.
// Runs until functional extinction or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (*runResult, error) {
	result := &runResult{}

	s, err := sim.New(cfg, sim.Options{
		Seed:        seed,
		StatsWindow: fe.statsWindow,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, err
	}

	result.survivalTicks = fe.maxTicks
	var belowTicks int32
	for s.Tick() < fe.maxTicks {
		s.Step()

		crabs := s.CrabCount()
		if crabs == 0 {
			result.survivalTicks = s.Tick()
			break
		}
		if crabs < minViableCrabs {
			belowTicks++
		} else {
			belowTicks = 0
		}
		if belowTicks >= extinctionGraceTicks {
			result.survivalTicks = s.Tick()
			break
		}
	}

	if err := s.Close(); err != nil {
		return nil, err
	}
	result.hallOfFame = s.HallOfFame()
	return result, nil
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Survival dominates; quality separates configs with similar survival.
func computeFitness(survivalTicks int32, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightHunting   = 0.40
	qualityWeightStability = 0.30
	qualityWeightRatio     = 0.30

	qualityWarmupWindows = 3 // skip first N windows (warmup)

	targetCatchRate   = 0.5
	targetPreyPerCrab = 10.0
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	var huntSum, ratioSum float64
	var count int
	preyCounts := make([]float64, 0, len(windows))
	crabCounts := make([]float64, 0, len(windows))

	for _, w := range windows[qualityWarmupWindows:] {
		if w.Crabs < minViableCrabs || w.PreyTotal == 0 {
			continue
		}
		count++
		preyCounts = append(preyCounts, float64(w.PreyTotal))
		crabCounts = append(crabCounts, float64(w.Crabs))

		// Catch rate near target
		huntSum += math.Exp(-math.Pow((w.CatchRate-targetCatchRate)/0.25, 2))

		// Prey per crab near target, scored on a log scale
		logErr := math.Log(float64(w.PreyTotal) / float64(w.Crabs) / targetPreyPerCrab)
		ratioSum += math.Exp(-logErr * logErr)
	}

	if count == 0 {
		return 0
	}

	stabilityScore := 0.0
	if count >= 2 {
		cvPrey := cv(preyCounts)
		cvCrabs := cv(crabCounts)
		stabilityScore = math.Exp(-(cvPrey*cvPrey + cvCrabs*cvCrabs))
	}

	quality := qualityWeightHunting*huntSum/float64(count) +
		qualityWeightStability*stabilityScore +
		qualityWeightRatio*ratioSum/float64(count)

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
