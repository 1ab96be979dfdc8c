// Package main provides CMA-ES optimization for finding simulation parameters
// that keep crabs and reefs in balance.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/ocean/config"
	"github.com/pthm-cable/ocean/logging"
)

// formatDuration formats a duration as 1h02m03s, dropping hours when zero.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// writeLogRow writes and flushes one row so a crashed run keeps its history.
func writeLogRow(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "optimize",
		Short:        "Search for simulation parameters that keep the ecosystem alive",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			maxTicks, _ := cmd.Flags().GetInt("max-ticks")
			seeds, _ := cmd.Flags().GetInt("seeds")
			maxEvals, _ := cmd.Flags().GetInt("max-evals")
			population, _ := cmd.Flags().GetInt("population")
			outputDir, _ := cmd.Flags().GetString("output")

			// Simulation logs stay quiet unless they are warnings
			slog.SetDefault(logging.NewLogger("warn", cmd.ErrOrStderr()))

			return runOptimize(cmd.OutOrStdout(), optimizeOptions{
				configPath: configPath,
				maxTicks:   int32(maxTicks),
				seeds:      seeds,
				maxEvals:   maxEvals,
				population: population,
				outputDir:  outputDir,
			})
		},
	}

	cmd.Flags().String("config", "", "Base config YAML file (empty = use defaults)")
	cmd.Flags().Int("max-ticks", 5000, "Maximum simulation duration in ticks (cap)")
	cmd.Flags().Int("seeds", 3, "Number of seeds per evaluation")
	cmd.Flags().Int("max-evals", 200, "Maximum number of evaluations")
	cmd.Flags().Int("population", 0, "CMA-ES population size (0 = auto)")
	cmd.Flags().String("output", "", "Output directory for results")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

type optimizeOptions struct {
	configPath string
	maxTicks   int32
	seeds      int
	maxEvals   int
	population int
	outputDir  string
}

func runOptimize(out io.Writer, opts optimizeOptions) error {
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	baseCfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	params := NewParamVector()

	// Generate seeds for evaluation
	evalSeeds := make([]int64, opts.seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, opts.maxTicks, evalSeeds, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	logFile, err := os.Create(filepath.Join(opts.outputDir, "optimize_log.csv"))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := logWriter.Write(header); err != nil {
		return fmt.Errorf("writing log header: %w", err)
	}

	// Track evaluations and timing
	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			quality := evaluator.LastQuality()
			evalCount++

			// Log clamped values (these are the values actually used)
			clamped := params.Clamp(raw)
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			row := []string{
				strconv.Itoa(evalCount),
				strconv.FormatFloat(fitness, 'f', 6, 64),
				strconv.FormatFloat(quality, 'f', 6, 64),
			}
			for _, v := range clamped {
				row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
			}
			if err := writeLogRow(logWriter, row); err != nil {
				slog.Warn("optimize log row lost", "eval", evalCount, "error", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(opts.maxEvals-evalCount) * avgPerEval

			// Fitness = -(survivalTicks × (1 + 0.2×quality))
			survival := -fitness / (1.0 + 0.2*quality)
			fmt.Fprintf(out, "Eval %d/%d: survived=%.0f ticks quality=%.2f (best=%.0f) | elapsed: %s, ETA: %s\n",
				evalCount, opts.maxEvals, survival, quality, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: opts.maxEvals,
		Concurrent:      0, // Sequential evaluation; seeds already run in parallel
	}

	popSize := opts.population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	fmt.Fprintf(out, "Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, opts.maxEvals)
	fmt.Fprintf(out, "Seeds per evaluation: %d, ticks per run: %d\n", opts.seeds, opts.maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		fmt.Fprintf(out, "optimization ended: %v\n", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		return fmt.Errorf("no evaluations completed")
	}

	fmt.Fprintf(out, "\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Fprintf(out, "Best fitness: %.0f\n", bestFitness)

	fmt.Fprintln(out, "\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Fprintf(out, "  %s: %g\n", spec.Path, bestParams[i])
	}

	bestCfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(opts.outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nBest config saved to: %s\n", configOutPath)

	// Save hall of fame from best run
	if hof := evaluator.BestHallOfFame(); hof != nil {
		hofData, err := json.MarshalIndent(hof, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling hall of fame: %w", err)
		}
		hofPath := filepath.Join(opts.outputDir, "hall_of_fame.json")
		if err := os.WriteFile(hofPath, hofData, 0644); err != nil {
			return fmt.Errorf("writing hall of fame: %w", err)
		}
		fmt.Fprintf(out, "Hall of fame saved to: %s\n", hofPath)
	}
	return nil
}
