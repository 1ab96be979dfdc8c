package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/ocean/config"
	"github.com/pthm-cable/ocean/logging"
	"github.com/pthm-cable/ocean/sim"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation headless",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			seed, _ := cmd.Flags().GetInt64("seed")
			maxTicks, _ := cmd.Flags().GetInt("max-ticks")
			outputDir, _ := cmd.Flags().GetString("output-dir")
			logStats, _ := cmd.Flags().GetBool("log-stats")
			logLevel, _ := cmd.Flags().GetString("log-level")
			statsWindow, _ := cmd.Flags().GetInt("stats-window")

			// Set up slog (JSON to stdout for structured logging)
			slog.SetDefault(logging.NewLogger(logLevel, cmd.OutOrStdout()))

			if err := config.Init(configPath); err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			rngSeed := seed
			if rngSeed == 0 {
				rngSeed = time.Now().UnixNano()
			}

			s, err := sim.New(config.Cfg(), sim.Options{
				Seed:        rngSeed,
				LogStats:    logStats,
				OutputDir:   outputDir,
				StatsWindow: statsWindow,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			slog.Info("starting simulation",
				"seed", rngSeed,
				"max_ticks", maxTicks,
				"output_dir", outputDir,
			)
			runLoop(ctx, s, maxTicks)

			if err := s.Close(); err != nil {
				return fmt.Errorf("closing output: %w", err)
			}
			s.LogSummary()
			return nil
		},
	}

	cmd.Flags().String("config", "", "Path to config.yaml (empty = use defaults)")
	cmd.Flags().Int64("seed", 0, "RNG seed (0 = time-based)")
	cmd.Flags().Int("max-ticks", 0, "Stop after N ticks (0 = until interrupted)")
	cmd.Flags().String("output-dir", "", "Output directory for CSV logs and config snapshot")
	cmd.Flags().Bool("log-stats", false, "Output window stats via slog")
	cmd.Flags().String("log-level", "info", "Log level: info, debug, trace")
	cmd.Flags().Int("stats-window", 0, "Stats window size in ticks (0 = use config)")

	return cmd
}

// runLoop steps s until maxTicks is reached or ctx is cancelled.
func runLoop(ctx context.Context, s *sim.Simulation, maxTicks int) {
	for {
		if ctx.Err() != nil {
			slog.Info("interrupted", "tick", s.Tick())
			return
		}
		if maxTicks > 0 && int(s.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", s.Tick())
			return
		}
		s.Step()
	}
}
