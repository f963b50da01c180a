package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/beasts/config"
	"github.com/pthm-cable/beasts/game"
	"github.com/pthm-cable/beasts/logging"
	"github.com/pthm-cable/beasts/telemetry"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a headless simulation",
		Long: `Run steps the simulation until --max-ticks is reached or the process
receives an interrupt. With --output-dir set, stats windows, perf samples
and bookmarks are written as CSV alongside the config used, snapshots and
the final hall of fame.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			seed, _ := cmd.Flags().GetInt64("seed")
			maxTicks, _ := cmd.Flags().GetInt32("max-ticks")
			outputDir, _ := cmd.Flags().GetString("output-dir")
			indexKind, _ := cmd.Flags().GetString("index")
			hallPath, _ := cmd.Flags().GetString("hall-of-fame")
			resumePath, _ := cmd.Flags().GetString("resume")
			logStats, _ := cmd.Flags().GetBool("log-stats")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			logger := logging.NewLogger(logLevel, logFormat, os.Stdout)
			slog.SetDefault(logger)

			cfg, err := loadRunConfig(configPath, indexKind)
			if err != nil {
				return err
			}

			var snapshot *telemetry.Snapshot
			if resumePath != "" {
				snapshot, err = telemetry.LoadSnapshot(resumePath)
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("seed") {
					seed = snapshot.RNGSeed
				}
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			g, err := game.NewGame(game.Options{
				Config:         cfg,
				Seed:           seed,
				Logger:         logger,
				OutputDir:      outputDir,
				HallOfFamePath: hallPath,
				Snapshot:       snapshot,
				LogStats:       logStats,
			})
			if err != nil {
				return fmt.Errorf("creating game: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals...)
			defer stop()

			logger.Info("starting simulation", "seed", seed, "max_ticks", maxTicks, "output_dir", outputDir)
			start := time.Now()

			runErr := g.Run(ctx, maxTicks)
			if errors.Is(runErr, context.Canceled) {
				logger.Info("interrupted", "tick", g.Tick())
				runErr = nil
			}

			logger.Info("simulation finished",
				"ticks", g.Tick(),
				"alive", g.Alive(),
				"corpses", g.Corpses(),
				"elapsed", time.Since(start).Round(time.Millisecond),
			)

			return errors.Join(runErr, g.Close())
		},
	}

	cmd.Flags().String("config", "", "Path to config.yaml (empty = use defaults)")
	cmd.Flags().Int64("seed", 0, "RNG seed (0 = time-based)")
	cmd.Flags().Int32("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	cmd.Flags().String("output-dir", "", "Output directory for CSV logs, snapshots and hall of fame")
	cmd.Flags().String("index", "", "Spatial index: kdtree or quadtree (empty = use config)")
	cmd.Flags().String("hall-of-fame", "", "Preload the hall of fame from a hall_of_fame.json")
	cmd.Flags().String("resume", "", "Resume from a snapshot file")
	cmd.Flags().Bool("log-stats", false, "Log every stats window at info level")

	return cmd
}

// loadRunConfig loads the config file and applies command-line overrides.
func loadRunConfig(path, indexKind string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if indexKind != "" {
		cfg.Index.Kind = indexKind
		if err := cfg.Finalize(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
