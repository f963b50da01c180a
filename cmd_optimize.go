package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/beasts/config"
	"github.com/pthm-cable/beasts/logging"
	"github.com/pthm-cable/beasts/tuning"
)

func newOptimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Search simulation parameters with CMA-ES",
		Long: `Optimize runs headless simulations over several seeds per candidate and
minimizes negative survival time, weighted by population stability, energy
health, turnover and generational progress. The best config found is
written to best_config.yaml in the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			maxTicks, _ := cmd.Flags().GetInt32("max-ticks")
			seeds, _ := cmd.Flags().GetInt("seeds")
			maxEvals, _ := cmd.Flags().GetInt("max-evals")
			population, _ := cmd.Flags().GetInt("population")
			outputDir, _ := cmd.Flags().GetString("output")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			logger := logging.NewLogger(logLevel, logFormat, os.Stderr)

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			res, err := tuning.Run(tuning.Options{
				Config:     cfg,
				MaxTicks:   maxTicks,
				Seeds:      seeds,
				MaxEvals:   maxEvals,
				Population: population,
				OutputDir:  outputDir,
				Logger:     logger,
				Progress:   cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nBest fitness after %d evaluations: %.0f\n", res.Evaluations, res.BestFitness)
			fmt.Fprintln(out, "\nBest parameters:")
			names := make([]string, 0, len(res.BestParams))
			for name := range res.BestParams {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %s: %.6f\n", name, res.BestParams[name])
			}
			return nil
		},
	}

	cmd.Flags().String("config", "", "Base config YAML file (empty = use defaults)")
	cmd.Flags().Int32("max-ticks", 50000, "Maximum simulation duration in ticks (cap)")
	cmd.Flags().Int("seeds", 3, "Number of seeds per evaluation")
	cmd.Flags().Int("max-evals", 200, "Maximum number of evaluations")
	cmd.Flags().Int("population", 0, "CMA-ES population size (0 = auto)")
	cmd.Flags().String("output", "", "Output directory for results")
	cmd.MarkFlagRequired("output")

	return cmd
}
