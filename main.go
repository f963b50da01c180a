package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "beasts",
		Short: "Beasts - a headless artificial-life sandbox",
		Long: `beasts evolves a population of genome-driven creatures on a bounded plane.

Each beast decodes its traits and a tiny neural brain from a 128-symbol
hex genome, senses its nearest mate through a spatial index, moves,
mates, fights and starves. Runs write CSV telemetry, snapshots and a
hall of fame of the fittest genomes.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "Log format (json or text)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newGenomeCmd(),
		newOptimizeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "beasts version %s\n", version)
		},
	}
}
