package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/beasts/dna"
	"github.com/pthm-cable/beasts/neural"
	"github.com/pthm-cable/beasts/traits"
)

func newGenomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genome",
		Short: "Generate and inspect genomes",
	}
	cmd.AddCommand(newGenomeRandomCmd(), newGenomeDecodeCmd())
	return cmd
}

func newGenomeRandomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print a random genome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetInt64("seed")
			count, _ := cmd.Flags().GetInt("count")
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < count; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), dna.Random(rng))
			}
			return nil
		},
	}
	cmd.Flags().Int64("seed", 0, "RNG seed (0 = time-based)")
	cmd.Flags().Int("count", 1, "Number of genomes to print")
	return cmd
}

func newGenomeDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <genome>",
		Short: "Decode a genome into traits and brain wiring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := dna.Parse(args[0])
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(decodeGenome(g))
			}
			writeGenomeReport(cmd.OutOrStdout(), g)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

// decodedGenome is the JSON form of genome decode.
type decodedGenome struct {
	Genome string         `json:"genome"`
	Genes  map[string]any `json:"genes"`
	Traits traits.Traits  `json:"traits"`
	Brain  []string       `json:"brain"`
}

func decodeGenome(g dna.Genome) decodedGenome {
	out := decodedGenome{
		Genome: g.String(),
		Genes:  make(map[string]any),
		Traits: traits.FromGenome(g),
	}
	for _, name := range dna.Traits() {
		out.Genes[name] = dna.Decode(g, name)
	}

	brain := neural.Build(g)
	for i := 0; i < brain.NumConnections(); i++ {
		c := brain.Connection(neural.ConnectionID(i))
		out.Brain = append(out.Brain, fmt.Sprintf("%s -> %s : %+.3f", brain.Neuron(c.Source), brain.Neuron(c.Sink), c.Strength))
	}
	return out
}

func writeGenomeReport(w io.Writer, g dna.Genome) {
	fmt.Fprintf(w, "genome: %s\n\n", g)

	fmt.Fprintln(w, "genes:")
	for _, name := range dna.Traits() {
		gn, _ := dna.Lookup(name)
		fmt.Fprintf(w, "  %-24s @%-3d %-10s %v\n", name, gn.Offset, gn.Kind, dna.Decode(g, name))
	}

	tr := traits.FromGenome(g)
	fmt.Fprintf(w, "\ntraits: %s\n", tr)
	fmt.Fprintf(w, "max turn: %d\n\n", tr.MaxTurn())

	fmt.Fprint(w, neural.Build(g))
}
