package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"schelling/internal/sims/schelling"
	"schelling/internal/snapshot"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <snapshot>",
		Short: "Print a saved grid",
		Long: `Show prints a snapshot written by "run --out": a header with the recorded
parameters and counts, then one line per row (A, B, and . for empty).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.Load(args[0])
			if err != nil {
				return err
			}
			g, err := snap.Grid()
			if err != nil {
				return err
			}
			noGrid, _ := cmd.Flags().GetBool("summary")
			unhappy, _ := schelling.Identify(g, snap.Params.RelocationThreshold)
			counts := g.Counts()

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"size":                 snap.Size,
					"iteration":            snap.Iteration,
					"seed":                 snap.Seed,
					"relocation_threshold": snap.Params.RelocationThreshold,
					"unhappy":              len(unhappy),
					"agents":               counts.Agents(),
					"type_a":               counts.TypeA,
					"type_b":               counts.TypeB,
					"empty":                counts.Empty,
				})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Size: %d  Iteration: %d  Seed: %d\n", snap.Size, snap.Iteration, snap.Seed)
			fmt.Fprintf(w, "Empty ratio: %g  Type A ratio: %g  Threshold: %g\n",
				snap.Params.EmptyRatio, snap.Params.TypeARatio, snap.Params.RelocationThreshold)
			fmt.Fprintf(w, "Agents: %d  Type A: %d  Type B: %d  Empty: %d  Unhappy: %d\n",
				counts.Agents(), counts.TypeA, counts.TypeB, counts.Empty, len(unhappy))
			if !noGrid {
				writeGrid(w, g.Snapshot())
			}
			return nil
		},
	}
	cmd.Flags().Bool("summary", false, "print the header only")
	return cmd
}

func writeGrid(w io.Writer, v schelling.View) {
	n := v.Size()
	var b strings.Builder
	b.Grow(n + 1)
	for row := range n {
		b.Reset()
		for col := range n {
			b.WriteRune(v.At(schelling.Coord{Row: row, Col: col}).Rune())
		}
		b.WriteByte('\n')
		io.WriteString(w, b.String())
	}
}
