package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"schelling/internal/config"
	"schelling/internal/runner"
	"schelling/internal/sims/schelling"
	"schelling/internal/snapshot"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the model until it converges or the step budget runs out",
		Long: `Run fills a new grid (or resumes one saved with --out) and steps it until no
agent is unhappy, --max-steps is reached, or the process is interrupted.

When resuming with --in, the grid, seed and ratios come from the snapshot;
only --threshold, --max-steps and --delay are honored.`,
		Example: `  schelling-cli run --size 50 --threshold 0.3
  schelling-cli run --max-steps 100 --out state.msgpack
  schelling-cli run --in state.msgpack --out state.msgpack`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, cfg)

			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")
			sim, start, err := openSimulation(cmd, cfg, in)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			res, err := runner.Run(ctx, sim, runner.Options{
				MaxSteps:       cfg.Run.MaxSteps,
				Delay:          cfg.Run.Delay,
				StartIteration: start,
				LogEvery:       100,
				Logger:         logger,
			})
			if err != nil {
				return err
			}

			if out != "" {
				if err := snapshot.Save(out, snapshot.FromSimulation(sim)); err != nil {
					return fmt.Errorf("saving snapshot: %w", err)
				}
				logger.Info("snapshot saved", "path", out, "iteration", sim.Iteration())
			}
			return printResult(cmd, sim, res)
		},
	}
	addSimFlags(cmd)
	cmd.Flags().String("in", "", "resume from a snapshot file")
	cmd.Flags().String("out", "", "write the final grid to a snapshot file")
	return cmd
}

// openSimulation builds a fresh simulation from cfg, or restores one from the
// snapshot at in. It returns the iteration the run starts from.
func openSimulation(cmd *cobra.Command, cfg *config.Config, in string) (*schelling.Simulation, int, error) {
	if in == "" {
		sim, err := schelling.New(cfg.SimConfig())
		if err != nil {
			return nil, 0, err
		}
		return sim, 0, nil
	}

	snap, err := snapshot.Load(in)
	if err != nil {
		return nil, 0, err
	}
	sim, err := snap.Restore()
	if err != nil {
		return nil, 0, fmt.Errorf("restoring %s: %w", in, err)
	}
	if cmd.Flags().Changed("threshold") {
		if !sim.SetFloatParameter("relocation_threshold", cfg.Simulation.RelocationThreshold) {
			return nil, 0, fmt.Errorf("%w: relocation threshold %v", schelling.ErrInvalidParameter, cfg.Simulation.RelocationThreshold)
		}
	}
	return sim, snap.Iteration, nil
}

type runSummary struct {
	Reason      runner.Reason `json:"reason"`
	Converged   bool          `json:"converged"`
	Steps       int           `json:"steps"`
	Iteration   int           `json:"iteration"`
	LastUnhappy int           `json:"last_unhappy"`
	TypeA       int           `json:"type_a"`
	TypeB       int           `json:"type_b"`
	Empty       int           `json:"empty"`
}

func printResult(cmd *cobra.Command, sim *schelling.Simulation, res runner.Result) error {
	counts := sim.Counts()
	summary := runSummary{
		Reason:      res.Reason,
		Converged:   res.Converged,
		Steps:       res.Steps,
		Iteration:   sim.Iteration(),
		LastUnhappy: res.LastUnhappy,
		TypeA:       counts.TypeA,
		TypeB:       counts.TypeB,
		Empty:       counts.Empty,
	}

	jsonOut, _ := cmd.Flags().GetBool("json")
	if jsonOut {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(summary)
	}
	w := cmd.OutOrStdout()
	switch res.Reason {
	case runner.ReasonConverged:
		fmt.Fprintf(w, "Converged after %d steps (iteration %d)\n", res.Steps, summary.Iteration)
	case runner.ReasonMaxSteps:
		fmt.Fprintf(w, "Stopped after %d steps (iteration %d), %d agents still unhappy\n", res.Steps, summary.Iteration, res.LastUnhappy)
	default:
		fmt.Fprintf(w, "Interrupted after %d steps (iteration %d)\n", res.Steps, summary.Iteration)
	}
	fmt.Fprintf(w, "Type A: %d  Type B: %d  Empty: %d\n", counts.TypeA, counts.TypeB, counts.Empty)
	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}
