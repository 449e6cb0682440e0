// Package runner drives a simulation step by step until it converges or a
// caller-imposed limit stops it. Limits are only checked between steps.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"schelling/internal/core"
	"schelling/internal/logging"
)

// Reason explains why Run returned.
type Reason string

const (
	ReasonConverged Reason = "converged"
	ReasonMaxSteps  Reason = "max_steps"
	ReasonCancelled Reason = "cancelled"
)

// Frame is the per-step view handed to observers.
type Frame struct {
	Iteration int
	Unhappy   int
	Size      core.Size
	Cells     []uint8
}

// Options configures Run. The zero value runs without limit, delay or
// observer.
type Options struct {
	// MaxSteps stops the loop after this many steps. Zero means no limit.
	MaxSteps int

	// Delay pauses between steps.
	Delay time.Duration

	// StartIteration offsets reported iterations, for resumed runs.
	StartIteration int

	// OnFrame receives a copy of the grid after every step.
	OnFrame func(Frame)

	// LogEvery logs progress at info level every n steps; other steps are
	// logged at debug level.
	LogEvery int

	Logger *slog.Logger
}

// Result summarizes a finished run.
type Result struct {
	Steps       int
	LastUnhappy int
	Converged   bool
	Reason      Reason
}

// Run steps sim until it reports zero unhappy agents, MaxSteps is reached or
// ctx is cancelled. Cancellation and the step budget are normal stops and are
// reported through Result.Reason; only a failing step returns an error.
func Run(ctx context.Context, sim core.Sim, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("sim", sim.Name())

	var timer *time.Timer
	if opts.Delay > 0 {
		timer = time.NewTimer(opts.Delay)
		timer.Stop()
		defer timer.Stop()
	}

	var res Result
	start := time.Now()
	logger.Info("run started", "size", sim.Size().W, "max_steps", opts.MaxSteps, "delay", opts.Delay)
	finish := func(reason Reason) (Result, error) {
		res.Reason = reason
		res.Converged = reason == ReasonConverged
		logger.Info("run finished",
			"reason", reason,
			"steps", res.Steps,
			"iteration", opts.StartIteration+res.Steps,
			"last_unhappy", res.LastUnhappy,
			"elapsed", time.Since(start))
		return res, nil
	}

	for {
		if ctx.Err() != nil {
			return finish(ReasonCancelled)
		}
		if opts.MaxSteps > 0 && res.Steps >= opts.MaxSteps {
			return finish(ReasonMaxSteps)
		}

		unhappy, err := sim.Step()
		if err != nil {
			logger.Error("step failed", "iteration", opts.StartIteration+res.Steps+1, "error", err)
			return res, fmt.Errorf("step %d: %w", opts.StartIteration+res.Steps+1, err)
		}
		res.Steps++
		res.LastUnhappy = unhappy
		iteration := opts.StartIteration + res.Steps

		if opts.LogEvery > 0 && res.Steps%opts.LogEvery == 0 {
			logger.Info("progress", "iteration", iteration, "unhappy", unhappy)
		} else {
			logger.Debug("step", "iteration", iteration, "unhappy", unhappy)
		}

		if opts.OnFrame != nil {
			opts.OnFrame(Frame{
				Iteration: iteration,
				Unhappy:   unhappy,
				Size:      sim.Size(),
				Cells:     append([]uint8(nil), sim.Cells()...),
			})
		}

		if unhappy == 0 {
			return finish(ReasonConverged)
		}

		if timer != nil {
			timer.Reset(opts.Delay)
			select {
			case <-ctx.Done():
				return finish(ReasonCancelled)
			case <-timer.C:
			}
		}
	}
}
