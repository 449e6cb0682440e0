package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"schelling/internal/runner"
	"schelling/internal/stream"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the model and stream every step to websocket viewers",
		Long: `Serve runs the model like "run" and broadcasts each step as a msgpack frame
on ws://<addr>/ws. GET /state returns the latest frame as JSON. The server
keeps the final grid available until interrupted unless --exit is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Stream.Addr, _ = cmd.Flags().GetString("addr")
			}
			exit, _ := cmd.Flags().GetBool("exit")
			logger := newLogger(cmd, cfg)

			in, _ := cmd.Flags().GetString("in")
			sim, start, err := openSimulation(cmd, cfg, in)
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", cfg.Stream.Addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", cfg.Stream.Addr, err)
			}
			hub := stream.NewHub(logger)
			srv := &http.Server{Handler: hub.Handler(), ReadHeaderTimeout: 10 * time.Second}
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Serve(ln) }()

			addr := ln.Addr().String()
			logger.Info("stream server listening", "addr", addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Streaming on ws://%s/ws\n", addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl-C to stop.\n")

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			res, runErr := runner.Run(ctx, sim, runner.Options{
				MaxSteps:       cfg.Run.MaxSteps,
				Delay:          cfg.Run.Delay,
				StartIteration: start,
				LogEvery:       100,
				Logger:         logger,
				OnFrame: func(f runner.Frame) {
					if err := hub.Publish(f); err != nil {
						logger.Warn("publish failed", "iteration", f.Iteration, "error", err)
					}
				},
			})
			if runErr == nil {
				runErr = printResult(cmd, sim, res)
			}

			served := false
			if runErr == nil && !exit && res.Reason != runner.ReasonCancelled {
				select {
				case <-ctx.Done():
				case err := <-errCh:
					served = true
					runErr = fmt.Errorf("server error: %w", err)
				}
			}

			hub.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("server shutdown", "error", err)
			}
			if !served {
				if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) && runErr == nil {
					runErr = fmt.Errorf("server error: %w", err)
				}
			}
			return runErr
		},
	}
	addSimFlags(cmd)
	cmd.Flags().String("addr", "", "listen address (default from config, localhost:8080)")
	cmd.Flags().String("in", "", "resume from a snapshot file")
	cmd.Flags().Bool("exit", false, "shut down as soon as the run finishes")
	return cmd
}
