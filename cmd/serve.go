// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/telekom/skylark/internal/logger"
	"github.com/telekom/skylark/internal/traceroute"
	"github.com/telekom/skylark/pkg/api"
	"github.com/telekom/skylark/pkg/config"
	"github.com/telekom/skylark/pkg/metrics"
	"github.com/telekom/skylark/pkg/store"
)

const shutdownTimeout = 30 * time.Second

// NewCmdServe creates the serve command
func NewCmdServe(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the recorded runs, their statistics and the topology over HTTP",
		Long: "Serve exposes the store over the HTTP api. With a probe interval configured " +
			"it also keeps re-probing the targets in the background, so the served " +
			"statistics grow while the process runs.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), version)
		},
	}
}

func runServe(ctx context.Context, version string) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	s, err := store.Load(ctx, cfg.Store.Path)
	if err != nil {
		return err
	}

	provider := metrics.New(cfg.Telemetry)
	if cfg.HasTelemetry() {
		if err := provider.InitTracing(ctx); err != nil {
			return err
		}
		defer func() {
			if sErr := provider.Shutdown(context.WithoutCancel(ctx)); sErr != nil {
				log.Error("Failed to shutdown telemetry", "error", sErr)
			}
		}()
	}
	if err := metrics.RegisterBuildInfo(provider.GetRegistry(), version, cfg.Probe.Dialect); err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Probe.Interval > 0 {
		go probeLoop(sigCtx, &cfg, s, provider)
	}

	a := api.New(sigCtx, cfg.Api, provider, s)
	cErr := make(chan error, 1)
	go func() {
		cErr <- a.Run(sigCtx)
	}()

	select {
	case err := <-cErr:
		return err
	case <-sigCtx.Done():
		log.Info("Shutting down")
	}

	shutdownCtx, sCancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer sCancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return store.Save(shutdownCtx, cfg.Store.Path, s)
}

// probeLoop re-probes the configured targets on every interval tick and
// persists the grown store after each round. Failed runs are logged and
// skipped; the loop only ends with the context.
func probeLoop(ctx context.Context, cfg *config.Config, s *store.Store, provider metrics.Provider) {
	log := logger.FromContext(ctx)

	targets, err := config.NewTargetLoader(cfg).Load(ctx)
	if err != nil {
		log.Error("Not probing, failed to load targets", "error", err)
		return
	}

	dialect := traceroute.Dialect(cfg.Probe.Dialect)
	if cfg.Probe.Dialect == config.DialectAuto {
		if dialect, err = traceroute.DetectDialect(ctx, cfg.Probe.Binary); err != nil {
			log.Error("Not probing, failed to detect traceroute dialect", "error", err)
			return
		}
	}

	runner := traceroute.NewRunner(cfg.Probe.Binary, dialect, cfg.Probe.Options)
	provider.GetRegistry().MustRegister(runner.Collectors()...)

	tick := time.NewTicker(cfg.Probe.Interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			for _, target := range targets {
				run, rErr := runner.Run(ctx, target)
				if rErr != nil {
					if errors.Is(rErr, context.Canceled) {
						return
					}
					log.Error("Traceroute run failed", "target", target, "error", rErr)
					continue
				}
				s.Append(run)
			}
			if err := store.Save(ctx, cfg.Store.Path, s); err != nil {
				log.Error("Failed to persist store", "error", err)
			}
		}
	}
}
