// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/skylark/internal/logger"
	"github.com/telekom/skylark/internal/traceroute"
	"github.com/telekom/skylark/pkg/config"
	"github.com/telekom/skylark/pkg/store"
)

// NewCmdTrace creates the trace command
func NewCmdTrace() *cobra.Command {
	return &cobra.Command{
		Use:   "trace [target]...",
		Short: "Trace the routes to the configured targets and record the runs",
		Long: "Trace runs the traceroute binary once against every configured target, " +
			"appends the parsed runs to the store file and writes it back. " +
			"Targets given as arguments are probed in addition to the configured ones.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd.Context(), args)
		},
	}
}

func runTrace(ctx context.Context, extraTargets []string) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	cfg.Targets.Static = append(cfg.Targets.Static, extraTargets...)

	targets, err := config.NewTargetLoader(&cfg).Load(ctx)
	if err != nil {
		return err
	}

	s, err := store.Load(ctx, cfg.Store.Path)
	if err != nil {
		return err
	}

	dialect := traceroute.Dialect(cfg.Probe.Dialect)
	if cfg.Probe.Dialect == config.DialectAuto {
		if dialect, err = traceroute.DetectDialect(ctx, cfg.Probe.Binary); err != nil {
			return err
		}
		log.InfoContext(ctx, "Detected traceroute dialect", "dialect", dialect)
	}

	runner := traceroute.NewRunner(cfg.Probe.Binary, dialect, cfg.Probe.Options)
	var failed int
	for _, target := range targets {
		run, rErr := runner.Run(ctx, target)
		if rErr != nil {
			// A failed run aborts this target only. Nothing is appended, so
			// the store never carries half-parsed paths; a run with zero hop
			// lines is not an error and still lands as a no-data record.
			log.ErrorContext(ctx, "Traceroute run failed", "target", target, "error", rErr)
			failed++
			continue
		}
		s.Append(run)
	}

	if err := store.Save(ctx, cfg.Store.Path, s); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d traceroute runs failed", failed, len(targets))
	}
	return nil
}
