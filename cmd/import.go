// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/telekom/skylark/internal/logger"
	"github.com/telekom/skylark/pkg/store"
)

// ErrNoRemote is returned when import runs without a remote store configured
var ErrNoRemote = errors.New("no remote store configured")

// NewCmdImport creates the import command
func NewCmdImport() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import the runs of a remote skylark instance into the local store",
		Long: "Import fetches the store snapshot another skylark serves, merges its runs " +
			"into the local store and writes the result back. Existing local runs are kept.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd.Context())
		},
	}
}

func runImport(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if !cfg.HasRemote() {
		return ErrNoRemote
	}

	s, err := store.Load(ctx, cfg.Store.Path)
	if err != nil {
		return err
	}

	remote, err := store.Fetch(ctx, cfg.Store.Remote)
	if err != nil {
		return err
	}

	s.Merge(remote)
	log.InfoContext(ctx, "Imported remote runs", "targets", len(remote.Targets()))
	return store.Save(ctx, cfg.Store.Path, s)
}
