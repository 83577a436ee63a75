// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/telekom/skylark/internal/logger"
)

// TargetLoader resolves the full target list of a configuration, combining
// the statically configured targets with the optional targets file.
type TargetLoader struct {
	config TargetsConfig
	fsys   fs.FS
}

func NewTargetLoader(cfg *Config) *TargetLoader {
	l := &TargetLoader{config: cfg.Targets}
	if cfg.Targets.File != "" {
		l.fsys = os.DirFS(filepath.Dir(cfg.Targets.File))
	}
	return l
}

// Load returns the deduplicated, sorted union of static and file targets.
func (l *TargetLoader) Load(ctx context.Context) ([]string, error) {
	targets := slices.Clone(l.config.Static)

	if l.config.File != "" {
		fromFile, err := l.loadFile(ctx)
		if err != nil {
			return nil, err
		}
		targets = append(targets, fromFile...)
	}

	slices.Sort(targets)
	targets = slices.Compact(targets)
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	return targets, nil
}

// loadFile reads the targets file, a yaml list of hostnames or addresses.
func (l *TargetLoader) loadFile(ctx context.Context) (targets []string, err error) {
	log := logger.FromContext(ctx).With("path", l.config.File)

	file, err := l.fsys.Open(filepath.Base(l.config.File))
	if err != nil {
		log.Error("Failed to open targets file", "error", err)
		return nil, fmt.Errorf("failed to open targets file: %w", err)
	}
	defer func() {
		cerr := file.Close()
		if cerr != nil {
			log.Error("Failed to close targets file", "error", cerr)
		}
		err = errors.Join(cerr, err)
	}()

	b, err := io.ReadAll(file)
	if err != nil {
		log.Error("Failed to read targets file", "error", err)
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}

	if err := yaml.Unmarshal(b, &targets); err != nil {
		log.Error("Failed to parse targets file", "error", err)
		return nil, fmt.Errorf("failed to parse targets file: %w", err)
	}

	return targets, nil
}
