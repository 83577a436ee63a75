// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/telekom/skylark/internal/logger"
)

// Load reads a persisted store from path. A missing file yields an empty
// store, so the first run of a fresh installation starts from nothing.
func Load(ctx context.Context, path string) (*Store, error) {
	log := logger.FromContext(ctx).With("path", path)

	b, err := os.ReadFile(path) // #nosec G304 // the path comes from the user's own configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.DebugContext(ctx, "Store file does not exist yet, starting empty")
			return New(), nil
		}
		log.ErrorContext(ctx, "Failed to read store file", "error", err)
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	s := New()
	if err := json.Unmarshal(b, s); err != nil {
		log.ErrorContext(ctx, "Failed to parse store file", "error", err)
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	return s, nil
}

// Save writes the store to path in the persisted format. Existing run
// objects are rewritten byte-identically, so appending runs never alters
// what earlier invocations recorded. Save does not serialize concurrent
// writers of the same file; callers sharing a store file across processes
// must bring their own locking.
func Save(ctx context.Context, path string, s *Store) error {
	log := logger.FromContext(ctx).With("path", path)

	b, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		log.ErrorContext(ctx, "Failed to encode store", "error", err)
		return fmt.Errorf("failed to encode store: %w", err)
	}

	if err := os.WriteFile(path, b, 0o600); err != nil {
		log.ErrorContext(ctx, "Failed to write store file", "error", err)
		return fmt.Errorf("failed to write store file: %w", err)
	}

	log.DebugContext(ctx, "Store file written", "targets", len(s.Targets()))
	return nil
}
