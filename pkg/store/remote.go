// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/telekom/skylark/internal/helper"
	"github.com/telekom/skylark/internal/logger"
)

// RemoteConfig describes where to fetch a store snapshot from.
type RemoteConfig struct {
	// Url is the address the snapshot is served at.
	Url string `yaml:"url" mapstructure:"url"`
	// Token is an optional bearer token.
	Token string `yaml:"token" mapstructure:"token"`
	// Timeout is the timeout for the snapshot request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// Retry is the retry configuration for the snapshot request.
	Retry helper.RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// Fetch retrieves a persisted store snapshot over HTTP. Failed requests are
// retried per the retry configuration. Snapshots recorded on other hosts can
// be merged into a local store this way.
func Fetch(ctx context.Context, cfg RemoteConfig) (*Store, error) {
	log := logger.FromContext(ctx).With("url", cfg.Url)

	client := &http.Client{Timeout: cfg.Timeout}
	s := New()

	getSnapshot := func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Url, http.NoBody)
		if err != nil {
			log.ErrorContext(ctx, "Failed to create snapshot request", "error", err)
			return fmt.Errorf("failed to create snapshot request: %w", err)
		}
		if cfg.Token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", cfg.Token))
		}

		resp, err := client.Do(req) //nolint:bodyclose // closed via defer below
		if err != nil {
			log.ErrorContext(ctx, "Failed to fetch store snapshot", "error", err)
			return fmt.Errorf("failed to fetch store snapshot: %w", err)
		}
		defer func(body io.ReadCloser) {
			if cerr := body.Close(); cerr != nil {
				log.ErrorContext(ctx, "Failed to close response body", "error", cerr)
			}
		}(resp.Body)

		if resp.StatusCode != http.StatusOK {
			log.ErrorContext(ctx, "Snapshot request failed", "status", resp.Status)
			return fmt.Errorf("snapshot request failed with status %s", resp.Status)
		}

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read snapshot body: %w", err)
		}
		if err := json.Unmarshal(b, s); err != nil {
			return fmt.Errorf("failed to parse snapshot: %w", err)
		}
		return nil
	}

	if err := helper.Retry(getSnapshot, cfg.Retry)(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch store snapshot from %q: %w", cfg.Url, err)
	}
	return s, nil
}
