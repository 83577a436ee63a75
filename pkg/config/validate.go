// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/telekom/skylark/internal/logger"
	"github.com/telekom/skylark/internal/traceroute"
)

// Validate validates the startup config
func (c *Config) Validate(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)

	if vErr := c.Probe.Validate(ctx); vErr != nil {
		log.Error("The probe configuration is invalid")
		err = errors.Join(err, vErr)
	}

	if vErr := c.Store.Validate(ctx); vErr != nil {
		log.Error("The store configuration is invalid")
		err = errors.Join(err, vErr)
	}

	if c.HasTelemetry() {
		if vErr := c.Telemetry.Validate(ctx); vErr != nil {
			log.Error("The telemetry configuration is invalid")
			err = errors.Join(err, vErr)
		}
	}

	if vErr := c.Api.Validate(ctx); vErr != nil {
		log.Error("The api configuration is invalid")
		err = errors.Join(err, vErr)
	}

	if err != nil {
		return fmt.Errorf("validation of configuration failed: %w", err)
	}
	return nil
}

// Validate validates the probe configuration
func (c *ProbeConfig) Validate(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if c.Dialect != DialectAuto && !traceroute.Dialect(c.Dialect).IsValid() {
		log.Error("The probe dialect must be a known flavour or auto", "dialect", c.Dialect)
		return ErrInvalidDialect
	}

	if c.Interval < 0 {
		log.Error("The probe interval should be equal or above 0", "interval", c.Interval)
		return ErrInvalidProbeInterval
	}

	return c.Options.Validate()
}

// Validate validates the store configuration
func (c *StoreConfig) Validate(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if c.Path == "" {
		log.Error("The store path cannot be empty")
		return ErrInvalidStorePath
	}

	if c.Remote.Url != "" {
		if _, err := url.ParseRequestURI(c.Remote.Url); err != nil {
			log.Error("The remote store url is not a valid url")
			return ErrInvalidRemoteURL
		}
		if c.Remote.Retry.Count < 0 || c.Remote.Retry.Count >= 5 {
			log.Error("The amount of remote store retries should be above 0 and below 6", "retryCount", c.Remote.Retry.Count)
			return ErrInvalidRemoteRetryCount
		}
	}

	return nil
}
