// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/telekom/skylark/internal/traceroute"
	"github.com/telekom/skylark/pkg/api"
	"github.com/telekom/skylark/pkg/config"
)

// defaultConfig mirrors the defaults of the wrapped traceroute binary, so a
// bare config file probes the same way a bare traceroute invocation would.
func defaultConfig() config.Config {
	return config.Config{
		Probe: config.ProbeConfig{
			Dialect: config.DialectAuto,
			Options: traceroute.DefaultOptions(),
		},
		Store: config.StoreConfig{
			Path: "results.json",
		},
		Api: api.Config{
			ListeningAddress: ":8080",
		},
	}
}

// loadConfig unmarshals the viper-merged configuration over the defaults
// and validates it.
func loadConfig(ctx context.Context) (config.Config, error) {
	cfg := defaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(ctx); err != nil {
		return cfg, err
	}
	return cfg, nil
}
