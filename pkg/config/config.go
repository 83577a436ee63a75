// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"

	"github.com/telekom/skylark/internal/traceroute"
	"github.com/telekom/skylark/pkg/api"
	"github.com/telekom/skylark/pkg/metrics"
	"github.com/telekom/skylark/pkg/store"
)

// DialectAuto asks the runner to detect the installed traceroute flavour
// from its version banner instead of configuring one.
const DialectAuto = "auto"

type Config struct {
	// Probe is the configuration for the traceroute invocations
	Probe ProbeConfig `yaml:"probe" mapstructure:"probe"`
	// Store is the configuration for the run store
	Store StoreConfig `yaml:"store" mapstructure:"store"`
	// Targets is the configuration for the probed targets
	Targets TargetsConfig `yaml:"targets" mapstructure:"targets"`
	// Api is the configuration for the api server
	Api api.Config `yaml:"api" mapstructure:"api"`
	// Telemetry is the configuration for the telemetry
	Telemetry metrics.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// ProbeConfig configures how the traceroute binary is invoked
type ProbeConfig struct {
	// Binary is the traceroute executable to run
	Binary string `yaml:"binary" mapstructure:"binary"`
	// Dialect is the traceroute flavour the binary speaks, or "auto"
	Dialect string `yaml:"dialect" mapstructure:"dialect"`
	// Interval is how often the serve mode re-probes the targets.
	// Zero disables probing, leaving serve a read-only view of the store.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
	// Options are the probe options passed to the binary
	Options traceroute.Options `yaml:",inline" mapstructure:",squash"`
}

// StoreConfig configures where runs are persisted
type StoreConfig struct {
	// Path is the json file the run store is persisted to
	Path string `yaml:"path" mapstructure:"path"`
	// Remote describes an optional remote snapshot to import runs from
	Remote store.RemoteConfig `yaml:"remote" mapstructure:"remote"`
}

// TargetsConfig configures the targets to probe
type TargetsConfig struct {
	// Static lists targets directly in the startup configuration
	Static []string `yaml:"static" mapstructure:"static"`
	// File is an optional yaml file holding a list of further targets
	File string `yaml:"file" mapstructure:"file"`
}

// HasRemote returns true if a remote store snapshot is configured
func (c *Config) HasRemote() bool {
	return c.Store.Remote.Url != ""
}

// HasTelemetry returns true if the config has telemetry enabled
func (c *Config) HasTelemetry() bool {
	return c.Telemetry.Enabled
}
