// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/telekom/skylark/internal/helper"
	"github.com/telekom/skylark/internal/traceroute"
	"github.com/telekom/skylark/pkg/api"
	"github.com/telekom/skylark/pkg/store"
)

func validConfig() Config {
	return Config{
		Probe: ProbeConfig{
			Binary:  "traceroute",
			Dialect: DialectAuto,
			Options: traceroute.DefaultOptions(),
		},
		Store: StoreConfig{
			Path: "results.json",
		},
		Targets: TargetsConfig{
			Static: []string{"example.com"},
		},
		Api: api.Config{
			ListeningAddress: ":8080",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:   "explicit dialect",
			mutate: func(c *Config) { c.Probe.Dialect = "inetutils" },
		},
		{
			name:    "unknown dialect",
			mutate:  func(c *Config) { c.Probe.Dialect = "bsd" },
			wantErr: ErrInvalidDialect,
		},
		{
			name:    "missing store path",
			mutate:  func(c *Config) { c.Store.Path = "" },
			wantErr: ErrInvalidStorePath,
		},
		{
			// The target list is resolved and checked at probe time, so a
			// serve-only config without targets stays valid.
			name:   "no targets",
			mutate: func(c *Config) { c.Targets = TargetsConfig{} },
		},
		{
			name:    "broken remote url",
			mutate:  func(c *Config) { c.Store.Remote = store.RemoteConfig{Url: "not a url"} },
			wantErr: ErrInvalidRemoteURL,
		},
		{
			name: "remote retry count too high",
			mutate: func(c *Config) {
				c.Store.Remote = store.RemoteConfig{
					Url:   "https://skylark.example.com/store",
					Retry: helper.RetryConfig{Count: 6, Delay: time.Second},
				}
			},
			wantErr: ErrInvalidRemoteRetryCount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate(t.Context())
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Config.Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Config.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTargetLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "targets.yaml")
	content := "- b.example\n- a.example\n- b.example\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write targets file: %v", err)
	}

	cfg := validConfig()
	cfg.Targets = TargetsConfig{
		Static: []string{"c.example", "a.example"},
		File:   path,
	}

	got, err := NewTargetLoader(&cfg).Load(t.Context())
	if err != nil {
		t.Fatalf("TargetLoader.Load() error = %v", err)
	}

	want := []string{"a.example", "b.example", "c.example"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TargetLoader.Load() = %v, want %v", got, want)
	}
}

func TestTargetLoader_Load_StaticOnly(t *testing.T) {
	cfg := validConfig()

	got, err := NewTargetLoader(&cfg).Load(t.Context())
	if err != nil {
		t.Fatalf("TargetLoader.Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"example.com"}) {
		t.Errorf("TargetLoader.Load() = %v", got)
	}
}

func TestTargetLoader_Load_MissingFile(t *testing.T) {
	cfg := validConfig()
	cfg.Targets = TargetsConfig{File: filepath.Join(t.TempDir(), "nope.yaml")}

	if _, err := NewTargetLoader(&cfg).Load(t.Context()); err == nil {
		t.Error("TargetLoader.Load() expected error for missing file")
	}
}

func TestTargetLoader_Load_Empty(t *testing.T) {
	cfg := validConfig()
	cfg.Targets = TargetsConfig{}

	_, err := NewTargetLoader(&cfg).Load(t.Context())
	if !errors.Is(err, ErrNoTargets) {
		t.Errorf("TargetLoader.Load() error = %v, want %v", err, ErrNoTargets)
	}
}
