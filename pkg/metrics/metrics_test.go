// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestManager_GetRegistry(t *testing.T) {
	tests := []struct {
		name     string
		registry *prometheus.Registry
		want     *prometheus.Registry
	}{
		{
			name:     "simple registry",
			registry: prometheus.NewRegistry(),
			want:     prometheus.NewRegistry(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &manager{
				registry: tt.registry,
			}
			if got := m.GetRegistry(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("manager.GetRegistry() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewMetrics(t *testing.T) {
	testMetrics := New(Config{})
	testGauge := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "TEST_GAUGE",
		},
	)

	t.Run("Register a collector", func(t *testing.T) {
		testMetrics.(*manager).registry.MustRegister(
			testGauge,
		)
	})
}

func TestManager_InitTracing(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "success - stdout exporter",
			config: Config{
				Exporter: STDOUT,
				Url:      "",
				Token:    "",
			},
			wantErr: false,
		},
		{
			name: "success - otlp exporter",
			config: Config{
				Exporter: HTTP,
				Url:      "http://localhost:4317",
				Token:    "",
			},
			wantErr: false,
		},
		{
			name: "success - otlp exporter with token",
			config: Config{
				Exporter: GRPC,
				Url:      "http://localhost:4317",
				Token:    "my-super-secret-token",
			},
			wantErr: false,
		},
		{
			name: "success - no exporter",
			config: Config{
				Exporter: NOOP,
				Url:      "",
				Token:    "",
			},
			wantErr: false,
		},
		{
			name: "failure - unsupported exporter",
			config: Config{
				Exporter: "unsupported",
				Url:      "",
				Token:    "",
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.config)
			if err := m.InitTracing(context.Background()); (err != nil) != tt.wantErr {
				t.Errorf("manager.InitTracing() error = %v", err)
			}

			if tp, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
				t.Errorf("manager.InitTracing() type = %T, want = %T", tp, &sdktrace.TracerProvider{})
			}

			if err := m.Shutdown(context.Background()); err != nil {
				t.Fatalf("manager.Shutdown() error = %v", err)
			}
		})
	}
}

func TestExporter_Validate(t *testing.T) {
	tests := []struct {
		name     string
		exporter Exporter
		wantErr  bool
	}{
		{name: "stdout", exporter: STDOUT, wantErr: false},
		{name: "http", exporter: HTTP, wantErr: false},
		{name: "grpc", exporter: GRPC, wantErr: false},
		{name: "noop", exporter: NOOP, wantErr: false},
		{name: "empty defaults to noop", exporter: "", wantErr: false},
		{name: "unsupported", exporter: "carrier-pigeon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.exporter.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Exporter.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "exporting without url fails",
			config:  Config{Exporter: GRPC},
			wantErr: true,
		},
		{
			name:    "exporting with url",
			config:  Config{Exporter: HTTP, Url: "collector:4318"},
			wantErr: false,
		},
		{
			name:    "noop needs no url",
			config:  Config{Exporter: NOOP},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(context.Background()); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterBuildInfo(t *testing.T) {
	registry := prometheus.NewRegistry()
	if err := RegisterBuildInfo(registry, "0.1.0", "modern"); err != nil {
		t.Fatalf("RegisterBuildInfo() error = %v", err)
	}

	// Registering the same metric twice must fail, not silently overwrite.
	if err := RegisterBuildInfo(registry, "0.1.0", "modern"); err == nil {
		t.Error("RegisterBuildInfo() expected duplicate registration error")
	}
}
