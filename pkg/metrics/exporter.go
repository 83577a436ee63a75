// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials"
)

// Exporter is the protocol the traces are exported with
type Exporter string

const (
	// STDOUT writes the traces to stdout
	STDOUT Exporter = "stdout"
	// HTTP exports the traces via otlp over http
	HTTP Exporter = "http"
	// GRPC exports the traces via otlp over grpc
	GRPC Exporter = "grpc"
	// NOOP discards the traces
	NOOP Exporter = "noop"
)

type exporterFactory func(ctx context.Context, config *Config) (sdktrace.SpanExporter, error)

var registry = map[Exporter]exporterFactory{
	STDOUT: newStdoutExporter,
	HTTP:   newHTTPExporter,
	GRPC:   newGRPCExporter,
	NOOP:   newNoopExporter,
	// The zero value behaves like noop so tracing stays off unless configured.
	Exporter(""): newNoopExporter,
}

// Create creates a new exporter based on the configuration
func (e Exporter) Create(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	factory, ok := registry[e]
	if !ok {
		return nil, fmt.Errorf("unsupported exporter %q", e)
	}
	return factory(ctx, config)
}

// Validate validates the exporter
func (e Exporter) Validate() error {
	if _, ok := registry[e]; !ok {
		return fmt.Errorf("unsupported exporter %q", e)
	}
	return nil
}

// IsExporting returns true if the exporter sends traces to a collector
func (e Exporter) IsExporting() bool {
	return e == HTTP || e == GRPC
}

func (e Exporter) String() string {
	return string(e)
}

func newStdoutExporter(_ context.Context, _ *Config) (sdktrace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func newHTTPExporter(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(config.Url),
		otlptracehttp.WithHeaders(headers(config)),
	}

	switch tlsCfg, err := getTLSConfig(config); {
	case err != nil:
		return nil, fmt.Errorf("failed to create tls config: %w", err)
	case tlsCfg != nil:
		opts = append(opts, otlptracehttp.WithTLSClientConfig(tlsCfg))
	default:
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	return otlptracehttp.New(ctx, opts...)
}

func newGRPCExporter(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(config.Url),
		otlptracegrpc.WithHeaders(headers(config)),
	}

	switch tlsCfg, err := getTLSConfig(config); {
	case err != nil:
		return nil, fmt.Errorf("failed to create tls config: %w", err)
	case tlsCfg != nil:
		opts = append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewTLS(tlsCfg)))
	default:
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	return otlptracegrpc.New(ctx, opts...)
}

func newNoopExporter(_ context.Context, _ *Config) (sdktrace.SpanExporter, error) {
	return &noopExporter{}, nil
}

func headers(config *Config) map[string]string {
	h := map[string]string{}
	if config.Token != "" {
		h["Authorization"] = fmt.Sprintf("Bearer %s", config.Token)
	}
	return h
}

// getTLSConfig returns nil when tls is disabled
func getTLSConfig(config *Config) (*tls.Config, error) {
	if !config.TLS.Enabled {
		return nil, nil
	}

	pool, err := x509.SystemCertPool()
	if err != nil {
		return nil, fmt.Errorf("failed to load system cert pool: %w", err)
	}

	if config.TLS.CertPath != "" {
		pem, err := os.ReadFile(config.TLS.CertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read certificate file %q: %w", config.TLS.CertPath, err)
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("failed to parse certificate file %q", config.TLS.CertPath)
		}
	}

	return &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}

var _ sdktrace.SpanExporter = (*noopExporter)(nil)

type noopExporter struct{}

func (e *noopExporter) ExportSpans(_ context.Context, _ []sdktrace.ReadOnlySpan) error {
	return nil
}

func (e *noopExporter) Shutdown(_ context.Context) error {
	return nil
}
