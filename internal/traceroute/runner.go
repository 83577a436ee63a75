// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/telekom/skylark/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// defaultBinary is the name of the probe binary looked up on PATH.
const defaultBinary = "traceroute"

// lineSource yields decoded probe output lines in arrival order.
//
//go:generate go tool moq -out source_moq.go . lineSource
type lineSource interface {
	// Next returns the next line with surrounding whitespace stripped.
	// io.EOF signals the end of the stream.
	Next() (string, error)
}

var _ lineSource = (*scanSource)(nil)

// scanSource adapts a bufio.Scanner to the lineSource interface.
type scanSource struct {
	scanner *bufio.Scanner
}

func newScanSource(r io.Reader) *scanSource {
	return &scanSource{scanner: bufio.NewScanner(r)}
}

func (s *scanSource) Next() (string, error) {
	if s.scanner.Scan() {
		return strings.TrimSpace(s.scanner.Text()), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Runner invokes the external traceroute binary and assembles its output
// into Run records.
type Runner struct {
	binary  string
	dialect Dialect
	opts    Options
	metrics metrics
	tracer  trace.Tracer
}

// NewRunner creates a Runner for the given dialect and options. An empty
// binary falls back to the traceroute found on the path.
func NewRunner(binary string, dialect Dialect, opts Options) *Runner {
	if binary == "" {
		binary = defaultBinary
	}
	return &Runner{
		binary:  binary,
		dialect: dialect,
		opts:    opts,
		metrics: newMetrics(),
		tracer:  otel.Tracer("traceroute"),
	}
}

// Dialect returns the dialect the runner parses with.
func (r *Runner) Dialect() Dialect {
	return r.dialect
}

// Run executes one traceroute against target and assembles the Run record.
// All returned errors are fatal to this run only; previously assembled runs
// are unaffected.
func (r *Runner) Run(ctx context.Context, target string) (Run, error) {
	log := logger.FromContext(ctx)
	ctx, span := r.tracer.Start(ctx, "traceroute.run", trace.WithAttributes(
		attribute.String("traceroute.target", target),
		attribute.String("traceroute.dialect", r.dialect.String()),
	))
	defer span.End()

	argv := r.opts.args(r.binary, r.dialect, target)
	command := strings.Join(argv, " ")
	log.InfoContext(ctx, "Starting traceroute", "command", command)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) // #nosec G204 // argv is built from validated options
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw
	// Closing the read end fails any output copy still pending once
	// collect stops reading, so the wait goroutine below always finishes.
	defer func() { _ = pr.Close() }()

	if err := cmd.Start(); err != nil {
		span.SetStatus(codes.Error, "Failed to start traceroute binary")
		span.RecordError(err)
		return Run{}, fmt.Errorf("failed to start %q: %w", command, err)
	}
	go func() {
		// The binary's exit code is uninformative here; errors surface as
		// banner or hop line content. Closing the pipe ends the line source.
		_ = cmd.Wait()
		_ = pw.Close()
	}()

	run, err := collect(ctx, newScanSource(pr), r.dialect, r.opts.Tries, target, command)
	r.metrics.Record(target, run, err)
	if err != nil {
		span.SetStatus(codes.Error, "Traceroute run failed")
		span.RecordError(err)
		return run, err
	}

	log.InfoContext(ctx, "Finished traceroute", "target", target, "hops", len(run.Hops), "duration", run.Duration)
	return run, nil
}

// collect implements the run assembly protocol: one banner line first, then
// hop lines until a blank line or the end of the stream. The run duration
// covers the hop-reading loop only.
func collect(ctx context.Context, src lineSource, dialect Dialect, tries int, target, command string) (Run, error) {
	log := logger.FromContext(ctx)
	run := Run{
		Target:    target,
		Command:   command,
		Timestamp: time.Now(),
	}

	banner, err := src.Next()
	if err != nil && !errors.Is(err, io.EOF) {
		return run, fmt.Errorf("failed to read banner line: %w", err)
	}
	run.Description = banner
	if strings.Contains(strings.ToLower(banner), "name or service not known") {
		return run, ErrUnresolvedHost
	}

	start := time.Now()
	for {
		line, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return run, fmt.Errorf("failed to read hop line: %w", err)
		}
		if strings.Contains(strings.ToLower(line), "invalid argument") {
			return run, ErrInvalidArgument
		}
		if line == "" {
			break
		}

		hop, pErr := ParseHopLine(line, dialect, tries)
		if pErr != nil {
			return run, pErr
		}
		run.Hops = append(run.Hops, hop)
		log.DebugContext(ctx, "Parsed hop line", "hop", hop.String())
	}
	run.Duration = time.Since(start).Seconds()

	if run.NoData() {
		log.WarnContext(ctx, "Traceroute returned no path data", "target", target)
	}
	return run, nil
}

// DetectDialect runs "traceroute --version" and maps the reported version
// banner to the dialect the installed binary speaks.
func DetectDialect(ctx context.Context, binary string) (Dialect, error) {
	if binary == "" {
		binary = defaultBinary
	}
	out, err := exec.CommandContext(ctx, binary, "--version").CombinedOutput()
	if err != nil && len(out) == 0 {
		return "", fmt.Errorf("cannot find a supported traceroute binary: %w", err)
	}

	banner, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return DialectForVersion(banner)
}
