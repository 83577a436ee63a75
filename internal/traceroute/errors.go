// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedHost is returned when the probe banner reports that the
	// target could not be resolved. No hop line is read after it.
	ErrUnresolvedHost = errors.New("name or service not known")
	// ErrInvalidArgument is returned when the probe output reports an
	// invalid invocation argument mid-run.
	ErrInvalidArgument = errors.New("traceroute reported an invalid argument")
)

// ErrUnknownDialect is returned when classification is requested under a
// dialect with no rule set. It fails at configuration time, before any
// line is read.
type ErrUnknownDialect struct {
	Dialect Dialect
}

func (e ErrUnknownDialect) Error() string {
	return fmt.Sprintf("unknown traceroute dialect %q", string(e.Dialect))
}

// ErrUnsupportedVersion is returned when the installed traceroute binary
// reports a version banner that maps to no supported dialect.
type ErrUnsupportedVersion struct {
	Banner string
}

func (e ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("unsupported traceroute version %q", e.Banner)
}

// ErrMalformedHopLine is returned when a hop line does not start with a
// non-negative integer hop index. The error is fatal to the run: without
// the index the remaining lines lose their reference frame.
type ErrMalformedHopLine struct {
	Line string
}

func (e ErrMalformedHopLine) Error() string {
	return fmt.Sprintf("malformed hop line %q: first token is not a hop index", e.Line)
}

// ErrProbeCountMismatch is returned when the classified tokens of a hop
// line account for a different number of probe outcomes than expected.
// It signals dialect mis-selection or unexpected probe output and is
// never silently repaired.
type ErrProbeCountMismatch struct {
	Line     string
	Expected int
	Got      int
}

func (e ErrProbeCountMismatch) Error() string {
	return fmt.Sprintf("probe count mismatch in hop line %q: expected %d outcomes, got %d", e.Line, e.Expected, e.Got)
}
