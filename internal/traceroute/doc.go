// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package traceroute turns the free-form textual output of the system
// traceroute binary into structured path and latency records.
//
// The binary has no machine-readable output mode and its format differs
// between the two widespread implementations, so the package classifies
// each whitespace-delimited token of a hop line under an explicit
// [Dialect]: the "Modern traceroute for Linux" variant wraps addresses in
// parentheses and prints bare decimal times, while the GNU inetutils
// variant prints bare addresses, "12.3ms" times, and parenthesized names.
// Classification is a total function; every token lands in exactly one
// [TokenKind], eliminating order-dependent fallthrough.
//
// A [Runner] executes the binary, feeds its output lines through
// [ParseHopLine], and assembles one [Run] per target. Probe accounting is
// strict: a hop line whose samples and timeouts do not add up to the
// configured tries fails the run with [ErrProbeCountMismatch] instead of
// being silently repaired, since that mismatch usually means the wrong
// dialect was selected. A run that produces no hop lines is still a valid
// Run so callers can see that a measurement was attempted.
//
// Typical usage:
//
//	dialect, err := traceroute.DetectDialect(ctx, "")
//	runner := traceroute.NewRunner("", dialect, traceroute.DefaultOptions())
//	run, err := runner.Run(ctx, "example.com")
package traceroute
