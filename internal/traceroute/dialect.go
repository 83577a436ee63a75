// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"slices"
	"strconv"
	"strings"
)

// Dialect identifies one output format variant of the traceroute binary.
// The two supported variants disagree on how addresses and round-trip
// times are written, so every token classification is dialect-scoped.
type Dialect string

const (
	// DialectModern matches "Modern traceroute for Linux", which wraps
	// addresses in parentheses and prints round-trip times as bare decimals
	// followed by a standalone "ms" token.
	DialectModern Dialect = "modern"
	// DialectInetutils matches "traceroute (GNU inetutils)", which prints
	// bare dotted-quad addresses, suffixes round-trip times with "ms", and
	// wraps resolved names in parentheses.
	DialectInetutils Dialect = "inetutils"
)

func (d Dialect) String() string {
	switch d {
	case DialectModern, DialectInetutils:
		return string(d)
	default:
		return "unknown"
	}
}

func (d Dialect) IsValid() bool {
	valid := []Dialect{DialectModern, DialectInetutils}
	return slices.Contains(valid, d)
}

// TokenKind is the classification of one whitespace-delimited word of a
// hop line. Every word lands in exactly one kind; there is no fallthrough.
type TokenKind int

const (
	// TokenTimeout is the "*" marker for a probe that returned nothing.
	TokenTimeout TokenKind = iota
	// TokenAddress is a hop address.
	TokenAddress
	// TokenTime is a round-trip time in milliseconds.
	TokenTime
	// TokenName is a resolved hostname.
	TokenName
	// TokenIgnored is dialect noise carrying no information of its own,
	// such as the standalone "ms" unit printed by the modern dialect.
	TokenIgnored
)

// Token is one classified word of a hop line. Text carries the payload with
// the dialect's decoration stripped: parentheses removed from addresses and
// names, the "ms" unit removed from times.
type Token struct {
	Kind TokenKind
	Text string
}

// Classify assigns word to exactly one token kind under the dialect. An
// unknown dialect is rejected before any kind is matched, timeouts
// included. Kinds are tested in fixed order: timeout, address, time, name.
func (d Dialect) Classify(word string) (Token, error) {
	if !d.IsValid() {
		return Token{}, ErrUnknownDialect{Dialect: d}
	}

	if word == "*" {
		return Token{Kind: TokenTimeout, Text: word}, nil
	}
	if d == DialectModern {
		return classifyModern(word), nil
	}
	return classifyInetutils(word), nil
}

func classifyModern(word string) Token {
	if inner, ok := unwrapParens(word); ok && isDottedQuad(inner) {
		return Token{Kind: TokenAddress, Text: inner}
	}
	if isDecimal(word) {
		return Token{Kind: TokenTime, Text: word}
	}
	if word == "ms" {
		return Token{Kind: TokenIgnored, Text: word}
	}
	return Token{Kind: TokenName, Text: strings.Trim(word, "()")}
}

func classifyInetutils(word string) Token {
	if isDottedQuad(word) {
		return Token{Kind: TokenAddress, Text: word}
	}
	if ms, ok := strings.CutSuffix(word, "ms"); ok && isDecimal(ms) {
		return Token{Kind: TokenTime, Text: ms}
	}
	if inner, ok := unwrapParens(word); ok {
		return Token{Kind: TokenName, Text: strings.Trim(inner, "()")}
	}
	return Token{Kind: TokenIgnored, Text: word}
}

// unwrapParens returns the interior of a parenthesized word.
func unwrapParens(word string) (string, bool) {
	if len(word) >= 2 && word[0] == '(' && word[len(word)-1] == ')' {
		return word[1 : len(word)-1], true
	}
	return "", false
}

// isDottedQuad reports whether word is four dot-separated octets in [0,255].
func isDottedQuad(word string) bool {
	parts := strings.Split(word, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		octet, err := strconv.Atoi(part)
		if err != nil || octet < 0 || octet > 255 {
			return false
		}
	}
	return true
}

func isDecimal(word string) bool {
	_, err := strconv.ParseFloat(word, 64)
	return err == nil
}

// Version banners printed by "traceroute --version" for the supported dialects.
const (
	versionModern    = "Modern traceroute for Linux"
	versionInetutils = "GNU inetutils"
)

// DialectForVersion maps the first line of "traceroute --version" output to
// the dialect the binary speaks.
func DialectForVersion(banner string) (Dialect, error) {
	switch {
	case strings.Contains(banner, versionModern):
		return DialectModern, nil
	case strings.Contains(banner, versionInetutils):
		return DialectInetutils, nil
	default:
		return "", ErrUnsupportedVersion{Banner: banner}
	}
}
