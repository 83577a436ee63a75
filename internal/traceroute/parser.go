// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"slices"
	"strconv"
	"strings"
)

// ParseHopLine converts one raw traceroute output line into a Hop.
// tries is the number of probes the tool sends per hop; every probe must be
// accounted for by either a timing sample or a timeout marker, otherwise an
// ErrProbeCountMismatch is returned. The first token must be the hop index.
func ParseHopLine(line string, dialect Dialect, tries int) (Hop, error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return Hop{}, ErrMalformedHopLine{Line: line}
	}

	index, err := strconv.Atoi(words[0])
	if err != nil || index < 0 {
		return Hop{}, ErrMalformedHopLine{Line: line}
	}

	hop := Hop{Index: index}
	remaining := tries
	for _, word := range words[1:] {
		token, cErr := dialect.Classify(word)
		if cErr != nil {
			return Hop{}, cErr
		}

		switch token.Kind {
		case TokenTimeout:
			hop.Timeouts++
			remaining--
		case TokenAddress:
			if !slices.Contains(hop.Addresses, token.Text) {
				hop.Addresses = append(hop.Addresses, token.Text)
			}
		case TokenTime:
			sample, pErr := strconv.ParseFloat(token.Text, 64)
			if pErr != nil {
				return Hop{}, ErrMalformedHopLine{Line: line}
			}
			hop.Samples = append(hop.Samples, sample)
			remaining--
		case TokenName:
			// Only one name per line is expected; later tokens win.
			hop.Hostname = token.Text
		case TokenIgnored:
		}
	}

	// A name is only kept when it is unambiguous: with several addresses
	// there is no telling which one it belongs to, and a name equal to the
	// sole address carries no information.
	if hop.Hostname != "" && len(hop.Addresses) > 0 {
		if len(hop.Addresses) > 1 || hop.Hostname == hop.Addresses[0] {
			hop.Hostname = ""
		}
	}

	if remaining != 0 {
		return Hop{}, ErrProbeCountMismatch{Line: line, Expected: tries, Got: tries - remaining}
	}

	return hop, nil
}
