// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialect_Classify_Modern(t *testing.T) {
	tests := []struct {
		name string
		word string
		want Token
	}{
		{name: "timeout marker", word: "*", want: Token{Kind: TokenTimeout, Text: "*"}},
		{name: "address in parens", word: "(93.184.216.34)", want: Token{Kind: TokenAddress, Text: "93.184.216.34"}},
		{name: "bare address is a name", word: "93.184.216.34", want: Token{Kind: TokenName, Text: "93.184.216.34"}},
		{name: "octet out of range", word: "(93.184.216.256)", want: Token{Kind: TokenName, Text: "93.184.216.256"}},
		{name: "too few octets", word: "(10.0.1)", want: Token{Kind: TokenName, Text: "10.0.1"}},
		{name: "bare time", word: "11.2", want: Token{Kind: TokenTime, Text: "11.2"}},
		{name: "integer time", word: "12", want: Token{Kind: TokenTime, Text: "12"}},
		{name: "unit token is ignored", word: "ms", want: Token{Kind: TokenIgnored, Text: "ms"}},
		{name: "hostname", word: "router.example.com", want: Token{Kind: TokenName, Text: "router.example.com"}},
		{name: "parenthesized non-address falls to name", word: "(gateway)", want: Token{Kind: TokenName, Text: "gateway"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DialectModern.Classify(tt.word)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialect_Classify_Inetutils(t *testing.T) {
	tests := []struct {
		name string
		word string
		want Token
	}{
		{name: "timeout marker", word: "*", want: Token{Kind: TokenTimeout, Text: "*"}},
		{name: "bare address", word: "93.184.216.34", want: Token{Kind: TokenAddress, Text: "93.184.216.34"}},
		{name: "address in parens is a name", word: "(93.184.216.34)", want: Token{Kind: TokenName, Text: "93.184.216.34"}},
		{name: "time with unit", word: "11.2ms", want: Token{Kind: TokenTime, Text: "11.2"}},
		{name: "bare number is noise", word: "11.2", want: Token{Kind: TokenIgnored, Text: "11.2"}},
		{name: "name in parens", word: "(router.example.com)", want: Token{Kind: TokenName, Text: "router.example.com"}},
		{name: "bare word is noise", word: "router.example.com", want: Token{Kind: TokenIgnored, Text: "router.example.com"}},
		{name: "octet out of range", word: "300.1.1.1", want: Token{Kind: TokenIgnored, Text: "300.1.1.1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DialectInetutils.Classify(tt.word)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialect_Classify_Unknown(t *testing.T) {
	// The timeout marker is shared by every dialect, but an unknown
	// dialect must still fail on it rather than classify it.
	for _, word := range []string{"10.0.0.1", "*"} {
		_, err := Dialect("legacy").Classify(word)
		var want ErrUnknownDialect
		if !errors.As(err, &want) {
			t.Fatalf("Classify(%q) error = %v, want ErrUnknownDialect", word, err)
		}
		assert.Equal(t, Dialect("legacy"), want.Dialect)
	}
}

func TestDialect_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		want    bool
	}{
		{name: "modern", dialect: DialectModern, want: true},
		{name: "inetutils", dialect: DialectInetutils, want: true},
		{name: "empty", dialect: "", want: false},
		{name: "unknown", dialect: "legacy", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.IsValid(); got != tt.want {
				t.Errorf("Dialect.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDialectForVersion(t *testing.T) {
	tests := []struct {
		name    string
		banner  string
		want    Dialect
		wantErr bool
	}{
		{
			name:   "modern banner",
			banner: "Modern traceroute for Linux, version 2.1.0",
			want:   DialectModern,
		},
		{
			name:   "inetutils banner",
			banner: "traceroute (GNU inetutils) 1.9.4",
			want:   DialectInetutils,
		},
		{
			name:    "unsupported banner",
			banner:  "tracert (Windows)",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DialectForVersion(tt.banner)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DialectForVersion() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
