// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Method is the probe method the traceroute binary uses.
type Method string

const (
	MethodUDP  Method = "udp"
	MethodICMP Method = "icmp"
)

func (m Method) IsValid() bool {
	valid := []Method{MethodUDP, MethodICMP}
	return slices.Contains(valid, m)
}

// Options contains the optional configuration passed to the traceroute
// binary. The zero value is not usable; start from DefaultOptions.
type Options struct {
	// FirstHop is the initial hop distance (TTL). Zero leaves the binary's
	// default in place.
	FirstHop int `json:"firstHop,omitempty" yaml:"firstHop,omitempty" mapstructure:"firstHop"`
	// Gateways are intermediate hosts for loose source routing.
	Gateways []string `json:"gateways,omitempty" yaml:"gateways,omitempty" mapstructure:"gateways"`
	// ICMP switches the probe packets to ICMP ECHO.
	ICMP bool `json:"icmp,omitempty" yaml:"icmp,omitempty" mapstructure:"icmp"`
	// MaxHops is the maximal hop count.
	MaxHops int `json:"maxHops" yaml:"maxHops" mapstructure:"maxHops"`
	// Method selects the traceroute operation method.
	Method Method `json:"method" yaml:"method" mapstructure:"method"`
	// Port is the destination port.
	Port int `json:"port" yaml:"port" mapstructure:"port"`
	// Tries is the number of probe packets sent per hop.
	Tries int `json:"tries" yaml:"tries" mapstructure:"tries"`
	// ResolveHostnames asks the binary to resolve hop names. Only the
	// inetutils dialect needs the flag; the modern binary resolves by
	// default.
	ResolveHostnames bool `json:"resolveHostnames,omitempty" yaml:"resolveHostnames,omitempty" mapstructure:"resolveHostnames"`
	// TypeOfService sets the TOS field on outgoing probes. Zero leaves the
	// binary's default in place.
	TypeOfService int `json:"tos,omitempty" yaml:"tos,omitempty" mapstructure:"tos"`
	// Wait is the number of seconds to wait for a probe response.
	Wait int `json:"wait" yaml:"wait" mapstructure:"wait"`
}

// DefaultOptions returns the options the binary would be called with when
// nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxHops: 64,
		Method:  MethodUDP,
		Port:    33434,
		Tries:   3,
		Wait:    3,
	}
}

func (o Options) Validate() error {
	if !o.Method.IsValid() {
		return fmt.Errorf("invalid probe method: %q", o.Method)
	}
	if o.Tries < 1 {
		return fmt.Errorf("invalid probe tries: %d, must be at least 1", o.Tries)
	}
	if o.MaxHops < 1 {
		return fmt.Errorf("invalid max hops: %d, must be at least 1", o.MaxHops)
	}
	if o.Port < 1 || o.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1 and 65535", o.Port)
	}
	if o.Wait < 1 {
		return fmt.Errorf("invalid probe wait: %ds, must be at least 1s", o.Wait)
	}
	return nil
}

// args builds the traceroute argv for the target. The two dialects take the
// probe method differently and only inetutils knows --resolve-hostnames.
func (o Options) args(binary string, dialect Dialect, target string) []string {
	argv := []string{binary}

	if o.FirstHop > 0 {
		argv = append(argv, "-f", strconv.Itoa(o.FirstHop))
	}
	if len(o.Gateways) > 0 {
		argv = append(argv, "-g", strings.Join(o.Gateways, " "))
	}
	if o.ICMP {
		argv = append(argv, "-I")
	}

	argv = append(argv, "-m", strconv.Itoa(o.MaxHops))

	switch dialect {
	case DialectInetutils:
		argv = append(argv, "-M", string(o.Method))
	case DialectModern:
		argv = append(argv, "--"+string(o.Method))
	}

	argv = append(argv, "-p", strconv.Itoa(o.Port))
	argv = append(argv, "-q", strconv.Itoa(o.Tries))

	if dialect == DialectInetutils && o.ResolveHostnames {
		argv = append(argv, "--resolve-hostnames")
	}

	if o.TypeOfService > 0 {
		argv = append(argv, "-t", strconv.Itoa(o.TypeOfService))
	}

	argv = append(argv, "-w", strconv.Itoa(o.Wait))

	return append(argv, target)
}
