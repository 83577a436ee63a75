// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Options) {}, wantErr: false},
		{name: "invalid method", mutate: func(o *Options) { o.Method = "tcp" }, wantErr: true},
		{name: "zero tries", mutate: func(o *Options) { o.Tries = 0 }, wantErr: true},
		{name: "zero max hops", mutate: func(o *Options) { o.MaxHops = 0 }, wantErr: true},
		{name: "port out of range", mutate: func(o *Options) { o.Port = 70000 }, wantErr: true},
		{name: "zero wait", mutate: func(o *Options) { o.Wait = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Options.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptions_args(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		dialect Dialect
		want    []string
	}{
		{
			name:    "defaults on modern dialect",
			opts:    DefaultOptions(),
			dialect: DialectModern,
			want: []string{
				"traceroute", "-m", "64", "--udp", "-p", "33434", "-q", "3", "-w", "3", "example.com",
			},
		},
		{
			name:    "defaults on inetutils dialect",
			opts:    DefaultOptions(),
			dialect: DialectInetutils,
			want: []string{
				"traceroute", "-m", "64", "-M", "udp", "-p", "33434", "-q", "3", "-w", "3", "example.com",
			},
		},
		{
			name: "every option set on inetutils",
			opts: Options{
				FirstHop:         2,
				Gateways:         []string{"192.0.2.1", "192.0.2.2"},
				ICMP:             true,
				MaxHops:          30,
				Method:           MethodICMP,
				Port:             33500,
				Tries:            5,
				ResolveHostnames: true,
				TypeOfService:    16,
				Wait:             5,
			},
			dialect: DialectInetutils,
			want: []string{
				"traceroute", "-f", "2", "-g", "192.0.2.1 192.0.2.2", "-I",
				"-m", "30", "-M", "icmp", "-p", "33500", "-q", "5",
				"--resolve-hostnames", "-t", "16", "-w", "5", "example.com",
			},
		},
		{
			name: "resolve flag is unknown to the modern binary",
			opts: func() Options {
				o := DefaultOptions()
				o.ResolveHostnames = true
				return o
			}(),
			dialect: DialectModern,
			want: []string{
				"traceroute", "-m", "64", "--udp", "-p", "33434", "-q", "3", "-w", "3", "example.com",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.args("traceroute", tt.dialect, "example.com")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Options.args() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
