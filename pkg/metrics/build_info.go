// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	buildInfoMetricName = "skylark_build_info"
	buildInfoHelp       = "Version and probe metadata for this skylark instance. Emitted once per instance for dashboard correlation."
)

// RegisterBuildInfo registers the skylark_build_info info-style metric on the given registry.
// It sets the gauge to 1 with labels version and dialect.
// The dialect label carries the traceroute flavour this instance probes with.
func RegisterBuildInfo(registry *prometheus.Registry, version, dialect string) error {
	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: buildInfoMetricName,
			Help: buildInfoHelp,
		},
		[]string{"version", "dialect"},
	)
	info.WithLabelValues(version, dialect).Set(1)
	return registry.Register(info)
}
