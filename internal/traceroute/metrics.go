// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics defines the metric collectors of the traceroute runner
type metrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.GaugeVec
	hops     *prometheus.GaugeVec
}

// newMetrics initializes the metric collectors of the traceroute runner
func newMetrics() metrics {
	return metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skylark_traceroute_runs_total",
				Help: "Total number of traceroute runs per target and outcome.",
			},
			[]string{"target", "status"},
		),
		duration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skylark_traceroute_run_duration_seconds",
				Help: "Wall-clock duration of the last traceroute run in seconds.",
			},
			[]string{"target"},
		),
		hops: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skylark_traceroute_hops",
				Help: "Number of hops recorded by the last traceroute run.",
			},
			[]string{"target"},
		),
	}
}

// List returns all metric collectors
func (m *metrics) List() []prometheus.Collector {
	return []prometheus.Collector{
		m.runs,
		m.duration,
		m.hops,
	}
}

// Record sets the metrics of one finished run
func (m *metrics) Record(target string, run Run, err error) {
	status := "ok"
	switch {
	case err != nil:
		status = "error"
	case run.NoData():
		status = "no_data"
	}
	m.runs.WithLabelValues(target, status).Inc()

	if err == nil {
		m.duration.WithLabelValues(target).Set(run.Duration)
		m.hops.WithLabelValues(target).Set(float64(len(run.Hops)))
	}
}

// Collectors allows the runner to provide prometheus metric collectors
func (r *Runner) Collectors() []prometheus.Collector {
	return r.metrics.List()
}
