// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telekom/skylark/internal/traceroute"
	"github.com/telekom/skylark/pkg/analysis"
	"github.com/telekom/skylark/pkg/metrics"
	"github.com/telekom/skylark/pkg/store"
)

func testAPI(t *testing.T, s *store.Store) *api {
	t.Helper()
	provider := &metrics.ProviderMock{
		GetRegistryFunc: prometheus.NewRegistry,
	}
	a := New(t.Context(), Config{ListeningAddress: ":8080"}, provider, s)
	return a.(*api)
}

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	s.Append(traceroute.Run{
		Target:    "example.com",
		Command:   "traceroute example.com",
		Timestamp: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		Duration:  1.5,
		Hops: []traceroute.Hop{
			{Index: 1, Addresses: []string{"192.0.2.1"}, Hostname: "gw.example", Samples: []float64{1.0, 2.0, 3.0}},
			{Index: 2, Addresses: []string{"192.0.2.9"}, Samples: []float64{5.0, 6.0, 7.0}},
		},
	})
	return s
}

func get(t *testing.T, a *api, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func TestAPI_Targets(t *testing.T) {
	s := seededStore(t)
	s.Append(traceroute.Run{
		Target:    "example.com",
		Command:   "traceroute example.com",
		Timestamp: time.Date(2025, 3, 14, 9, 5, 0, 0, time.UTC),
	})
	a := testAPI(t, s)

	rec := get(t, a, "/v1/targets")

	require.Equal(t, http.StatusOK, rec.Code)
	var rows []targetInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Equal(t, []targetInfo{{Target: "example.com", Runs: 2, EmptyRuns: 1}}, rows)
}

func TestAPI_Stats(t *testing.T) {
	a := testAPI(t, seededStore(t))

	rec := get(t, a, "/v1/stats")

	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []analysis.TargetSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "example.com", summaries[0].Target)
	assert.Equal(t, 6, summaries[0].Count)
}

func TestAPI_TargetStats(t *testing.T) {
	a := testAPI(t, seededStore(t))

	rec := get(t, a, "/v1/stats/example.com")

	require.Equal(t, http.StatusOK, rec.Code)
	var stats analysis.TargetStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Len(t, stats.Hops, 2)
	assert.Equal(t, []string{"192.0.2.1 (gw.example)"}, stats.Hops[0].Hosts)
}

func TestAPI_TargetStats_UnknownTarget(t *testing.T) {
	a := testAPI(t, seededStore(t))

	rec := get(t, a, "/v1/stats/nonexistent.example")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_Topology(t *testing.T) {
	a := testAPI(t, seededStore(t))

	rec := get(t, a, "/v1/topology?targets=example.com")

	require.Equal(t, http.StatusOK, rec.Code)
	var graph analysis.Graph
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &graph))
	assert.Equal(t, []string{"192.0.2.1", "192.0.2.9\n<example.com>"}, graph.Nodes)
	require.Len(t, graph.Edges, 1)
}

func TestAPI_Openapi(t *testing.T) {
	a := testAPI(t, seededStore(t))

	rec := get(t, a, "/openapi.json")

	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Contains(t, doc, "paths")
}

func TestAPI_Metrics(t *testing.T) {
	a := testAPI(t, seededStore(t))

	rec := get(t, a, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_ResponsesAreCached(t *testing.T) {
	s := seededStore(t)
	a := testAPI(t, s)

	first := get(t, a, "/v1/targets")
	require.Equal(t, http.StatusOK, first.Code)

	// A target appended after the first request stays invisible until the
	// cached response expires.
	s.Append(traceroute.Run{Target: "late.example", Timestamp: time.Now()})

	second := get(t, a, "/v1/targets")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "valid", config: Config{ListeningAddress: ":8080"}, wantErr: false},
		{name: "missing address", config: Config{}, wantErr: true},
		{name: "negative ttl", config: Config{ListeningAddress: ":8080", CacheTTL: -time.Second}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(t.Context()); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
