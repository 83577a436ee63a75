// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package api exposes the stored runs, their statistics and the merged
// topology over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/telekom/skylark/internal/logger"
	"github.com/telekom/skylark/pkg/analysis"
	"github.com/telekom/skylark/pkg/metrics"
	"github.com/telekom/skylark/pkg/store"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second

	defaultCacheTTL = 30 * time.Second
)

// Config holds the api configuration
type Config struct {
	// ListeningAddress is the address the http server binds to
	ListeningAddress string `yaml:"address" mapstructure:"address"`
	// CacheTTL is how long computed responses are served from cache
	CacheTTL time.Duration `yaml:"cacheTtl" mapstructure:"cacheTtl"`
}

func (c *Config) Validate(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if c.ListeningAddress == "" {
		log.ErrorContext(ctx, "Listening address is required")
		return errors.New("listening address is required")
	}
	if c.CacheTTL < 0 {
		log.ErrorContext(ctx, "Cache ttl must not be negative", "cacheTtl", c.CacheTTL)
		return fmt.Errorf("cache ttl must not be negative: %s", c.CacheTTL)
	}
	return nil
}

// API is the http surface of a skylark instance
type API interface {
	// Run serves the api until the context is canceled or Shutdown is called
	Run(ctx context.Context) error
	// Shutdown gracefully stops the api server
	Shutdown(ctx context.Context) error
}

var _ API = (*api)(nil)

type api struct {
	config     Config
	router     chi.Router
	server     *http.Server
	metrics    metrics.Provider
	store      *store.Store
	aggregator *analysis.Aggregator
	builder    *analysis.Builder
	cache      *gocache.Cache
}

// New creates the api for the given run store. The store keeps being
// shared with the probe loop; the aggregation endpoints recompute on
// every cache miss so newly appended runs become visible within one ttl.
func New(ctx context.Context, config Config, provider metrics.Provider, s *store.Store) API {
	ttl := config.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	a := &api{
		config:     config,
		router:     chi.NewRouter(),
		metrics:    provider,
		store:      s,
		aggregator: analysis.NewAggregator(s),
		builder:    analysis.NewBuilder(s),
		cache:      gocache.New(ttl, 2*ttl),
	}
	a.registerRoutes(ctx)
	return a
}

func (a *api) registerRoutes(ctx context.Context) {
	a.router.Use(logger.Middleware(ctx))
	a.router.Get("/v1/targets", a.handleTargets)
	a.router.Get("/v1/stats", a.handleStats)
	a.router.Get("/v1/stats/{target}", a.handleTargetStats)
	a.router.Get("/v1/topology", a.handleTopology)
	a.router.Get("/openapi.json", a.handleOpenapi)
	a.router.Handle("/metrics",
		promhttp.HandlerFor(a.metrics.GetRegistry(), promhttp.HandlerOpts{}),
	)
}

// Run serves the http api. It blocks until the context is canceled or
// Shutdown is called and returns every error except the server's regular
// closing one.
func (a *api) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	a.server = &http.Server{
		Addr:              a.config.ListeningAddress,
		Handler:           a.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	log.InfoContext(ctx, "Serving api", "address", a.config.ListeningAddress)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Failed to serve api", "error", err)
		return fmt.Errorf("failed to serve api: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the api server
func (a *api) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown api: %w", err)
	}
	return nil
}

// targetInfo is one /v1/targets row: a recorded target and how many of its
// runs carried no path data.
type targetInfo struct {
	Target    string `json:"target"`
	Runs      int    `json:"runs"`
	EmptyRuns int    `json:"emptyRuns"`
}

func (a *api) handleTargets(w http.ResponseWriter, r *http.Request) {
	a.respondCached(w, r, func() (any, error) {
		targets := a.store.Targets()
		rows := make([]targetInfo, 0, len(targets))
		for _, target := range targets {
			row := targetInfo{Target: target}
			for _, run := range a.store.History(target) {
				row.Runs++
				if run.NoData() {
					row.EmptyRuns++
				}
			}
			rows = append(rows, row)
		}
		return rows, nil
	})
}

func (a *api) handleStats(w http.ResponseWriter, r *http.Request) {
	a.respondCached(w, r, func() (any, error) {
		return a.aggregator.StatsForAll(), nil
	})
}

func (a *api) handleTargetStats(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "target")
	if !slices.Contains(a.store.Targets(), target) {
		http.Error(w, fmt.Sprintf("unknown target %q", target), http.StatusNotFound)
		return
	}
	a.respondCached(w, r, func() (any, error) {
		return a.aggregator.StatsFor(target), nil
	})
}

func (a *api) handleTopology(w http.ResponseWriter, r *http.Request) {
	var targets []string
	if q := r.URL.Query().Get("targets"); q != "" {
		targets = splitTargets(q)
	}
	a.respondCached(w, r, func() (any, error) {
		return a.builder.BuildGraph(targets), nil
	})
}

func (a *api) handleOpenapi(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	doc, err := openapiDoc()
	if err != nil {
		log.ErrorContext(r.Context(), "Failed to build openapi schema", "error", err)
		http.Error(w, "failed to build openapi schema", http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, doc)
}

// respondCached serves the request from the response cache, computing and
// caching the body on a miss. The full request uri is the cache key, so
// query variants cache independently.
func (a *api) respondCached(w http.ResponseWriter, r *http.Request, compute func() (any, error)) {
	log := logger.FromContext(r.Context())
	key := r.URL.RequestURI()

	if body, ok := a.cache.Get(key); ok {
		writeBody(w, r, body.([]byte))
		return
	}

	v, err := compute()
	if err != nil {
		log.ErrorContext(r.Context(), "Failed to compute response", "error", err)
		http.Error(w, "failed to compute response", http.StatusInternalServerError)
		return
	}

	body, err := json.Marshal(v)
	if err != nil {
		log.ErrorContext(r.Context(), "Failed to encode response", "error", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	a.cache.Set(key, body, gocache.DefaultExpiration)
	writeBody(w, r, body)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	writeBody(w, r, body)
}

func writeBody(w http.ResponseWriter, r *http.Request, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to write response", "error", err)
	}
}

func splitTargets(q string) []string {
	var targets []string
	for _, t := range strings.Split(q, ",") {
		if t = strings.TrimSpace(t); t != "" {
			targets = append(targets, t)
		}
	}
	return targets
}
