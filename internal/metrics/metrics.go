// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics counts catalog resolutions and chapter fetches with
// Prometheus collectors. A CLI run is short-lived, so instead of serving
// /metrics the registry can be dumped to a node-exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "study_planner"

// Resolution outcomes.
const (
	ResolveSuccess          = "success"
	ResolveUnsupportedGrade = "unsupported_grade"
	ResolveBookNotFound     = "book_not_found"
	ResolveTitleNotFound    = "title_not_found"
)

// Recorder owns a private registry and the collectors registered on it.
type Recorder struct {
	registry *prometheus.Registry

	resolveTotal *prometheus.CounterVec
	fetchTotal   *prometheus.CounterVec
	fetchBytes   prometheus.Histogram
	fetchSeconds *prometheus.HistogramVec
}

// New creates a Recorder with its collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		resolveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolve_total",
			Help:      "Catalog lookups by outcome.",
		}, []string{"outcome"}),
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Chapter downloads by outcome.",
		}, []string{"outcome"}),
		fetchBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_bytes",
			Help:      "Size of downloaded chapters.",
			Buckets:   prometheus.ExponentialBuckets(64*1024, 2, 8),
		}),
		fetchSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time spent on a chapter download, storage included.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(r.resolveTotal, r.fetchTotal, r.fetchBytes, r.fetchSeconds)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveResolve counts one catalog lookup.
func (r *Recorder) ObserveResolve(outcome string) {
	r.resolveTotal.WithLabelValues(outcome).Inc()
}

// ObserveFetch counts one download attempt. It satisfies fetch.Observer.
func (r *Recorder) ObserveFetch(outcome string, bytes int, elapsed time.Duration) {
	r.fetchTotal.WithLabelValues(outcome).Inc()
	r.fetchSeconds.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if bytes > 0 {
		r.fetchBytes.Observe(float64(bytes))
	}
}

// WriteTextfile writes the registry in the text exposition format to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
