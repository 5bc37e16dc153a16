// Package metrics defines Prometheus metrics for the groceries client and
// the mock grocery API.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "groceries"

// PushJob is the job label used when pushing client metrics.
const PushJob = "groceries_cli"

// Client request metrics.
var (
	ClientRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_requests_total",
		Help:      "Total number of requests sent to the grocery API, by status.",
	}, []string{"method", "status"})

	ClientRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "client_request_duration_seconds",
		Help:      "Duration of requests sent to the grocery API in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)

// Wizard metrics.
var (
	WizardAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wizard_attempts_total",
		Help:      "Total number of setup wizard attempts, by step and outcome.",
	}, []string{"step", "outcome"})
)

// Command metrics.
var (
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Total number of CLI commands run, by command and result.",
	}, []string{"command", "result"})
)

// Mock API server metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests served by the mock API in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served by the mock API.",
	}, []string{"method", "path", "status"})

	StatusUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "status_up",
		Help:      "Whether the last /status probe answered 2xx (1) or not (0).",
	})
)

// Push sends every registered metric to the Prometheus pushgateway at url.
// A CLI invocation is too short-lived to be scraped.
func Push(ctx context.Context, url string) error {
	return PushFrom(ctx, url, prometheus.DefaultGatherer)
}

// PushFrom is Push with an explicit gatherer.
func PushFrom(ctx context.Context, url string, g prometheus.Gatherer) error {
	if err := push.New(url, PushJob).Gatherer(g).PushContext(ctx); err != nil {
		return fmt.Errorf("pushing metrics: %w", err)
	}
	return nil
}
