// Package metrics exposes Prometheus collectors for analysis runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline collects provider and run metrics. A nil *Pipeline is valid and
// records nothing.
type Pipeline struct {
	registry *prometheus.Registry

	ProviderRequests *prometheus.CounterVec
	RateLimitRetries *prometheus.CounterVec
	FixturesLoaded   prometheus.Counter
	Processed        prometheus.Counter
	Skipped          *prometheus.CounterVec
	Candidates       *prometheus.CounterVec
	Runs             *prometheus.CounterVec
	RunDuration      prometheus.Histogram
}

func NewPipeline(namespace string) *Pipeline {
	registry := prometheus.NewRegistry()

	p := &Pipeline{
		registry: registry,

		ProviderRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_requests_total",
				Help:      "Provider requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		RateLimitRetries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_rate_limit_retries_total",
				Help:      "Retries caused by HTTP 429 responses",
			},
			[]string{"endpoint"},
		),
		FixturesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixtures_loaded_total",
			Help:      "Upcoming fixtures accepted by the fixture loader",
		}),
		Processed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixtures_processed_total",
			Help:      "Fixtures that reached classification",
		}),
		Skipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fixtures_skipped_total",
				Help:      "Fixtures skipped before classification",
			},
			[]string{"reason"},
		),
		Candidates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "candidates_total",
				Help:      "Candidates produced by market",
			},
			[]string{"market"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Finished analysis runs by status",
			},
			[]string{"status"},
		),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of one analysis run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~34min
		}),
	}

	registry.MustRegister(
		p.ProviderRequests,
		p.RateLimitRetries,
		p.FixturesLoaded,
		p.Processed,
		p.Skipped,
		p.Candidates,
		p.Runs,
		p.RunDuration,
	)
	return p
}

func (p *Pipeline) Registry() *prometheus.Registry {
	if p == nil {
		return nil
	}
	return p.registry
}

func (p *Pipeline) RecordProviderRequest(endpoint, outcome string) {
	if p == nil {
		return
	}
	p.ProviderRequests.WithLabelValues(endpoint, outcome).Inc()
}

func (p *Pipeline) RecordRateLimitRetry(endpoint string) {
	if p == nil {
		return
	}
	p.RateLimitRetries.WithLabelValues(endpoint).Inc()
}

func (p *Pipeline) RecordFixturesLoaded(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.FixturesLoaded.Add(float64(n))
}

func (p *Pipeline) RecordProcessed() {
	if p == nil {
		return
	}
	p.Processed.Inc()
}

func (p *Pipeline) RecordSkipped(reason string) {
	if p == nil {
		return
	}
	p.Skipped.WithLabelValues(reason).Inc()
}

func (p *Pipeline) RecordCandidate(market string) {
	if p == nil {
		return
	}
	p.Candidates.WithLabelValues(market).Inc()
}

func (p *Pipeline) RecordRun(status string, elapsed time.Duration) {
	if p == nil {
		return
	}
	p.Runs.WithLabelValues(status).Inc()
	p.RunDuration.Observe(elapsed.Seconds())
}
