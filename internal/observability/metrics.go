package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/fbref-fixtures/internal/usecase"
)

// ScrapeMetrics owns a private Prometheus registry for scrape and fetch
// counters. A nil *ScrapeMetrics records nothing.
type ScrapeMetrics struct {
	registry       *prometheus.Registry
	fetchAttempts  *prometheus.CounterVec
	scrapes        *prometheus.CounterVec
	scrapeDuration prometheus.Histogram
	lastFixtures   prometheus.Gauge
	lastSuccess    prometheus.Gauge
}

func NewScrapeMetrics(namespace string) *ScrapeMetrics {
	m := &ScrapeMetrics{
		registry: prometheus.NewRegistry(),
		fetchAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_attempts_total",
				Help:      "Schedule page fetch attempts by outcome",
			},
			[]string{"outcome"},
		),
		scrapes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scrapes_total",
				Help:      "Season scrapes by outcome",
			},
			[]string{"outcome"},
		),
		scrapeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "scrape_duration_seconds",
				Help:      "Wall time of a season scrape including retries",
				Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 15, 30, 60},
			},
		),
		lastFixtures: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_scrape_fixtures",
				Help:      "Fixtures returned by the last successful scrape",
			},
		),
		lastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_scrape_success_timestamp_seconds",
				Help:      "Unix time of the last successful scrape",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.fetchAttempts,
		m.scrapes,
		m.scrapeDuration,
		m.lastFixtures,
		m.lastSuccess,
	)

	return m
}

func (m *ScrapeMetrics) ObserveFetchAttempt(outcome string) {
	if m == nil {
		return
	}
	m.fetchAttempts.WithLabelValues(outcome).Inc()
}

func (m *ScrapeMetrics) ObserveScrape(outcome string, elapsed time.Duration, fixtures int) {
	if m == nil {
		return
	}
	m.scrapes.WithLabelValues(outcome).Inc()
	m.scrapeDuration.Observe(elapsed.Seconds())
	if outcome == usecase.OutcomeSuccess {
		m.lastFixtures.Set(float64(fixtures))
		m.lastSuccess.SetToCurrentTime()
	}
}

// Registry exposes the private registry so callers can gather or extend it.
func (m *ScrapeMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *ScrapeMetrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
