package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
)

type PrometheusMetrics struct {
	searchDuration *prometheus.HistogramVec
	searchTools    *prometheus.HistogramVec
	providerErrors *prometheus.CounterVec
	fallbackServed *prometheus.CounterVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		searchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "radar_search_duration_seconds",
				Help:    "Duration of aggregation calls in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"entry", "status"},
		),
		searchTools: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "radar_search_tools",
				Help:    "Number of tool records returned per aggregation call",
				Buckets: []float64{0, 5, 10, 25, 50, 100, 200},
			},
			[]string{"entry"},
		),
		providerErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "radar_provider_errors_total",
				Help: "Total provider failures by error code",
			},
			[]string{"code"},
		),
		fallbackServed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "radar_fallback_served_total",
				Help: "Total responses served from the curated fallback dataset",
			},
			[]string{"entry"},
		),
	}
}

func (m *PrometheusMetrics) ObserveSearch(metric domain.SearchMetric) {
	m.searchDuration.WithLabelValues(metric.Entry, string(metric.Status)).Observe(metric.Duration.Seconds())
	m.searchTools.WithLabelValues(metric.Entry).Observe(float64(metric.Tools))
}

func (m *PrometheusMetrics) ObserveProviderError(code domain.ErrorCode) {
	m.providerErrors.WithLabelValues(string(code)).Inc()
}

func (m *PrometheusMetrics) ObserveFallback(entry string) {
	m.fallbackServed.WithLabelValues(entry).Inc()
}
