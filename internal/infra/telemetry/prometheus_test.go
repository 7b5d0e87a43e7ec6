package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
)

func TestNewPrometheusMetrics(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())
	assert.NotNil(t, m)
	assert.NotNil(t, m.searchDuration)
	assert.NotNil(t, m.searchTools)
	assert.NotNil(t, m.providerErrors)
	assert.NotNil(t, m.fallbackServed)
}

func TestPrometheusMetrics_ImplementsInterface(t *testing.T) {
	var _ domain.Metrics = (*PrometheusMetrics)(nil)
}

func TestPrometheusMetrics_UsesProvidedRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewPrometheusMetrics(registry)
	m.ObserveSearch(domain.SearchMetric{
		Entry:    "trending",
		Status:   domain.SearchStatusOK,
		Tools:    12,
		Duration: 150 * time.Millisecond,
	})
	m.ObserveProviderError(domain.CodeRateLimited)
	m.ObserveFallback("trending")

	metrics, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(metrics))
	for _, metric := range metrics {
		names = append(names, metric.GetName())
	}

	assert.Contains(t, names, "radar_search_duration_seconds")
	assert.Contains(t, names, "radar_search_tools")
	assert.Contains(t, names, "radar_provider_errors_total")
	assert.Contains(t, names, "radar_fallback_served_total")
}
