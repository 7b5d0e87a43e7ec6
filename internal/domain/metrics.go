package domain

import "time"

// SearchStatus labels the outcome of one aggregation call for telemetry.
type SearchStatus string

const (
	SearchStatusOK       SearchStatus = "ok"
	SearchStatusFallback SearchStatus = "fallback"
	SearchStatusError    SearchStatus = "error"
)

// SearchMetric describes one completed aggregation call.
type SearchMetric struct {
	Entry    string
	Status   SearchStatus
	Tools    int
	Duration time.Duration
}

// Metrics receives aggregation telemetry. Implemented by
// telemetry.PrometheusMetrics; NopMetrics is used when observability is off.
type Metrics interface {
	ObserveSearch(m SearchMetric)
	ObserveProviderError(code ErrorCode)
	ObserveFallback(entry string)
}

type NopMetrics struct{}

func (NopMetrics) ObserveSearch(SearchMetric)     {}
func (NopMetrics) ObserveProviderError(ErrorCode) {}
func (NopMetrics) ObserveFallback(string)         {}
