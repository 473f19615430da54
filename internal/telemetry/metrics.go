package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/wolfeidau/tempo-service"
)

// Metrics holds the OpenTelemetry metric instruments for the service
type Metrics struct {
	ConversionsTotal      metric.Int64Counter
	ConversionErrorsTotal metric.Int64Counter
	ConversionDuration    metric.Float64Histogram
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.ConversionsTotal, _ = meter.Int64Counter(
		"tempo.conversions.total",
		metric.WithDescription("Total number of successful calendar conversions"),
		metric.WithUnit("{conversion}"),
	)

	m.ConversionErrorsTotal, _ = meter.Int64Counter(
		"tempo.conversions.errors.total",
		metric.WithDescription("Total number of failed calendar conversions"),
		metric.WithUnit("{error}"),
	)

	m.ConversionDuration, _ = meter.Float64Histogram(
		"tempo.conversions.duration",
		metric.WithDescription("Duration of calendar conversions"),
		metric.WithUnit("ms"),
	)

	return m
}
