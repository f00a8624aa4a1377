package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	GenerationsStarted   metric.Int64Counter
	GenerationsSucceeded metric.Int64Counter
	GenerationsFailed    metric.Int64Counter
	GenerationDuration   metric.Float64Histogram
	ActiveAnalyses       metric.Int64UpDownCounter
	RenderDuration       metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("jeonnam-stay")
		var err error
		m := &AppMetrics{}

		m.GenerationsStarted, err = meter.Int64Counter(
			"itinerary_generations_started_total",
			metric.WithDescription("Total number of itinerary generation requests sent upstream"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generations_started_total: %v", err)
		}

		m.GenerationsSucceeded, err = meter.Int64Counter(
			"itinerary_generations_succeeded_total",
			metric.WithDescription("Total number of itinerary generations that produced a valid route"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generations_succeeded_total: %v", err)
		}

		m.GenerationsFailed, err = meter.Int64Counter(
			"itinerary_generations_failed_total",
			metric.WithDescription("Total number of itinerary generations that failed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generations_failed_total: %v", err)
		}

		m.GenerationDuration, err = meter.Float64Histogram(
			"itinerary_generation_duration_seconds",
			metric.WithDescription("Duration of upstream itinerary generation calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generation_duration_seconds: %v", err)
		}

		m.ActiveAnalyses, err = meter.Int64UpDownCounter(
			"active_analyses_current",
			metric.WithDescription("Number of analysis cycles currently in flight"),
			metric.WithUnit("{analysis}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create active_analyses_current: %v", err)
		}

		m.RenderDuration, err = meter.Float64Histogram(
			"template_render_duration_seconds",
			metric.WithDescription("Duration of template rendering in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create template_render_duration_seconds: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance, initializing it
// against the current global MeterProvider on first use.
func Get() *AppMetrics {
	if appMetrics == nil {
		InitAppMetrics()
	}
	return appMetrics
}
