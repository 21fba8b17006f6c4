// Package observe provides observability primitives for utterbank:
// OpenTelemetry metrics, lightweight tracing helpers, and the optional local
// metrics endpoint.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped from the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all utterbank metrics.
const meterName = "github.com/utterbank/utterbank"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms ---

	// MatchDuration tracks best-match query latency.
	MatchDuration metric.Float64Histogram

	// SearchDuration tracks multi-result search latency.
	SearchDuration metric.Float64Histogram

	// IndexBuildDuration tracks corpus index construction latency.
	IndexBuildDuration metric.Float64Histogram

	// HTTPRequestDuration tracks metrics-endpoint request latency. Use with
	// attributes: attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram

	// --- Counters ---

	// Matches counts best-match queries. Use with attribute:
	//   attribute.String("stage", ...)
	Matches metric.Int64Counter

	// Searches counts multi-result searches.
	Searches metric.Int64Counter

	// IndexBuilds counts index constructions. Use with attribute:
	//   attribute.String("status", ...)
	IndexBuilds metric.Int64Counter

	// LookupErrors counts failed id/category lookups. Use with attribute:
	//   attribute.String("op", ...)
	LookupErrors metric.Int64Counter

	// --- Gauges ---

	// CorpusSamples tracks the number of samples in the published index.
	CorpusSamples metric.Int64UpDownCounter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) for
// in-memory corpus operations, which complete in microseconds to
// milliseconds; index builds over large corpora reach into the top buckets.
var latencyBuckets = []float64{
	0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.MatchDuration, err = m.Float64Histogram("utterbank.match.duration",
		metric.WithDescription("Latency of best-match queries."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.SearchDuration, err = m.Float64Histogram("utterbank.search.duration",
		metric.WithDescription("Latency of multi-result searches."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.IndexBuildDuration, err = m.Float64Histogram("utterbank.index.build.duration",
		metric.WithDescription("Latency of corpus index construction."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("utterbank.http.request.duration",
		metric.WithDescription("Metrics-endpoint request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.Matches, err = m.Int64Counter("utterbank.match.total",
		metric.WithDescription("Total best-match queries by winning stage."),
	); err != nil {
		return nil, err
	}
	if met.Searches, err = m.Int64Counter("utterbank.search.total",
		metric.WithDescription("Total multi-result searches."),
	); err != nil {
		return nil, err
	}
	if met.IndexBuilds, err = m.Int64Counter("utterbank.index.builds",
		metric.WithDescription("Total index constructions by status."),
	); err != nil {
		return nil, err
	}
	if met.LookupErrors, err = m.Int64Counter("utterbank.lookup.errors",
		metric.WithDescription("Total failed id or category lookups by operation."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.CorpusSamples, err = m.Int64UpDownCounter("utterbank.corpus.samples",
		metric.WithDescription("Number of samples in the published index."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordMatch records one best-match query: its latency and a counter
// increment tagged with the winning stage.
func (m *Metrics) RecordMatch(ctx context.Context, stage string, seconds float64) {
	m.MatchDuration.Record(ctx, seconds)
	m.Matches.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordSearch records one multi-result search.
func (m *Metrics) RecordSearch(ctx context.Context, seconds float64) {
	m.SearchDuration.Record(ctx, seconds)
	m.Searches.Add(ctx, 1)
}

// RecordIndexBuild records one index construction with its outcome and
// adjusts the published sample gauge by delta (new size minus old size).
func (m *Metrics) RecordIndexBuild(ctx context.Context, status string, seconds float64, delta int64) {
	m.IndexBuildDuration.Record(ctx, seconds)
	m.IndexBuilds.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	if delta != 0 {
		m.CorpusSamples.Add(ctx, delta)
	}
}

// RecordLookupError records one failed id or category lookup.
func (m *Metrics) RecordLookupError(ctx context.Context, op string) {
	m.LookupErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}
