// Package observability exposes OpenTelemetry instruments through the
// Prometheus registry served on /metrics.
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	meter          otelmetric.Meter
	replyCounter   otelmetric.Int64Counter
	replyDuration  otelmetric.Float64Histogram
	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
}

// New registers a meter provider backed by the Prometheus exporter and a
// tracer provider for request spans. When the exporter cannot be created the
// returned value records nothing.
func New(serviceName string, log *zap.Logger) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("failed to create prometheus exporter", zap.Error(err))
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	// TODO: register an OTLP span exporter once a collector is deployed next to the chat server.
	tracerProvider := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tracerProvider)

	return newWithProviders(provider, tracerProvider, serviceName)
}

func newWithProviders(provider *metric.MeterProvider, tracerProvider *sdktrace.TracerProvider, serviceName string) *Observability {
	meter := provider.Meter(serviceName)

	replyCounter, _ := meter.Int64Counter(
		"chat.replies",
		otelmetric.WithDescription("Number of chat replies sent"),
	)

	replyDuration, _ := meter.Float64Histogram(
		"chat.reply.duration",
		otelmetric.WithDescription("Time spent producing a chat reply"),
		otelmetric.WithUnit("ms"),
	)

	jobCounter, _ := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)

	jobDuration, _ := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:  provider,
		tracerProvider: tracerProvider,
		tracer:         tracerProvider.Tracer(serviceName),
		meter:          meter,
		replyCounter:   replyCounter,
		replyDuration:  replyDuration,
		jobCounter:     jobCounter,
		jobDuration:    jobDuration,
	}
}

// RecordReply counts one chat reply and its latency.
func (o *Observability) RecordReply(ctx context.Context, intent, channel string, duration time.Duration) {
	attrs := otelmetric.WithAttributes(
		attribute.String("intent", intent),
		attribute.String("channel", channel),
	)
	if o.replyCounter != nil {
		o.replyCounter.Add(ctx, 1, attrs)
	}
	if o.replyDuration != nil {
		o.replyDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	}
}

func (o *Observability) RecordJobProcessed(ctx context.Context, status string) {
	if o.jobCounter != nil {
		o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordJobDuration(ctx context.Context, duration time.Duration, status string) {
	if o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
}
