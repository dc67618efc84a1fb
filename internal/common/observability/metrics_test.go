package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func collect(t *testing.T, reader *metric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestRecordReply(t *testing.T) {
	reader := metric.NewManualReader()
	o := newWithProviders(metric.NewMeterProvider(metric.WithReader(reader)), sdktrace.NewTracerProvider(), "test")

	o.RecordReply(context.Background(), "greeting", "http", 3*time.Millisecond)
	o.RecordReply(context.Background(), "greeting", "http", time.Millisecond)

	got := collect(t, reader)

	require.Contains(t, got, "chat.replies")
	sum, ok := got["chat.replies"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)

	require.Contains(t, got, "chat.reply.duration")
	hist, ok := got["chat.reply.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
}

func TestRecordJob(t *testing.T) {
	reader := metric.NewManualReader()
	o := newWithProviders(metric.NewMeterProvider(metric.WithReader(reader)), sdktrace.NewTracerProvider(), "test")

	o.RecordJobProcessed(context.Background(), "completed")
	o.RecordJobDuration(context.Background(), 5*time.Millisecond, "completed")

	got := collect(t, reader)
	assert.Contains(t, got, "jobs.processed")
	assert.Contains(t, got, "jobs.duration")
}

func TestZeroValueIsSafe(t *testing.T) {
	o := &Observability{}

	assert.NotPanics(t, func() {
		o.RecordReply(context.Background(), "default", "http", time.Millisecond)
		o.RecordJobProcessed(context.Background(), "failed")
		o.RecordJobDuration(context.Background(), time.Millisecond, "failed")
		_, span := o.StartSpan(context.Background(), "chat.reply")
		EndSpan(span, nil)
		o.Shutdown()
	})
}
