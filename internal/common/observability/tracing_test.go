package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTraced(t *testing.T) (*Observability, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return newWithProviders(metric.NewMeterProvider(), tp, "test"), recorder
}

func TestStartSpan(t *testing.T) {
	o, recorder := newTraced(t)

	ctx, span := o.StartSpan(context.Background(), "chat.reply", attribute.String("chat.channel", "http"))
	assert.True(t, span.SpanContext().IsValid())

	_, child := o.StartSpan(ctx, "intent.classify")
	EndSpan(child, nil)
	EndSpan(span, nil)

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "intent.classify", ended[0].Name())
	assert.Equal(t, span.SpanContext().SpanID(), ended[0].Parent().SpanID())
	assert.Equal(t, "chat.reply", ended[1].Name())
	assert.Contains(t, ended[1].Attributes(), attribute.String("chat.channel", "http"))
}

func TestEndSpan_RecordsError(t *testing.T) {
	o, recorder := newTraced(t)

	_, span := o.StartSpan(context.Background(), "respond-chat-message")
	EndSpan(span, errors.New("EMPTY_MESSAGE"))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "EMPTY_MESSAGE", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}
