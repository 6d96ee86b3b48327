package rabbitmq

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestHeaderCarrierRoundTripsTraceContext(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	parent := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	}))

	headers := amqp.Table{}
	propagator := propagation.TraceContext{}
	propagator.Inject(parent, amqpHeaderCarrier(headers))
	require.Contains(t, headers, "traceparent")

	extracted := trace.SpanContextFromContext(propagator.Extract(context.Background(), amqpHeaderCarrier(headers)))
	require.Equal(t, traceID, extracted.TraceID())
	require.Equal(t, spanID, extracted.SpanID())
}

func TestHeaderCarrierGet(t *testing.T) {
	c := amqpHeaderCarrier(amqp.Table{"s": "v", "b": []byte("raw"), "n": int32(7)})
	require.Equal(t, "v", c.Get("s"))
	require.Equal(t, "raw", c.Get("b"))
	require.Equal(t, "7", c.Get("n"))
	require.Empty(t, c.Get("missing"))
	require.ElementsMatch(t, []string{"s", "b", "n"}, c.Keys())
}
