package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"teamboard/internal/config"
)

func TestNormalizeOTLPEndpoint(t *testing.T) {
	tests := map[string]string{
		"collector:4317":           "collector:4317",
		"http://collector:4317":    "collector:4317",
		"https://otel.example:443": "otel.example:443",
		" collector:4317 ":         "collector:4317",
	}
	for in, want := range tests {
		got, err := normalizeOTLPEndpoint(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got)
	}

	_, err := normalizeOTLPEndpoint("http://")
	require.Error(t, err)
}

func TestInitWithoutEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), &config.Config{OTELServiceName: "teamboard"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	require.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
}
