package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracerRequiresEndpoint(t *testing.T) {
	_, err := InitTracer(context.Background(), TracingConfig{ServiceName: "credit-risk-service"})
	assert.Error(t, err)
}

func TestInitTracerInstallsProvider(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), TracingConfig{
		ServiceName: "credit-risk-service",
		Endpoint:    "127.0.0.1:4317",
		Insecure:    true,
		SampleRatio: 0.5,
	})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "noop")
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = shutdown(ctx)
}
