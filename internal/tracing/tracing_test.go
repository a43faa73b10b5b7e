package tracing

import (
	"bytes"
	"context"
	"testing"

	"kore-landing-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit_DisabledIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), &config.Config{OtelEnabled: false})

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_NilConfigIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), nil)

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_StdoutExporterWhenNoEndpoint(t *testing.T) {
	buf := &bytes.Buffer{}
	prevWriter, prevProvider := stdoutWriter, otel.GetTracerProvider()
	stdoutWriter = buf
	t.Cleanup(func() {
		stdoutWriter = prevWriter
		otel.SetTracerProvider(prevProvider)
	})

	shutdown, err := Init(context.Background(), &config.Config{
		Environment:     "test",
		OtelEnabled:     true,
		OtelServiceName: "kore-test",
		OtelSampleRatio: 1,
	})
	require.NoError(t, err)

	_, span := otel.Tracer("tracing_test").Start(context.Background(), "lead.create")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "lead.create")
	assert.Contains(t, buf.String(), "kore-test")
}
