package tracing

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"kore-landing-backend/internal/config"
	"kore-landing-backend/internal/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
)

// ShutdownFunc flushes and stops the tracer provider
type ShutdownFunc func(context.Context) error

// stdoutWriter receives spans when tracing is on but no OTLP endpoint is set
var stdoutWriter io.Writer = os.Stdout

func noop(context.Context) error { return nil }

// Init installs a global tracer provider when OTEL_ENABLED is set. With
// tracing disabled the otel default no-op provider stays in place and the
// returned shutdown does nothing.
func Init(ctx context.Context, cfg *config.Config) (ShutdownFunc, error) {
	if cfg == nil || !cfg.OtelEnabled {
		return noop, nil
	}

	serviceName := strings.TrimSpace(cfg.OtelServiceName)
	if serviceName == "" {
		serviceName = "kore-landing-backend"
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			attribute.String("deployment.environment", cfg.Environment),
		),
	)
	if err != nil {
		return noop, fmt.Errorf("otel resource: %w", err)
	}

	exporter, err := buildExporter(ctx, strings.TrimSpace(cfg.OtelEndpoint))
	if err != nil {
		return noop, fmt.Errorf("otel exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.OtelSampleRatio))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.New().WithFields(map[string]interface{}{
		"service":  serviceName,
		"endpoint": cfg.OtelEndpoint,
	}).Info("Tracing initialized")

	return tp.Shutdown, nil
}

func buildExporter(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
	if endpoint == "" {
		logger.New().Warn("No OTLP endpoint configured, writing spans to stdout")
		return stdouttrace.New(stdouttrace.WithWriter(stdoutWriter))
	}

	opts := []otlptracehttp.Option{}
	switch {
	case strings.HasPrefix(endpoint, "http://"), strings.HasPrefix(endpoint, "https://"):
		opts = append(opts, otlptracehttp.WithEndpointURL(endpoint))
	default:
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}
