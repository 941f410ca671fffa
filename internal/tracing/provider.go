// Package tracing sets up OpenTelemetry for the shell. Each shell command runs
// in its own span; the core file system is not instrumented.
package tracing

import (
	"context"
	"net/url"

	"virtual-file-system/internal/logging"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const TracerName = "virtual-file-system"

// Shutdown flushes and stops the tracer provider.
type Shutdown func(context.Context) error

func NopShutdown(_ context.Context) error {
	return nil
}

// NewTracerProvider installs a global OTLP/HTTP tracer provider. When tracing
// is disabled the global no-op provider stays in place.
func NewTracerProvider(cfg Config, logger logging.Logger) (Shutdown, error) {
	if !cfg.Enabled {
		logger.Debug("tracing disabled")
		return NopShutdown, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, err
	}

	endpoint := cfg.Endpoint
	if u, parseErr := url.Parse(cfg.Endpoint); parseErr == nil && u.Host != "" {
		endpoint = u.Host
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithTimeout(cfg.Timeout),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRate))),
	)
	otel.SetTracerProvider(tp)

	logger.Info("tracing initialized", "endpoint", cfg.Endpoint, "service_name", cfg.ServiceName)

	return tp.Shutdown, nil
}

// Tracer returns the tracer of the globally installed provider.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}
