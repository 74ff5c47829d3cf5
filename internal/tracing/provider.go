// Package tracing sets up the OpenTelemetry tracer provider that backs the
// otelhttp instrumentation on the page routes.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
)

var (
	errNoURL     = errors.New("trace URL is empty")
	errNoSvcName = errors.New("service name is empty")
	errRatio     = errors.New("trace ratio must be between 0 and 1")
)

// NewProvider builds an SDK tracer provider exporting over OTLP/HTTP to
// endpoint, samples ratio of new traces and installs it as the global
// provider along with the W3C trace context propagator.
func NewProvider(ctx context.Context, svcName string, endpoint url.URL, ratio float64) (*sdktrace.TracerProvider, error) {
	if endpoint.Host == "" {
		return nil, errNoURL
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint.Host)}
	if endpoint.Path != "" {
		opts = append(opts, otlptracehttp.WithURLPath(endpoint.Path))
	}
	if endpoint.Scheme == "http" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("tracing: otlp exporter: %w", err)
	}

	tp, err := New(svcName, ratio, sdktrace.WithBatcher(exporter))
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp, nil
}

// New builds a tracer provider for svcName without installing it. extra
// options carry the span processors.
func New(svcName string, ratio float64, extra ...sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	if svcName == "" {
		return nil, errNoSvcName
	}
	if ratio < 0 || ratio > 1 {
		return nil, errRatio
	}

	attributes := []attribute.KeyValue{semconv.ServiceNameKey.String(svcName)}
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithResource(resource.NewWithAttributes(semconv.SchemaURL, attributes...)),
	}
	return sdktrace.NewTracerProvider(append(opts, extra...)...), nil
}
