package otelstore

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/amir-ae/commerce-api-lite-sub001/otelstore"

type config struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

func (c config) tracer() trace.Tracer {
	return c.tracerProvider.Tracer(instrumentationName)
}

func (c config) meter() metric.Meter {
	return c.meterProvider.Meter(instrumentationName)
}

func newConfig(options ...Option) config {
	cfg := config{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}

	for _, option := range options {
		cfg = option(cfg)
	}

	return cfg
}

// Option allows to customize the instrumentation configuration.
type Option func(config) config

// WithTracerProvider overrides the global trace.TracerProvider used
// by the instrumentation.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(cfg config) config {
		cfg.tracerProvider = provider
		return cfg
	}
}

// WithMeterProvider overrides the global metric.MeterProvider used
// by the instrumentation.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg config) config {
		cfg.meterProvider = provider
		return cfg
	}
}
