package session

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	loggerpkg "github.com/minhyannv/prompt-cli/pkg/logger"
)

// Option configures optional runtime dependencies for a Session.
type Option func(*sessionDeps)

type sessionDeps struct {
	logger    loggerpkg.Logger
	indicator Indicator
	completer Completer
	tracer    trace.Tracer
	meter     metric.Meter
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *sessionDeps) {
		d.logger = l
	}
}

// WithIndicator sets the display shown while a request is in flight.
func WithIndicator(i Indicator) Option {
	return func(d *sessionDeps) {
		d.indicator = i
	}
}

// WithCompleter replaces the HTTP completion client.
func WithCompleter(c Completer) Option {
	return func(d *sessionDeps) {
		d.completer = c
	}
}

// WithTracer overrides the global OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(d *sessionDeps) {
		d.tracer = t
	}
}

// WithMeter overrides the global OpenTelemetry meter.
func WithMeter(m metric.Meter) Option {
	return func(d *sessionDeps) {
		d.meter = m
	}
}
