package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	loggerpkg "github.com/minhyannv/prompt-cli/pkg/logger"
)

const (
	ServiceName    = "prompt-cli"
	ServiceVersion = "1.0.0"

	TraceFile  = "prompt-cli_traces.log"
	MetricFile = "prompt-cli_metrics.log"
)

// Options tunes where and how often telemetry is exported.
type Options struct {
	Dir            string
	MetricInterval time.Duration
}

// Init installs global tracer and meter providers that write pretty-printed
// JSON to rotated files under opts.Dir. The returned shutdown flushes both.
func Init(ctx context.Context, opts Options) (trace.Tracer, metric.Meter, func(context.Context) error, error) {
	if opts.Dir == "" {
		return nil, nil, nil, errors.New("telemetry directory is required")
	}
	if opts.MetricInterval <= 0 {
		opts.MetricInterval = 10 * time.Second
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create resource: %w", err)
	}

	traceFile, err := loggerpkg.NewRotatingWriter(filepath.Join(opts.Dir, TraceFile))
	if err != nil {
		return nil, nil, nil, err
	}
	traceExporter, err := stdouttrace.New(
		stdouttrace.WithWriter(traceFile),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		_ = traceFile.Close()
		return nil, nil, nil, fmt.Errorf("create trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)

	metricsFile, err := loggerpkg.NewRotatingWriter(filepath.Join(opts.Dir, MetricFile))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = traceFile.Close()
		return nil, nil, nil, err
	}
	metricExporter, err := stdoutmetric.New(
		stdoutmetric.WithWriter(metricsFile),
		stdoutmetric.WithPrettyPrint(),
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = traceFile.Close()
		_ = metricsFile.Close()
		return nil, nil, nil, fmt.Errorf("create metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(metricExporter,
				sdkmetric.WithInterval(opts.MetricInterval)),
		),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	shutdown := func(ctx context.Context) error {
		return errors.Join(
			tp.Shutdown(ctx),
			mp.Shutdown(ctx),
			closeAll(traceFile, metricsFile),
		)
	}
	return tp.Tracer(ServiceName), mp.Meter(ServiceName), shutdown, nil
}

func closeAll(closers ...io.Closer) error {
	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
