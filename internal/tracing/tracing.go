package tracing

import (
	"context"
	"flag"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

type TracingFactory struct {
	Enabled  bool
	Endpoint string
}

func NewFactory() *TracingFactory {
	return &TracingFactory{}
}

func (f *TracingFactory) AddFlags(fs *flag.FlagSet) {
	fs.BoolVar(&f.Enabled, "tracing-enabled", false, "enable OpenTelemetry tracing")
	fs.StringVar(&f.Endpoint, "tracing-endpoint", "localhost:4317", "the OTLP gRPC collector endpoint")
}

func (f *TracingFactory) InitializeTracer(ctx context.Context) (trace.Tracer, error) {
	var tracer trace.Tracer
	if f.Enabled {
		if err := f.setupOtel(ctx); err != nil {
			return nil, err
		}
		tracer = otel.Tracer("github.com/cloudgov/console")
	} else {
		tracer = trace.NewNoopTracerProvider().Tracer("")
	}
	return tracer, nil
}

// setupOtel sets up opentelemetry tracing
func (f *TracingFactory) setupOtel(ctx context.Context) error {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String("cloudgov-console"),
		),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create resource")
	}

	// Set up a trace exporter
	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithDialOption(grpc.FailOnNonTempDialError(true)),
		otlptracegrpc.WithEndpoint(f.Endpoint),
		otlptracegrpc.WithDialOption(grpc.WithReturnConnectionError()),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create trace exporter")
	}

	// Register the trace exporter with a TracerProvider, using a batch
	// span processor to aggregate spans before export.
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp),
	)
	otel.SetTracerProvider(tracerProvider)

	// set global propagator to tracecontext (the default is no-op).
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return nil
}
