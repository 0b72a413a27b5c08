// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the MCP codec.
package observability

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys set by the codec
const (
	AttrDirection    = attribute.Key("mcp.direction")
	AttrKind         = attribute.Key("mcp.kind")
	AttrMethod       = attribute.Key("mcp.method")
	AttrRequestID    = attribute.Key("mcp.request_id")
	AttrMessageBytes = attribute.Key("mcp.message.bytes")
	AttrBatchSize    = attribute.Key("mcp.batch.size")
	AttrErrorReason  = attribute.Key("mcp.error.reason")
)

// TracerName is the instrumentation name used for codec spans
const TracerName = "github.com/ajitpratap0/mcp-protocol-go"

// TracingConfig configures OpenTelemetry tracing
type TracingConfig struct {
	// Service identification
	ServiceName    string
	ServiceVersion string
	Environment    string

	// Exporter configuration
	ExporterType ExporterType
	Endpoint     string // OTLP endpoint
	Headers      map[string]string
	Insecure     bool // Use insecure connection (for development)

	// Sampling configuration
	SampleRate   float64  // 0.0 to 1.0
	AlwaysSample []string // Method names to always sample
	NeverSample  []string // Method names to never sample

	// SpanProcessors are registered in addition to the exporter's batcher
	SpanProcessors []sdktrace.SpanProcessor

	// DisableGlobal leaves the global tracer provider untouched
	DisableGlobal bool

	// Additional attributes
	ResourceAttributes map[string]string
}

// ExporterType defines the type of trace exporter
type ExporterType string

const (
	// ExporterTypeOTLPGRPC exports traces via OTLP over gRPC
	ExporterTypeOTLPGRPC ExporterType = "otlp-grpc"

	// ExporterTypeOTLPHTTP exports traces via OTLP over HTTP
	ExporterTypeOTLPHTTP ExporterType = "otlp-http"

	// ExporterTypeNoop disables trace export (for testing)
	ExporterTypeNoop ExporterType = "noop"
)

// TracingProvider manages OpenTelemetry tracing
type TracingProvider struct {
	config         TracingConfig
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	mu             sync.Mutex
	shutdown       func(context.Context) error
}

// NewTracingProvider creates a new tracing provider
func NewTracingProvider(config TracingConfig) (*TracingProvider, error) {
	if config.ServiceName == "" {
		config.ServiceName = "mcp-service"
	}
	if config.ServiceVersion == "" {
		config.ServiceVersion = "unknown"
	}
	if config.Environment == "" {
		config.Environment = "development"
	}
	if config.SampleRate == 0 {
		config.SampleRate = 1.0
	}
	if config.ExporterType == "" {
		config.ExporterType = ExporterTypeNoop
	}

	res := createResource(config)

	exporter, err := createExporter(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(createSampler(config)),
	}
	for _, sp := range config.SpanProcessors {
		opts = append(opts, sdktrace.WithSpanProcessor(sp))
	}
	tp := sdktrace.NewTracerProvider(opts...)

	if !config.DisableGlobal {
		otel.SetTracerProvider(tp)
	}

	return &TracingProvider{
		config:         config,
		tracerProvider: tp,
		tracer:         tp.Tracer(TracerName),
		shutdown:       tp.Shutdown,
	}, nil
}

func createResource(config TracingConfig) *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(config.ServiceName),
		semconv.ServiceVersion(config.ServiceVersion),
		semconv.DeploymentEnvironment(config.Environment),
	}
	for k, v := range config.ResourceAttributes {
		attrs = append(attrs, attribute.String(k, v))
	}

	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

func createExporter(config TracingConfig) (sdktrace.SpanExporter, error) {
	switch config.ExporterType {
	case ExporterTypeOTLPGRPC:
		opts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(config.Endpoint),
			otlptracegrpc.WithHeaders(config.Headers),
		}
		if config.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		return otlptrace.New(context.Background(), otlptracegrpc.NewClient(opts...))
	case ExporterTypeOTLPHTTP:
		opts := []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(config.Endpoint),
			otlptracehttp.WithHeaders(config.Headers),
		}
		if config.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptrace.New(context.Background(), otlptracehttp.NewClient(opts...))
	case ExporterTypeNoop:
		return noopExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", config.ExporterType)
	}
}

func createSampler(config TracingConfig) sdktrace.Sampler {
	if len(config.AlwaysSample) > 0 || len(config.NeverSample) > 0 {
		return &methodSampler{
			defaultRate:  config.SampleRate,
			alwaysSample: makeStringSet(config.AlwaysSample),
			neverSample:  makeStringSet(config.NeverSample),
		}
	}

	if config.SampleRate >= 1.0 {
		return sdktrace.AlwaysSample()
	} else if config.SampleRate <= 0.0 {
		return sdktrace.NeverSample()
	}
	return sdktrace.TraceIDRatioBased(config.SampleRate)
}

// Tracer returns the tracer used for codec spans
func (tp *TracingProvider) Tracer() trace.Tracer {
	return tp.tracer
}

// StartCodecSpan starts a span for one codec operation ("decode", "encode",
// "decode_batch")
func (tp *TracingProvider) StartCodecSpan(ctx context.Context, operation string, direction Direction) (context.Context, trace.Span) {
	return StartCodecSpan(ctx, tp.tracer, operation, direction)
}

// Shutdown flushes pending spans and stops the exporter
func (tp *TracingProvider) Shutdown(ctx context.Context) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if tp.shutdown == nil {
		return nil
	}
	err := tp.shutdown(ctx)
	tp.shutdown = nil
	return err
}

// StartCodecSpan starts a codec span on tracer. The span name is
// "mcp.codec.<operation>".
func StartCodecSpan(ctx context.Context, tracer trace.Tracer, operation string, direction Direction) (context.Context, trace.Span) {
	return tracer.Start(ctx, "mcp.codec."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(AttrDirection.String(string(direction))),
	)
}

// RecordSpanError marks span as failed with err and its reason
func RecordSpanError(span trace.Span, err error) {
	if err == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetAttributes(AttrErrorReason.String(ErrorReason(err)))
	span.SetStatus(codes.Error, err.Error())
}

// methodSampler samples based on the mcp.method attribute or span name
type methodSampler struct {
	defaultRate  float64
	alwaysSample map[string]struct{}
	neverSample  map[string]struct{}
}

func (ms *methodSampler) ShouldSample(params sdktrace.SamplingParameters) sdktrace.SamplingResult {
	method := params.Name
	for _, attr := range params.Attributes {
		if attr.Key == AttrMethod {
			method = attr.Value.AsString()
			break
		}
	}

	if _, ok := ms.alwaysSample[method]; ok {
		return sdktrace.SamplingResult{Decision: sdktrace.RecordAndSample}
	}
	if _, ok := ms.neverSample[method]; ok {
		return sdktrace.SamplingResult{Decision: sdktrace.Drop}
	}

	if ms.defaultRate >= 1.0 {
		return sdktrace.SamplingResult{Decision: sdktrace.RecordAndSample}
	} else if ms.defaultRate <= 0.0 {
		return sdktrace.SamplingResult{Decision: sdktrace.Drop}
	}
	return sdktrace.TraceIDRatioBased(ms.defaultRate).ShouldSample(params)
}

func (ms *methodSampler) Description() string {
	return fmt.Sprintf("MethodSampler{defaultRate=%.2f}", ms.defaultRate)
}

type noopExporter struct{}

func (noopExporter) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }
func (noopExporter) Shutdown(context.Context) error                          { return nil }

func makeStringSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
