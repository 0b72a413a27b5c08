package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/ajitpratap0/mcp-protocol-go/pkg/protocol"
)

func newRecordingProvider(t *testing.T, config TracingConfig) (*TracingProvider, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	config.SpanProcessors = append(config.SpanProcessors, recorder)
	config.DisableGlobal = true

	tp, err := NewTracingProvider(config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, recorder
}

func attrValue(span sdktrace.ReadOnlySpan, key string) (string, bool) {
	for _, attr := range span.Attributes() {
		if string(attr.Key) == key {
			return attr.Value.Emit(), true
		}
	}
	return "", false
}

func TestTracingProvider_CodecSpan(t *testing.T) {
	tp, recorder := newRecordingProvider(t, TracingConfig{ServiceName: "codec-test"})

	_, span := tp.StartCodecSpan(context.Background(), "decode", DirectionInbound)
	span.SetAttributes(AttrMethod.String(protocol.MethodCallTool))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "mcp.codec.decode", spans[0].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())

	direction, ok := attrValue(spans[0], "mcp.direction")
	require.True(t, ok)
	assert.Equal(t, "inbound", direction)

	method, ok := attrValue(spans[0], "mcp.method")
	require.True(t, ok)
	assert.Equal(t, "tools/call", method)
}

func TestRecordSpanError(t *testing.T) {
	tp, recorder := newRecordingProvider(t, TracingConfig{})

	_, span := tp.StartCodecSpan(context.Background(), "decode", DirectionInbound)
	_, err := protocol.ParseMessage([]byte(`{"jsonrpc":"2.0"}`))
	require.Error(t, err)
	RecordSpanError(span, err)
	RecordSpanError(span, nil)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	reason, ok := attrValue(spans[0], "mcp.error.reason")
	require.True(t, ok)
	assert.Equal(t, "missing_field", reason)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestTracingProvider_MethodSampler(t *testing.T) {
	tp, recorder := newRecordingProvider(t, TracingConfig{
		SampleRate:  1.0,
		NeverSample: []string{"mcp.codec.encode"},
	})

	_, span := tp.StartCodecSpan(context.Background(), "encode", DirectionOutbound)
	assert.False(t, span.IsRecording())
	span.End()

	_, span = tp.StartCodecSpan(context.Background(), "decode", DirectionInbound)
	assert.True(t, span.IsRecording())
	span.End()

	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, "mcp.codec.decode", recorder.Ended()[0].Name())
}

func TestTracingProvider_Config(t *testing.T) {
	_, err := NewTracingProvider(TracingConfig{ExporterType: "jaeger", DisableGlobal: true})
	assert.Error(t, err)

	tp, err := NewTracingProvider(TracingConfig{DisableGlobal: true})
	require.NoError(t, err)
	assert.Equal(t, ExporterTypeNoop, tp.config.ExporterType)
	assert.Equal(t, "mcp-service", tp.config.ServiceName)
	assert.NotNil(t, tp.Tracer())

	require.NoError(t, tp.Shutdown(context.Background()))
	// Shutting down twice is harmless
	require.NoError(t, tp.Shutdown(context.Background()))
}

func TestCreateSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), createSampler(TracingConfig{SampleRate: 1}).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), createSampler(TracingConfig{SampleRate: -1}).Description())
	assert.Contains(t, createSampler(TracingConfig{SampleRate: 0.5}).Description(), "TraceIDRatioBased")
	assert.Contains(t, createSampler(TracingConfig{SampleRate: 0.5, AlwaysSample: []string{"x"}}).Description(), "MethodSampler")
}

func TestErrorReason(t *testing.T) {
	_, malformed := protocol.ParseMessage([]byte(`{`))
	_, badID := protocol.ParseMessage([]byte(`{"jsonrpc":"2.0","id":true,"method":"ping"}`))

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"malformed", malformed, "malformed"},
		{"bad id", badID, "invalid_request_id"},
		{"exclusivity", protocol.ErrResponseExclusivity, "response_exclusivity"},
		{"cancelled", context.Canceled, "cancelled"},
		{"timeout", context.DeadlineExceeded, "timeout"},
		{"rpc error", protocol.NewMethodNotFound("x"), "method_not_found"},
		{"server range", protocol.NewError(protocol.ErrorCode(-32050), "x"), "server_error"},
		{"other", errors.New("boom"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorReason(tt.err))
		})
	}
}
