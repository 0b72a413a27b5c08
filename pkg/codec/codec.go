// Package codec moves MCP messages across the byte boundary. It decodes raw
// JSON-RPC messages and batches into typed protocol values, encodes them
// back with their construction rules re-checked, and turns undecodable
// input into JSON-RPC error responses.
//
// Every operation is logged, counted and traced:
//
//	metrics, _ := observability.NewCodecMetrics(observability.MetricsConfig{})
//	c, err := codec.New(codec.DefaultConfig(),
//	    codec.WithRecorder(metrics),
//	    codec.WithLogger(logger),
//	)
//
//	msg, err := c.Decode(ctx, line)
//	if err != nil {
//	    resp := c.ErrorResponse(err, codec.RecoverID(line))
//	    out, _ := c.Encode(ctx, resp)
//	    ...
//	}
package codec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	mcperrors "github.com/ajitpratap0/mcp-protocol-go/pkg/errors"
	"github.com/ajitpratap0/mcp-protocol-go/pkg/logging"
	"github.com/ajitpratap0/mcp-protocol-go/pkg/observability"
	"github.com/ajitpratap0/mcp-protocol-go/pkg/protocol"
)

// Codec decodes and encodes MCP messages. It is safe for concurrent use.
type Codec struct {
	config   Config
	logger   logging.Logger
	recorder observability.CodecRecorder
	tracer   trace.Tracer
}

// Option configures a Codec
type Option func(*Codec)

// WithLogger sets the logger
func WithLogger(logger logging.Logger) Option {
	return func(c *Codec) {
		c.logger = logger
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(recorder observability.CodecRecorder) Option {
	return func(c *Codec) {
		c.recorder = recorder
	}
}

// WithTracer sets the tracer used for codec spans
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Codec) {
		c.tracer = tracer
	}
}

// New creates a codec. Without options it logs through the global logger
// and records neither metrics nor spans.
func New(config Config, options ...Option) (*Codec, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Codec{config: config}
	for _, option := range options {
		option(c)
	}

	if c.logger == nil {
		c.logger = logging.GetGlobalLogger()
	}
	c.logger = c.logger.WithFields(logging.String("component", "codec"))
	if c.recorder == nil {
		c.recorder = observability.NoopRecorder{}
	}
	if c.tracer == nil {
		c.tracer = noop.NewTracerProvider().Tracer(observability.TracerName)
	}

	return c, nil
}

// Config returns the codec configuration
func (c *Codec) Config() Config {
	return c.config
}

// Decode decodes a single JSON-RPC message. Decode failures wrap a
// *protocol.DecodeError; oversized input fails with an MCPError carrying
// the message-too-large code.
func (c *Codec) Decode(ctx context.Context, data []byte) (protocol.Message, error) {
	ctx, span := observability.StartCodecSpan(ctx, c.tracer, "decode", observability.DirectionInbound)
	defer span.End()

	msg, err := c.decode(ctx, data, span)
	if err != nil {
		observability.RecordSpanError(span, err)
		return nil, err
	}
	return msg, nil
}

func (c *Codec) decode(ctx context.Context, data []byte, span trace.Span) (protocol.Message, error) {
	start := time.Now()
	span.SetAttributes(observability.AttrMessageBytes.Int(len(data)))

	if err := c.checkSize(len(data)); err != nil {
		c.decodeFailed(ctx, data, err)
		return nil, err
	}

	msg, err := protocol.ParseMessage(data)
	if err != nil {
		err = fmt.Errorf("failed to decode message: %w", err)
		c.decodeFailed(ctx, data, err)
		return nil, err
	}

	method, id := describe(msg)
	span.SetAttributes(observability.AttrKind.String(msg.Kind().String()))
	if method != "" {
		span.SetAttributes(observability.AttrMethod.String(method))
	}
	if id != nil {
		span.SetAttributes(observability.AttrRequestID.String(id.String()))
	}

	c.recorder.RecordMessage(observability.DirectionInbound, msg.Kind().String(), len(data), time.Since(start))
	c.logMessage(ctx, "Decoded message", msg, data)
	return msg, nil
}

func (c *Codec) decodeFailed(ctx context.Context, data []byte, err error) {
	c.recorder.RecordError(observability.DirectionInbound, observability.ErrorReason(err))

	fields := []logging.Field{logging.Int("bytes", len(data))}
	if c.config.LogPayloads {
		fields = append(fields, logging.String("payload", string(data)))
	}
	c.logger.WithContext(ctx).WithError(err).Warn("Failed to decode message", fields...)
}

// Element is one decoded batch element. Exactly one of Message and Err is
// set.
type Element struct {
	Index   int
	Raw     json.RawMessage
	Message protocol.Message
	Err     error
}

// DecodeBatch decodes a JSON-RPC batch, or a single message as a batch of
// one, decoding elements concurrently. Elements keep their batch order.
//
// A batch that cannot be split, is too large or whose context is cancelled
// returns a nil slice and the error. Otherwise every element is returned,
// and if any failed the error combines their failures.
func (c *Codec) DecodeBatch(ctx context.Context, data []byte) ([]Element, error) {
	ctx, span := observability.StartCodecSpan(ctx, c.tracer, "decode_batch", observability.DirectionInbound)
	defer span.End()

	elements, err := c.decodeBatch(ctx, data, span)
	if err != nil {
		observability.RecordSpanError(span, err)
	}
	return elements, err
}

func (c *Codec) decodeBatch(ctx context.Context, data []byte, span trace.Span) ([]Element, error) {
	span.SetAttributes(observability.AttrMessageBytes.Int(len(data)))

	if err := c.checkSize(len(data)); err != nil {
		c.decodeFailed(ctx, data, err)
		return nil, err
	}

	items, err := protocol.SplitBatch(data)
	if err != nil {
		err = fmt.Errorf("failed to decode batch: %w", err)
		c.decodeFailed(ctx, data, err)
		return nil, err
	}
	span.SetAttributes(observability.AttrBatchSize.Int(len(items)))

	if c.config.MaxBatchSize > 0 && len(items) > c.config.MaxBatchSize {
		err := mcperrors.BatchTooLarge(len(items), c.config.MaxBatchSize)
		c.decodeFailed(ctx, data, err)
		return nil, err
	}
	c.recorder.RecordBatch(len(items))

	elements, err := c.decodeElements(ctx, items)
	if err != nil {
		return nil, err
	}

	var failures []error
	for _, el := range elements {
		if el.Err != nil {
			failures = append(failures, el.Err)
		}
	}
	if len(failures) > 0 {
		return elements, mcperrors.CombineErrors(failures)
	}
	return elements, nil
}

// EncodeBatch encodes messages as a JSON-RPC batch array
func (c *Codec) EncodeBatch(ctx context.Context, msgs []protocol.Message) ([]byte, error) {
	if len(msgs) == 0 {
		return nil, fmt.Errorf("cannot encode empty batch")
	}
	if c.config.MaxBatchSize > 0 && len(msgs) > c.config.MaxBatchSize {
		err := mcperrors.BatchTooLarge(len(msgs), c.config.MaxBatchSize)
		c.recorder.RecordError(observability.DirectionOutbound, observability.ErrorReason(err))
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, msg := range msgs {
		data, err := c.Encode(ctx, msg)
		if err != nil {
			return nil, fmt.Errorf("batch element %d: %w", i, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(data)
	}
	buf.WriteByte(']')

	if err := c.checkSize(buf.Len()); err != nil {
		c.recorder.RecordError(observability.DirectionOutbound, observability.ErrorReason(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode encodes a single message. Responses are validated first so a
// response carrying both or neither of result and error is never written.
func (c *Codec) Encode(ctx context.Context, msg protocol.Message) ([]byte, error) {
	ctx, span := observability.StartCodecSpan(ctx, c.tracer, "encode", observability.DirectionOutbound)
	defer span.End()

	data, err := c.encode(ctx, msg, span)
	if err != nil {
		observability.RecordSpanError(span, err)
		c.recorder.RecordError(observability.DirectionOutbound, observability.ErrorReason(err))
		c.logger.WithContext(ctx).WithError(err).Warn("Failed to encode message")
		return nil, err
	}
	return data, nil
}

func (c *Codec) encode(ctx context.Context, msg protocol.Message, span trace.Span) ([]byte, error) {
	start := time.Now()
	if msg == nil {
		return nil, fmt.Errorf("cannot encode nil message")
	}

	if resp, ok := msg.(*protocol.Response); ok {
		if err := resp.Validate(); err != nil {
			return nil, fmt.Errorf("failed to encode response: %w", err)
		}
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", msg.Kind(), err)
	}
	if err := c.checkSize(len(data)); err != nil {
		return nil, err
	}

	method, id := describe(msg)
	span.SetAttributes(
		observability.AttrKind.String(msg.Kind().String()),
		observability.AttrMessageBytes.Int(len(data)),
	)
	if method != "" {
		span.SetAttributes(observability.AttrMethod.String(method))
	}
	if id != nil {
		span.SetAttributes(observability.AttrRequestID.String(id.String()))
	}

	c.recorder.RecordMessage(observability.DirectionOutbound, msg.Kind().String(), len(data), time.Since(start))
	c.logMessage(ctx, "Encoded message", msg, data)
	return data, nil
}

// ErrorResponse converts err into an error response for id. Decode
// failures map to ParseError, InvalidRequest or InvalidParams.
func (c *Codec) ErrorResponse(err error, id protocol.RequestID) *protocol.Response {
	if err == nil {
		err = mcperrors.NewError(mcperrors.CodeInternalError, "Internal error", mcperrors.CategoryInternal, mcperrors.SeverityError)
	}
	return protocol.NewErrorResponse(id, mcperrors.ToJSONRPCError(err))
}

// BatchErrorResponses returns an error response for every failed element,
// in batch order. Each response carries the element's id when it can be
// recovered and null otherwise.
func (c *Codec) BatchErrorResponses(elements []Element) []*protocol.Response {
	var responses []*protocol.Response
	for _, el := range elements {
		if el.Err == nil {
			continue
		}
		responses = append(responses, c.ErrorResponse(el.Err, RecoverID(el.Raw)))
	}
	return responses
}

// RecoverID extracts a valid id from raw message bytes that may otherwise
// fail to decode. It returns the null id when none can be found.
func RecoverID(data []byte) protocol.RequestID {
	var probe struct {
		ID *json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil || probe.ID == nil {
		return protocol.NullID()
	}
	var id protocol.RequestID
	if err := json.Unmarshal(*probe.ID, &id); err != nil {
		return protocol.NullID()
	}
	return id
}

func (c *Codec) checkSize(size int) error {
	if c.config.MaxMessageBytes > 0 && int64(size) > c.config.MaxMessageBytes {
		return mcperrors.MessageTooLarge(int64(size), c.config.MaxMessageBytes)
	}
	return nil
}

func (c *Codec) logMessage(ctx context.Context, msg string, m protocol.Message, data []byte) {
	fields := []logging.Field{
		logging.Kind(m.Kind()),
		logging.Int("bytes", len(data)),
	}
	method, id := describe(m)
	if method != "" {
		fields = append(fields, logging.Method(method))
	}
	if id != nil {
		fields = append(fields, logging.ID(*id))
	}
	if c.config.LogPayloads {
		fields = append(fields, logging.String("payload", string(data)))
	}
	c.logger.WithContext(ctx).Debug(msg, fields...)
}

// describe returns the method and id of a message when it has them
func describe(msg protocol.Message) (string, *protocol.RequestID) {
	switch m := msg.(type) {
	case *protocol.Request:
		return m.Method, &m.ID
	case *protocol.Notification:
		return m.Method, nil
	case *protocol.Response:
		return "", &m.ID
	}
	return "", nil
}
