package benchmarks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/ajitpratap0/mcp-protocol-go/pkg/codec"
	"github.com/ajitpratap0/mcp-protocol-go/pkg/logging"
	"github.com/ajitpratap0/mcp-protocol-go/pkg/observability"
	"github.com/ajitpratap0/mcp-protocol-go/pkg/protocol"
)

var callToolRequest = []byte(`{"jsonrpc":"2.0","id":123,"method":"tools/call","params":{"name":"search","arguments":{"query":"golang","limit":10}}}`)

func newBenchCodec(b *testing.B, config codec.Config, withMetrics bool) *codec.Codec {
	b.Helper()
	options := []codec.Option{codec.WithLogger(logging.New(io.Discard, logging.NewTextFormatter()))}
	if withMetrics {
		metrics, err := observability.NewCodecMetrics(observability.MetricsConfig{})
		if err != nil {
			b.Fatal(err)
		}
		options = append(options, codec.WithRecorder(metrics))
	}

	c, err := codec.New(config, options...)
	if err != nil {
		b.Fatal(err)
	}
	return c
}

func batchOf(n int) []byte {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"tools/call","params":{"name":"search","arguments":{"query":"q%d"}}}`, i, i)
	}
	return []byte("[" + strings.Join(parts, ",") + "]")
}

// BenchmarkCodec benchmarks the byte boundary operations
func BenchmarkCodec(b *testing.B) {
	b.Run("Decode", func(b *testing.B) {
		benchmarkDecode(b, false)
	})

	b.Run("Decode/WithMetrics", func(b *testing.B) {
		benchmarkDecode(b, true)
	})

	b.Run("Encode", func(b *testing.B) {
		benchmarkEncode(b)
	})

	for _, size := range []int{10, 100} {
		for _, concurrency := range []int{1, 8} {
			b.Run(fmt.Sprintf("DecodeBatch/%d/concurrency=%d", size, concurrency), func(b *testing.B) {
				benchmarkDecodeBatch(b, size, concurrency)
			})
		}
	}
}

func benchmarkDecode(b *testing.B, withMetrics bool) {
	ctx := context.Background()
	c := newBenchCodec(b, codec.DefaultConfig(), withMetrics)

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(callToolRequest)))

	for i := 0; i < b.N; i++ {
		if _, err := c.Decode(ctx, callToolRequest); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkEncode(b *testing.B) {
	ctx := context.Background()
	c := newBenchCodec(b, codec.DefaultConfig(), false)

	result := protocol.NewToolResult(
		protocol.NewTextContent("42 results"),
		protocol.NewImageContentFromBytes([]byte("not really a png"), "image/png"),
	)
	resp, err := protocol.NewResponse(protocol.IntID(123), result)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := c.Encode(ctx, resp); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkDecodeBatch(b *testing.B, size, concurrency int) {
	ctx := context.Background()
	config := codec.DefaultConfig()
	config.BatchConcurrency = concurrency
	config.MaxBatchSize = size
	c := newBenchCodec(b, config, false)
	data := batchOf(size)

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		if _, err := c.DecodeBatch(ctx, data); err != nil {
			b.Fatal(err)
		}
	}
}
