package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecMetrics_Record(t *testing.T) {
	m, err := NewCodecMetrics(MetricsConfig{ServiceName: "test"})
	require.NoError(t, err)

	m.RecordMessage(DirectionInbound, "request", 120, 2*time.Millisecond)
	m.RecordMessage(DirectionInbound, "request", 80, time.Millisecond)
	m.RecordMessage(DirectionOutbound, "response", 300, time.Millisecond)
	m.RecordError(DirectionInbound, "malformed")
	m.RecordBatch(3)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.messagesTotal.WithLabelValues("inbound", "request")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.messagesTotal.WithLabelValues("outbound", "response")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.errorsTotal.WithLabelValues("inbound", "malformed")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.messageBytes))
	assert.Equal(t, 1, testutil.CollectAndCount(m.batchSize))
}

func TestCodecMetrics_Registry(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewCodecMetrics(MetricsConfig{Registry: registry, Namespace: "app"})
	require.NoError(t, err)
	assert.Same(t, registry, m.Registry())

	m.RecordError(DirectionOutbound, "response_exclusivity")

	count, err := testutil.GatherAndCount(registry, "app_codec_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// A second set of collectors on the same registry collides
	_, err = NewCodecMetrics(MetricsConfig{Registry: registry, Namespace: "app"})
	assert.Error(t, err)

	// Different namespaces coexist
	_, err = NewCodecMetrics(MetricsConfig{Registry: registry, Namespace: "other"})
	assert.NoError(t, err)
}

func TestCodecMetrics_Handler(t *testing.T) {
	m, err := NewCodecMetrics(MetricsConfig{ServiceName: "svc", ServiceVersion: "1.0.0"})
	require.NoError(t, err)
	m.RecordMessage(DirectionInbound, "notification", 42, time.Millisecond)

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	text := string(body)
	assert.True(t, strings.Contains(text, `mcp_codec_messages_total{direction="inbound",kind="notification",service="svc",version="1.0.0"} 1`), text)
}

func TestNoopRecorder(t *testing.T) {
	var r CodecRecorder = NoopRecorder{}
	r.RecordMessage(DirectionInbound, "request", 1, time.Millisecond)
	r.RecordError(DirectionInbound, "x")
	r.RecordBatch(1)
}
