package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Direction tells whether a message was decoded from or encoded to the wire
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// MetricsConfig configures the codec metrics
type MetricsConfig struct {
	// Service identification, added as constant labels
	ServiceName    string
	ServiceVersion string

	// Metric options
	Namespace        string    // Prometheus namespace (default: mcp)
	Subsystem        string    // Prometheus subsystem (default: codec)
	DurationBuckets  []float64 // Histogram buckets for codec latency in milliseconds
	SizeBuckets      []float64 // Histogram buckets for message size in bytes
	ConstLabels      prometheus.Labels
	Registry         *prometheus.Registry // Registry to register on (default: a new registry)
	RegisterDefaults bool                 // Also register the Go and process collectors
}

// CodecRecorder receives codec events. The codec package calls it for every
// message it decodes or encodes.
type CodecRecorder interface {
	// RecordMessage records a message of kind crossing the codec
	RecordMessage(direction Direction, kind string, size int, duration time.Duration)
	// RecordError records a codec failure classified by reason
	RecordError(direction Direction, reason string)
	// RecordBatch records the element count of a decoded batch
	RecordBatch(size int)
}

// NoopRecorder discards all codec events
type NoopRecorder struct{}

func (NoopRecorder) RecordMessage(Direction, string, int, time.Duration) {}
func (NoopRecorder) RecordError(Direction, string)                       {}
func (NoopRecorder) RecordBatch(int)                                     {}

// CodecMetrics implements CodecRecorder using Prometheus
type CodecMetrics struct {
	config   MetricsConfig
	registry *prometheus.Registry

	messagesTotal   *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	messageBytes    *prometheus.HistogramVec
	messageDuration *prometheus.HistogramVec
	batchSize       prometheus.Histogram
}

// NewCodecMetrics creates and registers the codec collectors
func NewCodecMetrics(config MetricsConfig) (*CodecMetrics, error) {
	if config.Namespace == "" {
		config.Namespace = "mcp"
	}
	if config.Subsystem == "" {
		config.Subsystem = "codec"
	}
	if config.DurationBuckets == nil {
		config.DurationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50}
	}
	if config.SizeBuckets == nil {
		config.SizeBuckets = prometheus.ExponentialBuckets(64, 4, 8)
	}
	if config.ConstLabels == nil {
		config.ConstLabels = prometheus.Labels{}
	}
	if config.ServiceName != "" {
		config.ConstLabels["service"] = config.ServiceName
	}
	if config.ServiceVersion != "" {
		config.ConstLabels["version"] = config.ServiceVersion
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}

	m := &CodecMetrics{
		config:   config,
		registry: config.Registry,
	}
	m.initializeMetrics()

	if err := m.registerMetrics(); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	return m, nil
}

func (m *CodecMetrics) initializeMetrics() {
	m.messagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.config.Namespace,
			Subsystem:   m.config.Subsystem,
			Name:        "messages_total",
			Help:        "Total number of JSON-RPC messages decoded or encoded",
			ConstLabels: m.config.ConstLabels,
		},
		[]string{"direction", "kind"},
	)

	m.errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.config.Namespace,
			Subsystem:   m.config.Subsystem,
			Name:        "errors_total",
			Help:        "Total number of messages that failed to decode or encode",
			ConstLabels: m.config.ConstLabels,
		},
		[]string{"direction", "reason"},
	)

	m.messageBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.config.Namespace,
			Subsystem:   m.config.Subsystem,
			Name:        "message_bytes",
			Help:        "Size of JSON-RPC messages in bytes",
			Buckets:     m.config.SizeBuckets,
			ConstLabels: m.config.ConstLabels,
		},
		[]string{"direction"},
	)

	m.messageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.config.Namespace,
			Subsystem:   m.config.Subsystem,
			Name:        "duration_milliseconds",
			Help:        "Time spent decoding or encoding a message in milliseconds",
			Buckets:     m.config.DurationBuckets,
			ConstLabels: m.config.ConstLabels,
		},
		[]string{"direction"},
	)

	m.batchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   m.config.Namespace,
			Subsystem:   m.config.Subsystem,
			Name:        "batch_size",
			Help:        "Number of elements in decoded JSON-RPC batches",
			Buckets:     []float64{1, 2, 5, 10, 25, 50, 100},
			ConstLabels: m.config.ConstLabels,
		},
	)
}

func (m *CodecMetrics) registerMetrics() error {
	collectors := []prometheus.Collector{
		m.messagesTotal,
		m.errorsTotal,
		m.messageBytes,
		m.messageDuration,
		m.batchSize,
	}
	if m.config.RegisterDefaults {
		collectors = append(collectors,
			prometheus.NewGoCollector(),
			prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		)
	}

	for _, collector := range collectors {
		if err := m.registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordMessage records a message crossing the codec
func (m *CodecMetrics) RecordMessage(direction Direction, kind string, size int, duration time.Duration) {
	m.messagesTotal.WithLabelValues(string(direction), kind).Inc()
	m.messageBytes.WithLabelValues(string(direction)).Observe(float64(size))
	m.messageDuration.WithLabelValues(string(direction)).Observe(float64(duration.Microseconds()) / 1000)
}

// RecordError records a codec failure
func (m *CodecMetrics) RecordError(direction Direction, reason string) {
	m.errorsTotal.WithLabelValues(string(direction), reason).Inc()
}

// RecordBatch records the size of a decoded batch
func (m *CodecMetrics) RecordBatch(size int) {
	m.batchSize.Observe(float64(size))
}

// Registry returns the registry the collectors live in
func (m *CodecMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the registry in the Prometheus
// text format
func (m *CodecMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
