package codec

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/joeshaw/envdecode"
)

const (
	// DefaultMaxMessageBytes is the default size limit for a single message
	// or a whole batch
	DefaultMaxMessageBytes = 4 << 20

	// DefaultMaxBatchSize is the default limit on batch elements
	DefaultMaxBatchSize = 100
)

// Config holds codec limits. Zero limits disable the check.
type Config struct {
	// MaxMessageBytes limits the size of an encoded or decoded message
	MaxMessageBytes int64 `env:"MCP_CODEC_MAX_MESSAGE_BYTES,strict"`
	// MaxBatchSize limits the number of elements in a batch
	MaxBatchSize int `env:"MCP_CODEC_MAX_BATCH_SIZE,strict"`
	// BatchConcurrency bounds the goroutines decoding one batch
	BatchConcurrency int `env:"MCP_CODEC_BATCH_CONCURRENCY,strict"`
	// LogPayloads adds raw message bodies to debug logs
	LogPayloads bool `env:"MCP_CODEC_LOG_PAYLOADS,strict"`
}

// DefaultConfig returns the default codec configuration
func DefaultConfig() Config {
	return Config{
		MaxMessageBytes:  DefaultMaxMessageBytes,
		MaxBatchSize:     DefaultMaxBatchSize,
		BatchConcurrency: runtime.GOMAXPROCS(0),
	}
}

// ConfigFromEnv returns DefaultConfig overridden by MCP_CODEC_* environment
// variables
func ConfigFromEnv() (Config, error) {
	config := DefaultConfig()
	if err := envdecode.Decode(&config); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("failed to decode codec config from environment: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the configuration for negative limits
func (c Config) Validate() error {
	if c.MaxMessageBytes < 0 {
		return fmt.Errorf("invalid codec config: MaxMessageBytes must not be negative, got %d", c.MaxMessageBytes)
	}
	if c.MaxBatchSize < 0 {
		return fmt.Errorf("invalid codec config: MaxBatchSize must not be negative, got %d", c.MaxBatchSize)
	}
	if c.BatchConcurrency < 0 {
		return fmt.Errorf("invalid codec config: BatchConcurrency must not be negative, got %d", c.BatchConcurrency)
	}
	return nil
}
