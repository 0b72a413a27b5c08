// Package mcp provides the Model Context Protocol (2024-11-05) message model for Go
package mcp

import (
	"github.com/ajitpratap0/mcp-protocol-go/pkg/codec"
	"github.com/ajitpratap0/mcp-protocol-go/pkg/protocol"
)

// Version represents the current version of the module
const Version = "1.0.0"

// ProtocolVersion is the MCP revision implemented by the protocol package
const ProtocolVersion = protocol.ProtocolVersion

// Codec construction
var (
	// NewCodec creates a codec for decoding and encoding messages
	NewCodec = codec.New

	// DefaultCodecConfig returns the default codec limits
	DefaultCodecConfig = codec.DefaultConfig

	// CodecConfigFromEnv reads codec limits from MCP_CODEC_* variables
	CodecConfigFromEnv = codec.ConfigFromEnv
)

// Message parsing
var (
	ParseMessage = protocol.ParseMessage
	ParseBatch   = protocol.ParseBatch
)

// Envelope construction
var (
	NewRequest       = protocol.NewRequest
	NewNotification  = protocol.NewNotification
	NewResponse      = protocol.NewResponse
	NewErrorResponse = protocol.NewErrorResponse
	NewListRequest   = protocol.NewListRequest
)

// Request identifiers
var (
	StringID    = protocol.StringID
	IntID       = protocol.IntID
	NullID      = protocol.NullID
	NewRandomID = protocol.NewRandomID
)

// Handshake
var (
	NewInitializeParams = protocol.NewInitializeParams
	NewInitializeResult = protocol.NewInitializeResult
)

// Tools and content
var (
	NewTool            = protocol.NewTool
	NewToolResult      = protocol.NewToolResult
	NewToolErrorResult = protocol.NewToolErrorResult
	NewTextContent     = protocol.NewTextContent
	NewImageContent    = protocol.NewImageContent
)

// Standard JSON-RPC error codes
const (
	ParseError     = protocol.ParseError
	InvalidRequest = protocol.InvalidRequest
	MethodNotFound = protocol.MethodNotFound
	InvalidParams  = protocol.InvalidParams
	InternalError  = protocol.InternalError
)
