// Package pkg holds the sub-packages of the MCP protocol module.
//
// # Decoding a Message
//
//	import (
//	    "github.com/ajitpratap0/mcp-protocol-go/pkg/codec"
//	    "github.com/ajitpratap0/mcp-protocol-go/pkg/protocol"
//	)
//
//	c, err := codec.New(codec.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	msg, err := c.Decode(ctx, data)
//	if err != nil {
//	    resp := c.ErrorResponse(err, codec.RecoverID(data))
//	    ...
//	}
//	switch m := msg.(type) {
//	case *protocol.Request:
//	    var params protocol.CallToolParams
//	    if err := m.BindParams(&params); err != nil {
//	        ...
//	    }
//	case *protocol.Notification:
//	    ...
//	}
//
// # Sub-packages
//
//   - protocol: Defines the core protocol types and messages
//   - codec: Decodes and encodes messages and batches with limits, metrics and spans
//   - errors: Structured errors with codes, categories and severities
//   - logging: Structured logging, including log notifications for clients
//   - observability: Prometheus metrics and OpenTelemetry tracing
//   - pagination: Utilities for handling paginated results
//   - utils: Tool schema reflection and other helpers
package pkg
