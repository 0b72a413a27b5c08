// Package mcp is the root of the MCP protocol module for Go, re-exporting the
// most used constructors from its sub-packages.
//
// The Model Context Protocol (MCP) is a JSON-RPC 2.0 based protocol through
// which AI clients discover and call tools, read resources and render
// prompts exposed by servers. This module models the messages exchanged
// between the two peers. It does not ship a transport or a dispatch loop.
//
// # Overview
//
// The module consists of several sub-packages:
//
//   - pkg/protocol: Envelope, error, capability, content and collection types
//   - pkg/codec: Decoding and encoding of messages and batches at the byte boundary
//   - pkg/errors: Structured errors and their mapping to JSON-RPC error objects
//   - pkg/pagination: Cursor helpers for servers and page collection for clients
//   - pkg/logging: Structured logger, including a notifications/message formatter
//   - pkg/observability: Prometheus metrics and OpenTelemetry tracing for the codec
//   - pkg/utils: Tool input schema reflection and JSON helpers
//
// # Answering a Request
//
// A server reading newline-delimited messages decodes each line, handles it
// and encodes the response:
//
//	c, err := mcp.NewCodec(mcp.DefaultCodecConfig())
//	if err != nil {
//	    return err
//	}
//
//	msg, err := c.Decode(ctx, line)
//	if err != nil {
//	    out, _ := c.Encode(ctx, c.ErrorResponse(err, codec.RecoverID(line)))
//	    return write(out)
//	}
//
//	req, ok := msg.(*protocol.Request)
//	if ok && req.Method == protocol.MethodListTools {
//	    tool := mcp.NewTool("echo", "Echo the input").WithParameter("text", "Text to echo", true)
//	    resp, err := mcp.NewResponse(req.ID, protocol.NewListResult([]protocol.Tool{*tool}, ""))
//	    if err != nil {
//	        return err
//	    }
//	    out, err := c.Encode(ctx, resp)
//	    ...
//	}
//
// # Calling a Tool
//
//	params, err := protocol.NewCallToolParams("echo", map[string]string{"text": "hi"})
//	if err != nil {
//	    return err
//	}
//	req, err := mcp.NewRequest(mcp.NewRandomID(), protocol.MethodCallTool, params)
package mcp
