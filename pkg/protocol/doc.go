// Package protocol defines the wire types of the Model Context Protocol (MCP).
//
// MCP is a JSON-RPC 2.0 based protocol that lets AI clients discover and use
// tools, resources and prompts exposed by servers. This package holds the
// exact JSON shapes exchanged between the two peers and nothing else: it has
// no transport, no dispatch loop and no tool logic.
//
// # Package Organization
//
//   - jsonrpc.go: Request, Notification, Response and the RequestID sum type
//   - errors.go: ErrorCode and the JSON-RPC error object
//   - decode.go: DecodeError and the sentinel errors every decoder wraps
//   - message.go: classification of raw messages and batches
//   - capabilities.go: the initialize handshake and capability declarations
//   - content.go: the four tagged content unions
//   - tools.go, resources.go, prompts.go: domain collections
//   - pagination.go: the generic cursor-paginated list result
//   - sampling.go, logging.go: client sampling and server log messages
//   - methods.go: method name constants
//
// # Identifiers
//
// A RequestID is a string, an integer or null. No tag travels on the wire;
// decoding looks at the JSON value shape and rejects anything else:
//
//	var id protocol.RequestID
//	_ = json.Unmarshal([]byte(`"abc"`), &id) // string id
//	_ = json.Unmarshal([]byte(`42`), &id)    // integer id
//	err := json.Unmarshal([]byte(`3.14`), &id)
//	errors.Is(err, protocol.ErrInvalidRequestID) // true
//
// # Responses
//
// A Response carries exactly one of a result or an error. Build responses
// with NewResponse or NewErrorResponse; encoding re-checks the rule and
// decoding enforces it strictly, so a result next to "error": null is
// rejected with ErrResponseExclusivity.
//
// # Content Unions
//
// Tool results, prompt messages, sampling messages and resource bodies are
// each a closed set of variants selected by the "type" key. The sets are
// kept separate: a resource reference is valid tool result content but is
// rejected as sampling content.
//
//	content, err := protocol.UnmarshalToolResultContent(data)
//	switch c := content.(type) {
//	case protocol.TextContent:
//	    fmt.Println(c.Text)
//	case protocol.ImageContent:
//	    raw, _ := c.Bytes()
//	    _ = raw
//	}
//
// # Error Handling
//
// Decoding failures are returned as *DecodeError values naming the type and
// wire key that failed. Match them with errors.Is against ErrMalformed,
// ErrMissingField, ErrMissingContentType, ErrUnknownContentType,
// ErrInvalidRequestID, ErrInvalidVersion, ErrInvalidEnum and
// ErrResponseExclusivity. Protocol errors (the five JSON-RPC codes) are
// ordinary data carried in a Response and round-trip losslessly.
//
// # Example Messages
//
// List the first page of tools:
//
//	{"jsonrpc": "2.0", "id": 1, "method": "tools/list"}
//
// Tool call result:
//
//	{
//	    "jsonrpc": "2.0",
//	    "id": 1,
//	    "result": {
//	        "content": [{"type": "text", "text": "42 results"}]
//	    }
//	}
package protocol
