// Package pagination provides utilities for cursor-paginated list methods
// in MCP.
//
// Cursors are opaque to clients. Servers that page over an in-memory slice
// can use Paginate, which issues base64 offset cursors and rejects any
// cursor it did not issue:
//
//	func listTools(params *protocol.ListToolsParams) (*protocol.ListToolsResult, error) {
//	    page, next, err := pagination.Paginate(allTools, params.Cursor, 0)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return protocol.NewListResult(page, next), nil
//	}
//
// Clients walk a collection with Collect, which stops on an empty cursor,
// a repeated cursor, a cancelled context or after DefaultMaxPages pages:
//
//	tools, err := pagination.Collect(ctx, func(ctx context.Context, cursor string) ([]protocol.Tool, string, error) {
//	    result, err := listTools(ctx, cursor)
//	    if err != nil {
//	        return nil, "", err
//	    }
//	    return result.Items, result.NextCursor, nil
//	})
package pagination
