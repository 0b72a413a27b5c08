package protocol

import (
	"encoding/json"
	"fmt"
)

// ListParams carries the cursor of a paginated list request. The cursor is
// an opaque token issued by the server and is never interpreted here.
type ListParams struct {
	Cursor string `json:"cursor,omitempty"`
}

// Per-domain list request parameters
type (
	ListToolsParams             = ListParams
	ListResourcesParams         = ListParams
	ListResourceTemplatesParams = ListParams
	ListPromptsParams           = ListParams
)

// listItem is implemented by every type that can be listed. The collection
// key names the array member of the list result on the wire.
type listItem interface {
	collectionKey() string
}

// ListResult is one page of a paginated collection
type ListResult[T listItem] struct {
	Items      []T
	NextCursor string
}

// Per-domain list results
type (
	ListToolsResult             = ListResult[Tool]
	ListResourcesResult         = ListResult[Resource]
	ListResourceTemplatesResult = ListResult[ResourceTemplate]
	ListPromptsResult           = ListResult[Prompt]
)

// NewListResult creates a page of items
func NewListResult[T listItem](items []T, nextCursor string) *ListResult[T] {
	return &ListResult[T]{Items: items, NextCursor: nextCursor}
}

// HasNextPage reports whether the server announced another page
func (r ListResult[T]) HasNextPage() bool {
	return r.NextCursor != ""
}

func (r ListResult[T]) key() string {
	var zero T
	return zero.collectionKey()
}

// MarshalJSON implements json.Marshaler. An empty page encodes its
// collection as [] rather than null.
func (r ListResult[T]) MarshalJSON() ([]byte, error) {
	items := r.Items
	if items == nil {
		items = []T{}
	}
	obj := map[string]interface{}{r.key(): items}
	if r.NextCursor != "" {
		obj["nextCursor"] = r.NextCursor
	}
	return json.Marshal(obj)
}

// UnmarshalJSON implements json.Unmarshaler
func (r *ListResult[T]) UnmarshalJSON(data []byte) error {
	key := r.key()
	typ := "ListResult[" + key + "]"

	obj, err := rawObject(data, typ)
	if err != nil {
		return err
	}
	if err := requireFields(obj, typ, key); err != nil {
		return err
	}

	var items []T
	if err := json.Unmarshal(obj[key], &items); err != nil {
		return wrapMalformed(err, typ)
	}
	if items == nil {
		items = []T{}
	}

	var cursor string
	if raw, ok := obj["nextCursor"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &cursor); err != nil {
			return decodeErr(typ, "nextCursor", fmt.Errorf("%w: %w", ErrMalformed, err))
		}
	}

	*r = ListResult[T]{Items: items, NextCursor: cursor}
	return nil
}

// NewListRequest creates a list request for method. An empty cursor requests
// the first page and omits params entirely.
func NewListRequest(id RequestID, method, cursor string) (*Request, error) {
	if cursor == "" {
		return NewRequest(id, method, nil)
	}
	return NewRequest(id, method, ListParams{Cursor: cursor})
}
