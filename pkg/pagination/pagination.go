package pagination

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	mcperrors "github.com/ajitpratap0/mcp-protocol-go/pkg/errors"
)

const (
	// DefaultLimit is the recommended default page size for paginated results
	DefaultLimit = 50

	// MaxLimit is the maximum allowed page size for paginated results
	MaxLimit = 200

	// DefaultMaxPages bounds how many pages Collect will fetch
	DefaultMaxPages = 1000
)

// cursorPrefix tags cursors issued by EncodeCursor so foreign tokens are
// rejected instead of being read as offsets.
const cursorPrefix = "offset:"

var (
	// ErrCursorLoop is returned when a server hands back a cursor it already issued
	ErrCursorLoop = errors.New("pagination cursor repeated")

	// ErrTooManyPages is returned when Collect hits its page limit
	ErrTooManyPages = errors.New("pagination page limit reached")
)

// EncodeCursor returns the opaque cursor for the page starting at offset
func EncodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

// DecodeCursor returns the offset held by a cursor from EncodeCursor. The
// empty cursor is the first page.
func DecodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, mcperrors.InvalidPaginationCursor(cursor, "not base64")
	}
	text := string(raw)
	if !strings.HasPrefix(text, cursorPrefix) {
		return 0, mcperrors.InvalidPaginationCursor(cursor, "unrecognized format")
	}
	offset, err := strconv.Atoi(strings.TrimPrefix(text, cursorPrefix))
	if err != nil || offset < 0 {
		return 0, mcperrors.InvalidPaginationCursor(cursor, "bad offset")
	}
	return offset, nil
}

// ValidateLimit checks a page size. Zero means DefaultLimit.
func ValidateLimit(limit int) error {
	if limit < 0 || limit > MaxLimit {
		return mcperrors.InvalidPaginationLimit(limit, MaxLimit)
	}
	return nil
}

// ApplyDefaults returns a usable page size: DefaultLimit for zero or
// negative values, capped at MaxLimit
func ApplyDefaults(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Paginate returns the page of items selected by cursor and the cursor of
// the following page, or "" on the last page. Servers use it to answer the
// tools/list, resources/list and prompts/list family.
func Paginate[T any](items []T, cursor string, limit int) ([]T, string, error) {
	if err := ValidateLimit(limit); err != nil {
		return nil, "", err
	}
	limit = ApplyDefaults(limit)

	start, err := DecodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	if start > len(items) {
		return nil, "", mcperrors.InvalidPaginationCursor(cursor, "offset out of range")
	}

	end := start + limit
	if end > len(items) {
		end = len(items)
	}

	var next string
	if end < len(items) {
		next = EncodeCursor(end)
	}
	return items[start:end], next, nil
}

// Collector tracks progress through a paginated collection
type Collector struct {
	// NextCursor holds the pagination cursor for the next page
	NextCursor string
	// HasMore indicates if there are more pages to fetch
	HasMore bool
	// TotalItems is the total number of items collected so far
	TotalItems int
	// Pages is the number of pages seen
	Pages int

	seen map[string]struct{}
}

// NewCollector creates a new pagination collector
func NewCollector() *Collector {
	return &Collector{
		HasMore: true,
		seen:    make(map[string]struct{}),
	}
}

// Update records a page of count items whose result announced nextCursor.
// It fails if the cursor was already handed out.
func (c *Collector) Update(count int, nextCursor string) error {
	c.Pages++
	c.TotalItems += count
	c.NextCursor = nextCursor
	c.HasMore = nextCursor != ""

	if !c.HasMore {
		return nil
	}
	if _, ok := c.seen[nextCursor]; ok {
		c.HasMore = false
		return fmt.Errorf("%w: %q", ErrCursorLoop, nextCursor)
	}
	c.seen[nextCursor] = struct{}{}
	return nil
}

// FetchFunc fetches the page identified by cursor and returns its items and
// the next cursor
type FetchFunc[T any] func(ctx context.Context, cursor string) ([]T, string, error)

// Collect fetches every page of a collection, starting from the first, and
// returns the concatenated items. It stops at DefaultMaxPages pages.
func Collect[T any](ctx context.Context, fetch FetchFunc[T]) ([]T, error) {
	return CollectN(ctx, DefaultMaxPages, fetch)
}

// CollectN is Collect with an explicit page limit
func CollectN[T any](ctx context.Context, maxPages int, fetch FetchFunc[T]) ([]T, error) {
	var all []T
	c := NewCollector()

	for c.HasMore {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		if c.Pages >= maxPages {
			return all, fmt.Errorf("%w: %d", ErrTooManyPages, maxPages)
		}

		items, next, err := fetch(ctx, c.NextCursor)
		if err != nil {
			return all, fmt.Errorf("failed to fetch page %d: %w", c.Pages+1, err)
		}
		all = append(all, items...)

		if err := c.Update(len(items), next); err != nil {
			return all, err
		}
	}

	return all, nil
}
