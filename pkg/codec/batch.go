package codec

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/mcp-protocol-go/pkg/observability"
	"github.com/ajitpratap0/mcp-protocol-go/pkg/protocol"
)

// decodeElements decodes batch items with at most BatchConcurrency
// goroutines. Each goroutine writes only its own slot.
func (c *Codec) decodeElements(ctx context.Context, items []json.RawMessage) ([]Element, error) {
	elements := make([]Element, len(items))

	g, gctx := errgroup.WithContext(ctx)
	if c.config.BatchConcurrency > 0 {
		g.SetLimit(c.config.BatchConcurrency)
	}

	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			el := Element{Index: i, Raw: item}
			msg, err := protocol.ParseMessage(item)
			if err != nil {
				el.Err = fmt.Errorf("batch element %d: %w", i, err)
			} else {
				el.Message = msg
				c.recorder.RecordMessage(observability.DirectionInbound, msg.Kind().String(), len(item), time.Since(start))
			}
			elements[i] = el
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, el := range elements {
		if el.Err != nil {
			c.decodeFailed(ctx, el.Raw, el.Err)
			continue
		}
		c.logMessage(ctx, "Decoded batch element", el.Message, el.Raw)
	}
	return elements, nil
}
