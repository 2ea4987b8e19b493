package feed

import (
	"context"
	"time"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	"github.com/switch527/coin-base/internal/queue"
	"github.com/switch527/coin-base/pkg/errors"
	"github.com/switch527/coin-base/pkg/logger"
)

// Consumer pulls datums for one (symbol, kind) stream and enqueues validated
// records. One Consumer runs per stream, each on its own goroutine.
type Consumer struct {
	conn   Connectivity
	queue  *queue.Queue
	logger logger.Interface
}

// NewConsumer creates a consumer over the given connectivity and queue.
func NewConsumer(conn Connectivity, q *queue.Queue, logger logger.Interface) *Consumer {
	return &Consumer{
		conn:   conn,
		queue:  q,
		logger: logger,
	}
}

// Stream runs the pull loop for one (symbol, kind) pair until ctx is
// cancelled. Cancellation is observed within one Get call; the call itself is
// only interrupted by the connectivity layer's Shutdown. A Get error ends
// this stream alone and is returned for the coordinator to surface.
func (c *Consumer) Stream(ctx context.Context, symbol string, kind v1.Kind) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		datum, err := c.conn.Get(ctx, symbol, kind)
		if err != nil {
			if ctx.Err() != nil {
				// shutdown path, not a failure
				return nil
			}
			return errors.TracerFromError(err)
		}

		rec, err := v1.FromDatum(kind, symbol, time.Now(), datum)
		if err != nil {
			// malformed datum: drop before it reaches the queue
			c.logger.Debug("dropping invalid datum",
				logger.Field{Key: "symbol", Value: symbol},
				logger.Field{Key: "kind", Value: string(kind)},
				logger.Field{Key: "reason", Value: err.Error()},
			)
			continue
		}

		c.queue.Push(rec)
	}
}
