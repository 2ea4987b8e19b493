// Package kafkafeed implements feed.Connectivity over kafka topics, for
// deployments where the connectivity team publishes decoded datums to a
// broker instead of exposing the gateway socket directly.
package kafkafeed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	"github.com/switch527/coin-base/internal/feed"
	"github.com/switch527/coin-base/pkg/errors"
	"github.com/switch527/coin-base/pkg/logger"
)

// Config holds the kafka consumer settings. One topic exists per data type,
// named "<TopicPrefix>.<kind>", keyed by symbol.
type Config struct {
	Brokers       []string
	TopicPrefix   string
	ConsumerGroup string
	Symbols       []string
	DataTypes     []string
	ChannelBuffer int
}

type streamKey struct {
	symbol string
	kind   v1.Kind
}

// Connectivity is the kafka-backed feed.Connectivity implementation. One
// reader goroutine per topic demuxes messages by key into per-stream
// channels; Get blocks on its stream's channel.
type Connectivity struct {
	config Config
	logger logger.Interface

	kinds   []v1.Kind
	readers []*kafka.Reader
	streams map[streamKey]chan map[string]any

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

var _ feed.Connectivity = (*Connectivity)(nil)

// NewConnectivity creates a kafka connectivity adapter. Connect must be
// called before Get.
func NewConnectivity(config Config, logger logger.Interface) (*Connectivity, error) {
	if config.ChannelBuffer <= 0 {
		config.ChannelBuffer = 64
	}

	kinds := make([]v1.Kind, 0, len(config.DataTypes))
	for _, dt := range config.DataTypes {
		kind, err := v1.ParseKind(dt)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}

	return &Connectivity{
		config: config,
		logger: logger,
		kinds:  kinds,
	}, nil
}

// Connect creates one reader per data-type topic and starts the demux loops.
func (c *Connectivity) Connect(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.streams = make(map[streamKey]chan map[string]any, len(c.config.Symbols)*len(c.kinds))
	for _, symbol := range c.config.Symbols {
		for _, kind := range c.kinds {
			c.streams[streamKey{symbol, kind}] = make(chan map[string]any, c.config.ChannelBuffer)
		}
	}

	for _, kind := range c.kinds {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:     c.config.Brokers,
			Topic:       fmt.Sprintf("%s.%s", c.config.TopicPrefix, kind),
			GroupID:     c.config.ConsumerGroup,
			MinBytes:    1,
			MaxBytes:    10e6,
			StartOffset: kafka.LastOffset,
		})
		c.readers = append(c.readers, reader)

		c.wg.Add(1)
		go c.demux(runCtx, reader, kind)
	}

	c.logger.Info("consuming feed topics",
		logger.Field{Key: "brokers", Value: c.config.Brokers},
		logger.Field{Key: "topics", Value: len(c.kinds)},
	)

	return nil
}

// demux pulls messages off one topic and routes them by key.
func (c *Connectivity) demux(ctx context.Context, reader *kafka.Reader, kind v1.Kind) {
	defer c.wg.Done()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Warn("feed topic read failed",
				logger.Field{Key: "kind", Value: string(kind)},
				logger.Field{Key: "error", Value: err.Error()},
			)
			return
		}

		var datum map[string]any
		if err := json.Unmarshal(msg.Value, &datum); err != nil {
			c.logger.Debug("ignoring undecodable feed message",
				logger.Field{Key: "kind", Value: string(kind)},
			)
			continue
		}

		symbol := string(msg.Key)
		if symbol == "" {
			symbol, _ = datum["symbol"].(string)
		}

		ch, ok := c.streams[streamKey{symbol, kind}]
		if !ok {
			continue
		}

		select {
		case ch <- datum:
		case <-ctx.Done():
			return
		}
	}
}

// Symbols implements feed.Connectivity.
func (c *Connectivity) Symbols() []string {
	return c.config.Symbols
}

// DataTypes implements feed.Connectivity.
func (c *Connectivity) DataTypes() []v1.Kind {
	return c.kinds
}

// Get implements feed.Connectivity.
func (c *Connectivity) Get(ctx context.Context, symbol string, kind v1.Kind) (map[string]any, error) {
	ch, ok := c.streams[streamKey{symbol, kind}]
	if !ok {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("no subscription for %s/%s", symbol, kind),
			string(errors.FeedStreamError),
			"stream",
		)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case datum, open := <-ch:
		if !open {
			return nil, errors.NewErrorDetails(
				"feed stream closed",
				string(errors.FeedStreamError),
				"stream",
			)
		}
		return datum, nil
	}
}

// Shutdown implements feed.Connectivity. It stops the demux loops, closes the
// readers and the stream channels so pending Gets unblock.
func (c *Connectivity) Shutdown() error {
	c.closeOnce.Do(func() {
		if c.cancel != nil {
			c.cancel()
		}

		for _, reader := range c.readers {
			if err := reader.Close(); err != nil && c.closeErr == nil {
				c.closeErr = err
			}
		}

		c.wg.Wait()
		for _, ch := range c.streams {
			close(ch)
		}
	})
	return c.closeErr
}
