// Package ws implements feed.Connectivity over the exchange feed gateway's
// websocket endpoint.
package ws

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	"github.com/switch527/coin-base/internal/feed"
	"github.com/switch527/coin-base/pkg/errors"
	"github.com/switch527/coin-base/pkg/logger"
)

// Config holds the websocket gateway settings.
type Config struct {
	URL       string
	Symbols   []string
	DataTypes []string

	// ChannelBuffer bounds each demux channel; a full channel drops the
	// oldest pending datum for that stream.
	ChannelBuffer int
}

type streamKey struct {
	symbol string
	kind   v1.Kind
}

// frame is the gateway's wire format: one datum per message, tagged with the
// stream it belongs to.
type frame struct {
	Type   string         `json:"type"`
	Symbol string         `json:"symbol"`
	Data   map[string]any `json:"data"`
}

// subscribeRequest is sent once per (symbol, data type) after dialing.
type subscribeRequest struct {
	Event  string `json:"event"`
	Symbol string `json:"symbol"`
	Type   string `json:"type"`
}

// Connectivity is the websocket-backed feed.Connectivity implementation.
// A single reader goroutine demuxes incoming frames into per-stream channels;
// Get blocks on its stream's channel.
type Connectivity struct {
	config Config
	logger logger.Interface

	kinds   []v1.Kind
	conn    *websocket.Conn
	streams map[streamKey]chan map[string]any

	closeOnce sync.Once
	closeErr  error
}

var _ feed.Connectivity = (*Connectivity)(nil)

// NewConnectivity creates a websocket connectivity adapter. Connect must be
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

// Connect dials the gateway, subscribes every advertised stream and starts
// the demux reader.
func (c *Connectivity) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.config.URL, nil)
	if err != nil {
		return errors.NewTracer(
			fmt.Sprintf("failed to dial feed gateway %s", c.config.URL),
		).Wrap(err)
	}
	c.conn = conn

	c.streams = make(map[streamKey]chan map[string]any, len(c.config.Symbols)*len(c.kinds))
	for _, symbol := range c.config.Symbols {
		for _, kind := range c.kinds {
			c.streams[streamKey{symbol, kind}] = make(chan map[string]any, c.config.ChannelBuffer)

			req := subscribeRequest{Event: "subscribe", Symbol: symbol, Type: string(kind)}
			if err := conn.WriteJSON(req); err != nil {
				conn.Close()
				return errors.NewTracer(
					fmt.Sprintf("failed to subscribe %s/%s", symbol, kind),
				).Wrap(err)
			}
		}
	}

	go c.readLoop()

	c.logger.Info("connected to feed gateway",
		logger.Field{Key: "url", Value: c.config.URL},
		logger.Field{Key: "streams", Value: len(c.streams)},
	)

	return nil
}

// readLoop demuxes frames into the per-stream channels until the connection
// dies, then closes every channel so pending Gets unblock.
func (c *Connectivity) readLoop() {
	defer func() {
		for _, ch := range c.streams {
			close(ch)
		}
	}()

	for {
		var f frame
		if err := c.conn.ReadJSON(&f); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("feed gateway read failed",
					logger.Field{Key: "error", Value: err.Error()},
				)
			}
			return
		}

		kind, err := v1.ParseKind(f.Type)
		if err != nil {
			c.logger.Debug("ignoring frame with unknown type",
				logger.Field{Key: "type", Value: f.Type},
			)
			continue
		}

		ch, ok := c.streams[streamKey{f.Symbol, kind}]
		if !ok {
			continue
		}

		select {
		case ch <- f.Data:
		default:
			// stream consumer is behind: drop the oldest pending datum
			select {
			case <-ch:
			default:
			}
			ch <- f.Data
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

// Get implements feed.Connectivity. It blocks until the stream yields a
// datum, ctx is cancelled, or the connection is shut down.
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

// Shutdown implements feed.Connectivity. It closes the websocket, which ends
// the reader and unblocks every pending Get.
func (c *Connectivity) Shutdown() error {
	c.closeOnce.Do(func() {
		if c.conn == nil {
			return
		}

		closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.conn.WriteMessage(websocket.CloseMessage, closeMsg)
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}
