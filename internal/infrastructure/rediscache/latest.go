// Package rediscache keeps the most recent record per stream in Redis so
// "latest value" lookups do not touch the database.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	pkgerrors "github.com/switch527/coin-base/pkg/errors"
	"github.com/switch527/coin-base/pkg/logger"
	"github.com/switch527/coin-base/pkg/redis"
)

//go:generate mockgen -source=latest.go -destination=mock/latest_mock.go -package=mock

// LatestCache stores and serves the newest record for a (kind, symbol) stream.
type LatestCache interface {
	Set(ctx context.Context, rec v1.Record)
	Get(ctx context.Context, kind v1.Kind, symbol string) (map[string]any, error)
}

type latestCache struct {
	client redis.Client
	ttl    time.Duration
	logger logger.Interface
}

// NewLatestCache creates a LatestCache on top of an already connected client.
func NewLatestCache(client redis.Client, ttl time.Duration, logger logger.Interface) LatestCache {
	return &latestCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(kind v1.Kind, symbol string) string {
	return fmt.Sprintf("latest:%s:%s", kind, symbol)
}

// Set is best effort. A failed write only costs the next Get a cache miss,
// so the error is logged and swallowed.
func (c *latestCache) Set(ctx context.Context, rec v1.Record) {
	payload, err := json.Marshal(rec.Fields())
	if err != nil {
		c.logger.ErrorContext(ctx, err, logger.Field{Key: "kind", Value: string(rec.Kind())})
		return
	}

	key := cacheKey(rec.Kind(), rec.GetSymbol())
	if err := c.client.Set(ctx, key, payload, c.ttl); err != nil {
		c.logger.ErrorContext(ctx, err, logger.Field{Key: "key", Value: key})
	}
}

// Get returns the cached field map, or a not-found error when the stream has
// no cached value yet or the entry expired.
func (c *latestCache) Get(ctx context.Context, kind v1.Kind, symbol string) (map[string]any, error) {
	raw, err := c.client.Get(ctx, cacheKey(kind, symbol))
	if err != nil {
		if err == redis.Nil {
			return nil, pkgerrors.NewErrorDetails(
				fmt.Sprintf("no recent %s for %s", kind, symbol),
				string(pkgerrors.GeneralNotFoundError),
				"symbol",
			)
		}
		return nil, pkgerrors.NewErrorDetails(err.Error(), string(pkgerrors.RedisGetError), "")
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, pkgerrors.NewErrorDetails(err.Error(), string(pkgerrors.RedisGetError), "")
	}

	return fields, nil
}
