// Package query serves time-windowed reads over the archived records.
package query

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	"github.com/switch527/coin-base/internal/infrastructure/rediscache"
	"github.com/switch527/coin-base/pkg/errors"
	"github.com/switch527/coin-base/pkg/logger"
)

// DefaultWindow is how far back a query reaches when no lower bound is given.
const DefaultWindow = 24 * time.Hour

// Service resolves record queries against the per-kind stores.
type Service struct {
	stores map[v1.Kind]v1.Store
	cache  rediscache.LatestCache
	logger logger.Interface
}

// NewService creates a query service over the given stores. cache may be nil
// when Redis is disabled; Latest then always reports not found.
func NewService(stores map[v1.Kind]v1.Store, cache rediscache.LatestCache, logger logger.Interface) *Service {
	return &Service{
		stores: stores,
		cache:  cache,
		logger: logger,
	}
}

// Range returns every record of the given kind for the given symbols whose
// time falls inside the inclusive [since, until] window, oldest first. A zero
// since defaults to 24 hours ago, a zero until to now, both resolved when the
// call is made. The kind is validated before any store is touched.
func (s *Service) Range(ctx context.Context, kind string, symbols []string, since, until time.Time) ([]map[string]any, error) {
	k, err := v1.ParseKind(kind)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if since.IsZero() {
		since = now.Add(-DefaultWindow)
	}
	if until.IsZero() {
		until = now
	}

	store, ok := s.stores[k]
	if !ok {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("no store registered for kind %q", kind),
			string(errors.GeneralInternalServerError),
			"kind",
		)
	}

	result, err := store.SelectRange(ctx, symbols, since, until)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return result, nil
}

// Latest returns the most recently archived record for one (kind, symbol)
// stream, straight from the cache.
func (s *Service) Latest(ctx context.Context, kind string, symbol string) (map[string]any, error) {
	k, err := v1.ParseKind(kind)
	if err != nil {
		return nil, err
	}

	if s.cache == nil {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("no recent %s for %s", k, symbol),
			string(errors.GeneralNotFoundError),
			"symbol",
		)
	}

	return s.cache.Get(ctx, k, symbol)
}
