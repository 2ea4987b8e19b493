// Package archive runs the capture side of the service: feed consumers on one
// side of the queue, the persistence worker on the other.
package archive

import (
	"context"
	"sync"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	"github.com/switch527/coin-base/internal/feed"
	storage "github.com/switch527/coin-base/internal/infrastructure/postgresql"
	"github.com/switch527/coin-base/internal/persistence"
	"github.com/switch527/coin-base/internal/queue"
	"github.com/switch527/coin-base/pkg/errors"
	"github.com/switch527/coin-base/pkg/logger"
	"github.com/switch527/coin-base/pkg/postgresql"
)

// Service wires connectivity, queue and worker into one lifecycle.
type Service struct {
	conn   feed.Connectivity
	queue  *queue.Queue
	worker *persistence.Worker
	client postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewService creates the archive coordinator.
func NewService(
	conn feed.Connectivity,
	q *queue.Queue,
	worker *persistence.Worker,
	client postgresql.PostgreSQLClient,
	logger logger.Interface,
) *Service {
	return &Service{
		conn:   conn,
		queue:  q,
		worker: worker,
		client: client,
		logger: logger,
	}
}

// Run drives the full capture lifecycle and blocks until ctx is cancelled and
// the final drain has finished. Connect and schema failures are fatal; a
// single stream failing is not, the remaining streams keep running.
func (s *Service) Run(ctx context.Context) error {
	if err := storage.EnsureSchema(ctx, s.client); err != nil {
		return errors.TracerFromError(err)
	}

	if err := s.conn.Connect(ctx); err != nil {
		return errors.TracerFromError(err)
	}

	var wg sync.WaitGroup
	for _, symbol := range s.conn.Symbols() {
		for _, kind := range s.conn.DataTypes() {
			consumer := feed.NewConsumer(s.conn, s.queue, s.logger)
			wg.Add(1)
			go func(symbol string, kind v1.Kind) {
				defer wg.Done()
				if err := consumer.Stream(ctx, symbol, kind); err != nil {
					s.logger.Error(err,
						logger.Field{Key: "symbol", Value: symbol},
						logger.Field{Key: "kind", Value: string(kind)},
					)
				}
			}(symbol, kind)
		}
	}

	s.logger.InfoContext(ctx, "archiver started",
		logger.Field{Key: "symbols", Value: s.conn.Symbols()},
	)

	// The worker owns this goroutine until shutdown.
	s.worker.Run(ctx)

	// Unblock any consumer still waiting in Get, then wait for all of them
	// before the final drain so no late record misses the last commit.
	if err := s.conn.Shutdown(); err != nil {
		s.logger.Error(errors.TracerFromError(err))
	}
	wg.Wait()

	if err := s.worker.RunCycle(context.Background()); err != nil {
		s.logger.Error(errors.TracerFromError(err))
	}

	s.logger.Info("archiver stopped")
	return nil
}
